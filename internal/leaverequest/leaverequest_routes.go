package leaverequest

import (
	"github.com/ZBee-Tech/e-Conges/internal/middleware"
	"github.com/ZBee-Tech/e-Conges/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.GET("", middleware.Authorize(rbacService, "leave_request", "read"), handler.GetPending)
		requests.POST("", middleware.Authorize(rbacService, "leave_request", "create"), middleware.Idempotency(rdb), handler.Create)
		requests.GET("/all", middleware.Authorize(rbacService, "leave_request", "admin"), handler.GetAll)
		requests.GET("/export", middleware.Authorize(rbacService, "leave_request", "admin"), handler.Export)
		requests.GET("/:id", middleware.Authorize(rbacService, "leave_request", "read"), handler.GetById)
		requests.POST("/:id/approve", middleware.Authorize(rbacService, "leave_request", "decide"), handler.Approve)
		requests.POST("/:id/reject", middleware.Authorize(rbacService, "leave_request", "decide"), handler.Reject)
		requests.DELETE("/:id", middleware.Authorize(rbacService, "leave_request", "admin"), handler.Delete)
	}
}
