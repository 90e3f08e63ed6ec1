package notification

import (
	"github.com/ZBee-Tech/e-Conges/internal/middleware"
	"github.com/ZBee-Tech/e-Conges/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	notifications.Use(middleware.Authorize(rbacService, "notification", "read"))
	{
		notifications.GET("", handler.List)
		notifications.GET("/unread", handler.Unread)
		notifications.POST("/read", handler.MarkAllRead)
	}
}
