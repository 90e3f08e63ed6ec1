package user

import (
	"github.com/ZBee-Tech/e-Conges/internal/middleware"
	"github.com/ZBee-Tech/e-Conges/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	users.Use(middleware.Authorize(rbacService, "user", "manage"))
	{
		users.POST("", handler.Create)
		users.GET("", handler.GetAll)
		users.GET("/:id", handler.GetById)
		users.PATCH("/:id", handler.Update)
		users.DELETE("/:id", handler.Delete)
	}
}
