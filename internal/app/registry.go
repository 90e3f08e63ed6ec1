package app

import (
	"database/sql"

	"github.com/ZBee-Tech/e-Conges/internal/auth"
	"github.com/ZBee-Tech/e-Conges/internal/bootstrap"
	"github.com/ZBee-Tech/e-Conges/internal/leaverequest"
	"github.com/ZBee-Tech/e-Conges/internal/messaging/kafka"
	"github.com/ZBee-Tech/e-Conges/internal/notification"
	"github.com/ZBee-Tech/e-Conges/internal/rbac"
	"github.com/ZBee-Tech/e-Conges/internal/shared/counter"
	"github.com/ZBee-Tech/e-Conges/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	leaveRequestRepo := leaverequest.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	userRepo := user.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(authRepo)
	auditLogger := bootstrap.NewStdoutAuditLogger()
	leaveRequestService := leaverequest.NewServiceWithAudit(db, leaveRequestRepo, counterRepo, outboxRepo, rdb, auditLogger)
	notificationService := notification.NewService(leaveRequestService)
	userService := user.NewService(userRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	leaveRequestHandler := leaverequest.NewHandlerWithRedis(leaveRequestService, rdb)
	notificationHandler := notification.NewHandler(notificationService)
	userHandler := user.NewHandler(userService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		leaverequest.RegisterRoutes(api, leaveRequestHandler, rbacService, rdb)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
		user.RegisterRoutes(api, userHandler, rbacService)
	}

	return nil
}
