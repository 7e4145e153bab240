package app

import (
	"database/sql"
	"path/filepath"

	"go-vacation/internal/authz"
	"go-vacation/internal/messaging/kafka"
	"go-vacation/internal/middleware"
	"go-vacation/internal/request"
	"go-vacation/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	requestRepo := request.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Authorization ---
	enforcer, err := authz.NewEnforcer(filepath.Join("internal", "authz", "model.conf"))
	if err != nil {
		return err
	}

	// --- Services ---
	userService := user.NewService(userRepo)
	requestService := request.NewService(db, requestRepo, outboxRepo)

	// --- Handlers ---
	userHandler := user.NewHandler(userService)
	requestHandler := request.NewHandlerWithRedis(requestService, rdb)

	// --- Routes ---
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(rate.Limit(20), 40))

	api := router.Group("/api/v1")
	{
		user.RegisterRoutes(api, userHandler)
		request.RegisterRoutes(api, requestHandler, enforcer, rdb)
	}

	return nil
}
