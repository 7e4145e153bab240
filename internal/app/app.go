package app

import (
	"context"
	"os"

	"go-vacation/internal/messaging/kafka"
	"go-vacation/internal/request"
	"go-vacation/internal/shared/connection"
	"go-vacation/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects infrastructure, migrates the schema and registers all
// modules on the router.
func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	if err := gormDB.AutoMigrate(
		&user.User{},
		&request.VacationRequest{},
		&kafka.OutboxEvent{},
	); err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	if err := registerModules(router, sqlDB, gormDB, redisClient); err != nil {
		return err
	}

	// The reference deployment ships with a fixed user directory.
	userService := user.NewService(user.NewRepository(gormDB))
	if err := userService.EnsureSeedUsers(context.Background()); err != nil {
		zap.L().Warn("seed users failed", zap.Error(err))
	}

	return nil
}
