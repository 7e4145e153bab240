package request

import (
	"go-vacation/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer *casbin.Enforcer,
	rdb *redis.Client,
) {
	requests := r.Group("/requests")
	requests.Use(middleware.Principal())
	{
		requests.POST("",
			middleware.Idempotency(rdb),
			middleware.Authorize(enforcer, "request", "create"),
			handler.Create,
		)
		requests.GET("", middleware.Authorize(enforcer, "request", "read_all"), handler.GetAll)
		requests.GET("/user/:userId", middleware.Authorize(enforcer, "request", "read_own"), handler.GetByUser)
		requests.PUT("/:id/status", middleware.Authorize(enforcer, "request", "decide"), handler.UpdateStatus)
	}
}
