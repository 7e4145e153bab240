package user

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the user directory. The endpoint is deliberately
// unauthenticated: the client needs it to pick an identity before any
// principal exists.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	users := r.Group("/users")
	{
		users.GET("", handler.GetAll)
	}
}
