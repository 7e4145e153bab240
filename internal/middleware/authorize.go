package middleware

import (
	"net/http"

	"go-vacation/internal/shared/apperror"
	"go-vacation/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Enforcer is the slice of casbin's API this middleware needs.
type Enforcer interface {
	Enforce(rvals ...interface{}) (bool, error)
}

// Authorize checks the principal's role against the static policy for a
// resource/action pair. Principal must run first.
func Authorize(enforcer Enforcer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := enforcer.Enforce(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, apperror.ErrInternal.Message, nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				apperror.ErrForbidden.Message, resource+":"+action)
			c.Abort()
			return
		}

		c.Next()
	}
}
