package middleware

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/lesson-ledger-api/pkg/errors"
	"github.com/noah-isme/lesson-ledger-api/pkg/response"
)

// RequireLevel rejects actors whose access level is numerically above max.
// It must run after JWT.
func RequireLevel(max int) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFromContext(c)
		if !actor.Authenticated() {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if !actor.HasLevel(max) {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "insufficient access level"))
			c.Abort()
			return
		}
		c.Next()
	}
}
