package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cms-backend/internal/shared/authz"
)

// AdminMiddleware gates admin-only mounts. Must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok || !authz.CanCreate(actor.Role) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Access denied: admin role required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
