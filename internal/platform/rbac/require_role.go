// Package rbac enforces role requirements on protected routes.
package rbac

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quizdesk/backend/internal/server/middleware"
)

// RequireAdmin ensures the caller is authenticated and carries the admin
// role. Must run after the auth middleware.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole("admin")
}

// RequireRole ensures the caller is authenticated and carries one of the
// allowed roles.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := middleware.GetRole(c.Request.Context())
		if !ok || role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		for _, a := range allowed {
			if role == a {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}
