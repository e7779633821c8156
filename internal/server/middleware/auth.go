// Package middleware holds the gin middleware shared by all route groups.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"quizdesk/backend/internal/security"
	sessiondomain "quizdesk/backend/internal/session/domain"
)

const bearerPrefix = "bearer "

// AccessCookie is the HttpOnly cookie carrying the access token.
const AccessCookie = "qd_access"

// SessionChecker resolves a session by id so the middleware can reject
// bearers whose session has been revoked since issuance.
type SessionChecker interface {
	GetByID(ctx context.Context, id string) (*sessiondomain.Session, error)
}

// RequireAuth validates the access token from the access cookie or the
// Authorization header, rejects revoked sessions when checker is non-nil,
// and sets user_id, role, session_id in the request context.
func RequireAuth(tokens *security.TokenProvider, checker SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization"})
			return
		}
		claims, err := tokens.ValidateAccess(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization"})
			return
		}
		if checker != nil {
			sess, err := checker.GetByID(c.Request.Context(), claims.SessionID())
			if err != nil || sess == nil || sess.IsRevoked() {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session revoked"})
				return
			}
		}
		ctx := WithIdentity(c.Request.Context(), claims.UserID(), claims.Role, claims.SessionID())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// extractBearer returns the access token from the cookie or the
// Authorization header, or "" if missing or malformed.
func extractBearer(c *gin.Context) string {
	if v, err := c.Cookie(AccessCookie); err == nil && v != "" {
		return v
	}
	v := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(v) < len(bearerPrefix) {
		return ""
	}
	if !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}
