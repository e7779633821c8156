package ratelimit

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Middleware applies the limiter per client IP, returning 429 once the
// window limit is exhausted. A nil limiter passes everything through.
func Middleware(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		ok, err := limiter.Allow(c.Request.Context(), "login:"+c.ClientIP())
		if err != nil || ok {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, retry later"})
	}
}
