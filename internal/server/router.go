// Package server assembles the gin router and runs the HTTP server.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authhandler "quizdesk/backend/internal/auth/handler"
	cataloghandler "quizdesk/backend/internal/catalog/handler"
	moderationhandler "quizdesk/backend/internal/moderation/handler"
	"quizdesk/backend/internal/ratelimit"
	"quizdesk/backend/internal/security"
	"quizdesk/backend/internal/server/middleware"
)

// Deps holds the handlers and middleware inputs for the router.
type Deps struct {
	// Auth serves login/logout. Required.
	Auth *authhandler.Handler
	// Catalog serves questions, categories, announcements. Optional; routes
	// are omitted when nil.
	Catalog *cataloghandler.Handler
	// Moderation serves proposals and reports. Optional.
	Moderation *moderationhandler.Handler
	// Tokens validates access tokens on protected routes. Required.
	Tokens *security.TokenProvider
	// Sessions lets the auth middleware reject revoked sessions. Optional.
	Sessions middleware.SessionChecker
	// LoginLimiter throttles login attempts per client IP. Optional.
	LoginLimiter ratelimit.Limiter
	Logger       *zap.Logger
}

// NewRouter builds the gin engine with recovery, request telemetry, the
// public auth routes, and the protected API groups.
func NewRouter(deps Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Telemetry(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	deps.Auth.Register(api, ratelimit.Middleware(deps.LoginLimiter))

	protected := api.Group("", middleware.RequireAuth(deps.Tokens, deps.Sessions))
	if deps.Catalog != nil {
		deps.Catalog.Register(protected.Group("/catalog"))
	}
	if deps.Moderation != nil {
		deps.Moderation.Register(protected.Group("/moderation"))
	}
	return r
}
