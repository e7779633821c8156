// Package handler exposes the auth flows over HTTP.
package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quizdesk/backend/internal/auth/service"
	sessiondomain "quizdesk/backend/internal/session/domain"
	sessionservice "quizdesk/backend/internal/session/service"
)

const (
	// AccessCookie and RefreshCookie name the HttpOnly cookies carrying
	// the two tokens.
	AccessCookie  = "qd_access"
	RefreshCookie = "qd_refresh"
)

// CookieSettings control the token cookies written on login.
type CookieSettings struct {
	Domain     string
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Handler serves the login and logout endpoints.
type Handler struct {
	auth    *service.AuthService
	cookies CookieSettings
	logger  *zap.Logger
}

func NewHandler(auth *service.AuthService, cookies CookieSettings, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{auth: auth, cookies: cookies, logger: logger}
}

// Register mounts the auth routes on the group. loginMiddleware is
// applied to the login route only, so the rate limiter does not throttle
// logouts.
func (h *Handler) Register(rg *gin.RouterGroup, loginMiddleware ...gin.HandlerFunc) {
	login := append(loginMiddleware, h.Login)
	rg.POST("/auth/login", login...)
	rg.POST("/auth/logout", h.Logout)
	rg.POST("/auth/logout-all", h.LogoutAll)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	SessionID        string    `json:"session_id"`
	UserID           string    `json:"user_id"`
	Role             string    `json:"role"`
	DisplayName      string    `json:"display_name"`
	DeviceName       string    `json:"device_name"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// Login handles POST /api/v1/auth/login. On success the access and
// refresh tokens are set as HttpOnly cookies and the session metadata is
// returned in the body; the raw tokens never appear in the JSON.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	device := deviceFromRequest(c)
	sess, err := h.auth.Login(c.Request.Context(), req.Username, req.Password, device, c.ClientIP())
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.setTokenCookie(c, AccessCookie, sess.AccessToken().String(), h.cookies.AccessTTL)
	h.setTokenCookie(c, RefreshCookie, sess.RefreshToken().String(), h.cookies.RefreshTTL)
	c.JSON(http.StatusOK, sessionResponse{
		SessionID:        sess.ID(),
		UserID:           sess.Principal().ID,
		Role:             sess.Principal().Role,
		DisplayName:      sess.Principal().DisplayName,
		DeviceName:       sess.DeviceName(),
		AccessExpiresAt:  sess.AccessExpiresAt(),
		RefreshExpiresAt: sess.RefreshExpiresAt(),
	})
}

// Logout handles POST /api/v1/auth/logout. The bearer is taken from the
// access cookie or the Authorization header; an expired token is accepted
// as long as its signature verifies.
func (h *Handler) Logout(c *gin.Context) {
	// The cookies are cleared whatever the revocation outcome; a client
	// that asked to log out should not keep its tokens.
	h.clearTokenCookies(c)
	if err := h.auth.Logout(c.Request.Context(), bearerFromRequest(c)); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// LogoutAll handles POST /api/v1/auth/logout-all and revokes every active
// session of the calling user.
func (h *Handler) LogoutAll(c *gin.Context) {
	h.clearTokenCookies(c)
	if err := h.auth.LogoutAll(c.Request.Context(), bearerFromRequest(c)); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out everywhere"})
}

func (h *Handler) setTokenCookie(c *gin.Context, name, value string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, value, int(ttl.Seconds()), "/", h.cookies.Domain, h.cookies.Secure, true)
}

func (h *Handler) clearTokenCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AccessCookie, "", -1, "/", h.cookies.Domain, h.cookies.Secure, true)
	c.SetCookie(RefreshCookie, "", -1, "/", h.cookies.Domain, h.cookies.Secure, true)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, service.ErrMissingToken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, sessionservice.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, sessiondomain.ErrAlreadyRevoked):
		c.JSON(http.StatusConflict, gin.H{"error": "session already revoked"})
	case errors.Is(err, sessionservice.ErrInvalidArgument),
		errors.Is(err, sessiondomain.ErrInvalidDeviceName),
		errors.Is(err, sessiondomain.ErrInvalidIPAddress):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	default:
		h.logger.Error("auth handler failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// bearerFromRequest prefers the access cookie and falls back to the
// Authorization header.
func bearerFromRequest(c *gin.Context) string {
	if v, err := c.Cookie(AccessCookie); err == nil && v != "" {
		return v
	}
	authz := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(authz, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

func deviceFromRequest(c *gin.Context) string {
	if v := strings.TrimSpace(c.GetHeader("X-Device-Name")); v != "" {
		return v
	}
	return strings.TrimSpace(c.Request.UserAgent())
}
