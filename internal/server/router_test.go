package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authhandler "quizdesk/backend/internal/auth/handler"
	authservice "quizdesk/backend/internal/auth/service"
	cataloghandler "quizdesk/backend/internal/catalog/handler"
	catalogrepo "quizdesk/backend/internal/catalog/repository"
	"quizdesk/backend/internal/security"
	sessionrepo "quizdesk/backend/internal/session/repository"
	sessionservice "quizdesk/backend/internal/session/service"
	userdomain "quizdesk/backend/internal/user/domain"
	userrepo "quizdesk/backend/internal/user/repository"
)

// newTestRouter wires a full router over memory repositories: one admin
// user, the catalog, and the auth flows.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	hasher := security.NewHasher(4)
	hash, err := hasher.Hash("pw")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	users := userrepo.NewMemoryRepository()
	if err := users.Create(context.Background(), &userdomain.User{
		ID:           uuid.New().String(),
		Username:     "root",
		DisplayName:  "Root",
		Role:         userdomain.RoleAdmin,
		PasswordHash: hash,
		Status:       userdomain.StatusActive,
	}); err != nil {
		t.Fatalf("Create user: %v", err)
	}
	sessions := sessionrepo.NewMemoryRepository()
	issuer := sessionservice.NewIssuer(sessions, tokens, nil, nil)
	auth := authservice.NewAuthService(users, hasher, tokens, issuer, nil, nil)

	return NewRouter(Deps{
		Auth: authhandler.NewHandler(auth, authhandler.CookieSettings{
			AccessTTL:  30 * time.Minute,
			RefreshTTL: 720 * time.Hour,
		}, nil),
		Catalog: cataloghandler.NewHandler(
			catalogrepo.NewMemoryQuestionRepository(),
			catalogrepo.NewMemoryCategoryRepository(),
			catalogrepo.NewMemoryAnnouncementRepository(),
			nil),
		Tokens:   tokens,
		Sessions: sessions,
	})
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status %d, want 200", w.Code)
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	r := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/questions", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status %d, want 401", w.Code)
	}
}

func TestLoginThenUseProtectedRoute(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"username":"root","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Chrome")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d body %s", w.Code, w.Body.String())
	}
	var access *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == authhandler.AccessCookie {
			access = c
		}
	}
	if access == nil {
		t.Fatal("login must set the access cookie")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/catalog/questions", nil)
	req.AddCookie(access)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("questions: status %d body %s", w.Code, w.Body.String())
	}

	// Logging out revokes the session; the cookie stops working.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.AddCookie(access)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: status %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/catalog/questions", nil)
	req.AddCookie(access)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("after logout: status %d, want 401", w.Code)
	}
}
