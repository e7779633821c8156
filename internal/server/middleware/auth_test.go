package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"quizdesk/backend/internal/security"
	sessiondomain "quizdesk/backend/internal/session/domain"
	sessionrepo "quizdesk/backend/internal/session/repository"
	sessionservice "quizdesk/backend/internal/session/service"
)

func newProtectedRouter(t *testing.T, tokens *security.TokenProvider, checker SessionChecker) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", RequireAuth(tokens, checker), func(c *gin.Context) {
		userID, _ := GetUserID(c.Request.Context())
		role, _ := GetRole(c.Request.Context())
		sessionID, _ := GetSessionID(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role, "session_id": sessionID})
	})
	return r
}

func issueSession(t *testing.T, repo *sessionrepo.MemoryRepository, tokens *security.TokenProvider) *sessiondomain.Session {
	t.Helper()
	issuer := sessionservice.NewIssuer(repo, tokens, nil, nil)
	sess, err := issuer.Issue(context.Background(), sessiondomain.Principal{
		ID: "u-1", Role: "admin", DisplayName: "Admin",
	}, "Chrome", "10.0.0.1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return sess
}

func TestRequireAuthWithCookie(t *testing.T) {
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	repo := sessionrepo.NewMemoryRepository()
	sess := issueSession(t, repo, tokens)
	r := newProtectedRouter(t, tokens, repo)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookie, Value: sess.AccessToken().String()})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
}

func TestRequireAuthWithBearerHeader(t *testing.T) {
	tokens, _ := security.NewTestTokenProvider()
	repo := sessionrepo.NewMemoryRepository()
	sess := issueSession(t, repo, tokens)
	r := newProtectedRouter(t, tokens, repo)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+sess.AccessToken().String())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
}

func TestRequireAuthMissingToken(t *testing.T) {
	tokens, _ := security.NewTestTokenProvider()
	r := newProtectedRouter(t, tokens, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status %d, want 401", w.Code)
	}
}

func TestRequireAuthRejectsGarbage(t *testing.T) {
	tokens, _ := security.NewTestTokenProvider()
	r := newProtectedRouter(t, tokens, nil)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status %d, want 401", w.Code)
	}
}

func TestRequireAuthRejectsRevokedSession(t *testing.T) {
	tokens, _ := security.NewTestTokenProvider()
	repo := sessionrepo.NewMemoryRepository()
	sess := issueSession(t, repo, tokens)

	issuer := sessionservice.NewIssuer(repo, tokens, nil, nil)
	if err := issuer.RevokeByID(context.Background(), sess.ID()); err != nil {
		t.Fatalf("RevokeByID: %v", err)
	}

	r := newProtectedRouter(t, tokens, repo)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+sess.AccessToken().String())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status %d, want 401 after revocation", w.Code)
	}
}

func TestIdentityRoundTrip(t *testing.T) {
	ctx := WithIdentity(context.Background(), "u-9", "editor", "s-3")
	if v, ok := GetUserID(ctx); !ok || v != "u-9" {
		t.Errorf("GetUserID = %q, %v", v, ok)
	}
	if v, ok := GetRole(ctx); !ok || v != "editor" {
		t.Errorf("GetRole = %q, %v", v, ok)
	}
	if v, ok := GetSessionID(ctx); !ok || v != "s-3" {
		t.Errorf("GetSessionID = %q, %v", v, ok)
	}
	if _, ok := GetUserID(context.Background()); ok {
		t.Error("empty context must not carry a user id")
	}
}
