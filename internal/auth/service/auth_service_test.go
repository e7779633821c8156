package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"quizdesk/backend/internal/security"
	sessiondomain "quizdesk/backend/internal/session/domain"
	sessionrepo "quizdesk/backend/internal/session/repository"
	sessionservice "quizdesk/backend/internal/session/service"
	userdomain "quizdesk/backend/internal/user/domain"
	userrepo "quizdesk/backend/internal/user/repository"
)

type fixture struct {
	auth     *AuthService
	sessions *sessionrepo.MemoryRepository
	users    *userrepo.MemoryRepository
	tokens   *security.TokenProvider
	userID   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	hasher := security.NewHasher(4)
	hash, err := hasher.Hash("correct horse battery")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	users := userrepo.NewMemoryRepository()
	userID := uuid.New().String()
	now := time.Now().UTC()
	if err := users.Create(context.Background(), &userdomain.User{
		ID:           userID,
		Username:     "quizmaster",
		DisplayName:  "Quiz Master",
		Role:         userdomain.RoleAdmin,
		PasswordHash: hash,
		Status:       userdomain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		t.Fatalf("Create user: %v", err)
	}
	sessions := sessionrepo.NewMemoryRepository()
	issuer := sessionservice.NewIssuer(sessions, tokens, nil, nil)
	return &fixture{
		auth:     NewAuthService(users, hasher, tokens, issuer, nil, nil),
		sessions: sessions,
		users:    users,
		tokens:   tokens,
		userID:   userID,
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	sess, err := f.auth.Login(context.Background(), "quizmaster", "correct horse battery", "Chrome", "192.168.1.1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.IsRevoked() {
		t.Error("fresh session must be active")
	}
	if sess.Principal().ID != f.userID || sess.Principal().Role != "admin" {
		t.Errorf("principal: %+v", sess.Principal())
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture(t)
	if _, err := f.auth.Login(context.Background(), "quizmaster", "wrong", "Chrome", "10.0.0.1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	f := newFixture(t)
	if _, err := f.auth.Login(context.Background(), "nobody", "whatever", "Chrome", "10.0.0.1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginDisabledUser(t *testing.T) {
	f := newFixture(t)
	hasher := security.NewHasher(4)
	hash, _ := hasher.Hash("pw")
	_ = f.users.Create(context.Background(), &userdomain.User{
		ID: uuid.New().String(), Username: "gone", DisplayName: "Gone",
		Role: userdomain.RoleEditor, PasswordHash: hash, Status: userdomain.StatusDisabled,
	})
	if _, err := f.auth.Login(context.Background(), "gone", "pw", "Chrome", "10.0.0.1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginSupersedesSameDeviceSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first, err := f.auth.Login(ctx, "quizmaster", "correct horse battery", "Chrome", "10.0.0.1")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, err := f.auth.Login(ctx, "quizmaster", "correct horse battery", "Chrome", "10.0.0.1")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}

	stored, _ := f.sessions.GetByID(ctx, first.ID())
	if !stored.IsRevoked() {
		t.Error("first Chrome session must be revoked by the second login")
	}
	stored, _ = f.sessions.GetByID(ctx, second.ID())
	if stored.IsRevoked() {
		t.Error("second Chrome session must be active")
	}
}

func TestLoginLeavesOtherDevicesAlone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	firefox, err := f.auth.Login(ctx, "quizmaster", "correct horse battery", "Firefox", "10.0.0.1")
	if err != nil {
		t.Fatalf("Firefox login: %v", err)
	}
	if _, err := f.auth.Login(ctx, "quizmaster", "correct horse battery", "Chrome", "10.0.0.1"); err != nil {
		t.Fatalf("Chrome login: %v", err)
	}
	stored, _ := f.sessions.GetByID(ctx, firefox.ID())
	if stored.IsRevoked() {
		t.Error("Firefox session must survive a Chrome login")
	}
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, err := f.auth.Login(ctx, "quizmaster", "correct horse battery", "Chrome", "10.0.0.1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := f.auth.Logout(ctx, sess.AccessToken().String()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	stored, _ := f.sessions.GetByID(ctx, sess.ID())
	if !stored.IsRevoked() {
		t.Error("session must be revoked after logout")
	}

	// A second logout with the same token is a double revocation.
	if err := f.auth.Logout(ctx, sess.AccessToken().String()); !errors.Is(err, sessiondomain.ErrAlreadyRevoked) {
		t.Errorf("second logout: got %v, want ErrAlreadyRevoked", err)
	}
}

func TestLogoutWithExpiredToken(t *testing.T) {
	// An expired but correctly signed bearer must still identify the
	// session for revocation.
	f := newFixture(t)
	ctx := context.Background()
	sess, err := f.auth.Login(ctx, "quizmaster", "correct horse battery", "Chrome", "10.0.0.1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	expiredProvider, err := security.NewTestTokenProviderTTL(-time.Minute, -time.Minute)
	if err != nil {
		t.Fatalf("NewTestTokenProviderTTL: %v", err)
	}
	expired, _, err := expiredProvider.IssueAccess(sess.ID(), f.userID, "admin", "Quiz Master")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if err := f.auth.Logout(ctx, expired); err != nil {
		t.Fatalf("Logout with expired token: %v", err)
	}
	stored, _ := f.sessions.GetByID(ctx, sess.ID())
	if !stored.IsRevoked() {
		t.Error("session must be revoked via expired token")
	}
}

func TestLogoutMissingToken(t *testing.T) {
	f := newFixture(t)
	if err := f.auth.Logout(context.Background(), "   "); !errors.Is(err, ErrMissingToken) {
		t.Errorf("got %v, want ErrMissingToken", err)
	}
}

func TestLogoutGarbageToken(t *testing.T) {
	f := newFixture(t)
	if err := f.auth.Logout(context.Background(), "not.a.jwt"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}

func TestLogoutUnknownSession(t *testing.T) {
	f := newFixture(t)
	token, _, err := f.tokens.IssueAccess(uuid.New().String(), f.userID, "admin", "Quiz Master")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if err := f.auth.Logout(context.Background(), token); !errors.Is(err, sessionservice.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestLogoutAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	var sessions []*sessiondomain.Session
	for _, device := range []string{"Chrome", "Firefox", "Safari"} {
		s, err := f.auth.Login(ctx, "quizmaster", "correct horse battery", device, "10.0.0.1")
		if err != nil {
			t.Fatalf("Login %s: %v", device, err)
		}
		sessions = append(sessions, s)
	}

	if err := f.auth.LogoutAll(ctx, sessions[0].AccessToken().String()); err != nil {
		t.Fatalf("LogoutAll: %v", err)
	}
	for _, s := range sessions {
		stored, _ := f.sessions.GetByID(ctx, s.ID())
		if !stored.IsRevoked() {
			t.Errorf("session %s on %s must be revoked", s.ID(), s.DeviceName())
		}
	}
}

func TestLogoutAllMissingToken(t *testing.T) {
	f := newFixture(t)
	if err := f.auth.LogoutAll(context.Background(), ""); !errors.Is(err, ErrMissingToken) {
		t.Errorf("got %v, want ErrMissingToken", err)
	}
}
