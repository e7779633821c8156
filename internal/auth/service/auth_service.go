// Package service implements the login and logout flows on top of the
// session issuer and the token provider.
package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"quizdesk/backend/internal/audit"
	"quizdesk/backend/internal/security"
	sessiondomain "quizdesk/backend/internal/session/domain"
	sessionservice "quizdesk/backend/internal/session/service"
	userdomain "quizdesk/backend/internal/user/domain"
	userrepo "quizdesk/backend/internal/user/repository"
)

// Sentinel errors for the auth flows; the handler maps them to HTTP codes.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing bearer token")
	ErrUnauthorized       = errors.New("claims could not be recovered")
)

// AuthService orchestrates login and logout: credential verification,
// per-device session supersession, issuance, and revocation by recovered
// claims.
type AuthService struct {
	users  userrepo.Repository
	hasher *security.Hasher
	tokens *security.TokenProvider
	issuer *sessionservice.Issuer
	audits audit.AuditLogger
	logger *zap.Logger
}

// NewAuthService returns an AuthService. audits may be nil.
func NewAuthService(users userrepo.Repository, hasher *security.Hasher, tokens *security.TokenProvider, issuer *sessionservice.Issuer, audits audit.AuditLogger, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		issuer: issuer,
		audits: audits,
		logger: logger,
	}
}

// Login authenticates the user and issues a new session for the device.
// Any active session for the same (user, device) pair is revoked first, so
// logging in again on one device supersedes only that device's session.
//
// Two concurrent logins for the same pair can both pass the revoke step
// and leave two live sessions; the superseded one is harmless until used
// and the next login on that device cleans it up.
func (s *AuthService) Login(ctx context.Context, username, password, deviceName, ipAddress string) (*sessiondomain.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil || u.Status != userdomain.StatusActive {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.issuer.RevokeForUserAndDevice(ctx, u.ID, deviceName); err != nil &&
		!errors.Is(err, sessionservice.ErrInvalidArgument) {
		// Blank device is caught again by session construction below;
		// everything else is a store failure that must stop the login.
		return nil, err
	}

	principal := sessiondomain.Principal{ID: u.ID, Role: string(u.Role), DisplayName: u.DisplayName}
	sess, err := s.issuer.Issue(ctx, principal, deviceName, ipAddress)
	if err != nil {
		return nil, err
	}
	if s.audits != nil {
		s.audits.LogEvent(ctx, u.ID, audit.ActionLogin, "session", ipAddress, "device="+sess.DeviceName())
	}
	s.logger.Info("user logged in",
		zap.String("user_id", u.ID),
		zap.String("device", sess.DeviceName()),
		zap.String("session_id", sess.ID()))
	return sess, nil
}

// Logout revokes the single session named by the bearer string's jti.
// The bearer may be expired; its signature must still verify. Returns
// ErrMissingToken for a blank bearer, ErrUnauthorized when claims cannot
// be recovered or carry no jti, and propagates ErrNotFound and
// ErrAlreadyRevoked from the revocation.
func (s *AuthService) Logout(ctx context.Context, bearer string) error {
	claims, err := s.recover(bearer)
	if err != nil {
		return err
	}
	if strings.TrimSpace(claims.SessionID()) == "" {
		return ErrUnauthorized
	}
	if err := s.issuer.RevokeByID(ctx, claims.SessionID()); err != nil {
		return err
	}
	if s.audits != nil {
		s.audits.LogEvent(ctx, claims.UserID(), audit.ActionLogout, "session", "", "session_id="+claims.SessionID())
	}
	return nil
}

// LogoutAll revokes every active session of the user named by the bearer
// string's subject claim. Same tolerance and failure semantics as Logout.
func (s *AuthService) LogoutAll(ctx context.Context, bearer string) error {
	claims, err := s.recover(bearer)
	if err != nil {
		return err
	}
	if strings.TrimSpace(claims.UserID()) == "" {
		return ErrUnauthorized
	}
	if err := s.issuer.RevokeAllForUser(ctx, claims.UserID()); err != nil {
		return err
	}
	if s.audits != nil {
		s.audits.LogEvent(ctx, claims.UserID(), audit.ActionLogoutAll, "session", "", "")
	}
	return nil
}

// recover validates presence and recovers claims ignoring expiry, so a
// logout still works after the short access window has elapsed.
func (s *AuthService) recover(bearer string) (*security.Claims, error) {
	if strings.TrimSpace(bearer) == "" {
		return nil, ErrMissingToken
	}
	claims := s.tokens.RecoverClaims(bearer)
	if claims == nil {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
