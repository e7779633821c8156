// Package service implements session issuance and revocation. The Issuer
// is the only component that mints or revokes sessions.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quizdesk/backend/internal/events"
	"quizdesk/backend/internal/security"
	"quizdesk/backend/internal/session/domain"
	"quizdesk/backend/internal/session/repository"
)

// Sentinel errors for the issuance service; handlers map them to HTTP codes.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("session not found")
)

// Issuer mints and revokes sessions, enforcing the per-(user, device)
// single-active-session policy together with the login flow. Store and
// codec failures propagate to the caller unretried; there is no
// compensating transaction beyond the store's own batch atomicity.
type Issuer struct {
	repo     repository.Repository
	tokens   *security.TokenProvider
	producer events.Producer
	logger   *zap.Logger
}

// NewIssuer returns an Issuer. producer may be nil (events disabled).
func NewIssuer(repo repository.Repository, tokens *security.TokenProvider, producer events.Producer, logger *zap.Logger) *Issuer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Issuer{repo: repo, tokens: tokens, producer: producer, logger: logger}
}

// Issue mints one new persisted session for the principal on the given
// device: a fresh session id becomes the jti of both bearer strings, the
// codec encodes the access and refresh tokens with their independent
// windows, and the session is constructed and saved.
func (i *Issuer) Issue(ctx context.Context, principal domain.Principal, deviceName, ipAddress string) (*domain.Session, error) {
	if principal.IsZero() {
		return nil, ErrInvalidArgument
	}
	sessionID := uuid.New().String()

	accessStr, accessExp, err := i.tokens.IssueAccess(sessionID, principal.ID, principal.Role, principal.DisplayName)
	if err != nil {
		return nil, err
	}
	refreshStr, refreshExp, err := i.tokens.IssueRefresh(sessionID, principal.ID, principal.Role, principal.DisplayName)
	if err != nil {
		return nil, err
	}
	accessToken, err := domain.NewToken(accessStr)
	if err != nil {
		return nil, err
	}
	refreshToken, err := domain.NewToken(refreshStr)
	if err != nil {
		return nil, err
	}

	sess, err := domain.New(accessToken, refreshToken, refreshExp, accessExp, principal, deviceName, ipAddress)
	if err != nil {
		return nil, err
	}
	sess.SetID(sessionID)

	if err := i.repo.Create(ctx, sess); err != nil {
		return nil, err
	}
	i.emit(events.TypeSessionIssued, sess)
	return sess, nil
}

// RevokeByID revokes the single session with the given id. Returns
// ErrNotFound for an unknown id and domain.ErrAlreadyRevoked when the
// session is already revoked.
func (i *Issuer) RevokeByID(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrInvalidArgument
	}
	sess, err := i.repo.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess == nil {
		return ErrNotFound
	}
	if err := sess.Revoke(); err != nil {
		return err
	}
	if err := i.repo.Update(ctx, sess); err != nil {
		return err
	}
	i.emit(events.TypeSessionRevoked, sess)
	return nil
}

// RevokeAllForUser revokes every active session of the user as one batch.
// Sessions already revoked are simply not in the active set; the store
// applies the batch atomically, so the operation is all-or-nothing for
// concurrent readers.
func (i *Issuer) RevokeAllForUser(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidArgument
	}
	active, err := i.repo.ListActiveByUser(ctx, userID)
	if err != nil {
		return err
	}
	return i.revokeBatch(ctx, active)
}

// RevokeForUserAndDevice revokes the user's active sessions on the given
// device (case-insensitive label match). The login flow calls this before
// issuing, so a user holds at most one active session per device while
// sessions on other devices stay untouched.
func (i *Issuer) RevokeForUserAndDevice(ctx context.Context, userID, deviceName string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(deviceName) == "" {
		return ErrInvalidArgument
	}
	active, err := i.repo.ListActiveByUserAndDevice(ctx, userID, deviceName)
	if err != nil {
		return err
	}
	return i.revokeBatch(ctx, active)
}

func (i *Issuer) revokeBatch(ctx context.Context, sessions []*domain.Session) error {
	if len(sessions) == 0 {
		return nil
	}
	for _, s := range sessions {
		if err := s.Revoke(); err != nil {
			// The active set never contains revoked sessions; a failure
			// here is a repository bug worth surfacing.
			return err
		}
	}
	if err := i.repo.UpdateAll(ctx, sessions); err != nil {
		return err
	}
	for _, s := range sessions {
		i.emit(events.TypeSessionRevoked, s)
	}
	return nil
}

// emit publishes a lifecycle event off the request path. Best-effort:
// failures are logged, never returned.
func (i *Issuer) emit(eventType string, sess *domain.Session) {
	if i.producer == nil {
		return
	}
	event := events.SessionEvent{
		EventType:  eventType,
		SessionID:  sess.ID(),
		UserID:     sess.Principal().ID,
		DeviceName: sess.DeviceName(),
		OccurredAt: time.Now().UTC(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := i.producer.Emit(ctx, event); err != nil {
			i.logger.Warn("session event emit failed",
				zap.String("event_type", eventType),
				zap.String("session_id", event.SessionID),
				zap.Error(err))
		}
	}()
}
