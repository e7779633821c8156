// Package domain holds the session entity and its construction invariants.
package domain

import (
	"errors"
	"net/netip"
	"strings"
	"time"
)

// Sentinel errors for session construction and revocation. Handlers map
// these to HTTP status codes.
var (
	ErrMissingPrincipal      = errors.New("session requires a principal")
	ErrInvalidDeviceName     = errors.New("device name must not be blank")
	ErrInvalidIPAddress      = errors.New("ip address must be a valid network address")
	ErrInvalidExpiryOrdering = errors.New("expiry instants must be in the future and access must not outlive refresh")
	ErrAlreadyRevoked        = errors.New("session is already revoked")
)

// Principal is a reference to the authenticated user a session belongs to.
// The session does not own the user's lifecycle; it carries the identity
// data that ends up in token claims.
type Principal struct {
	ID          string
	Role        string
	DisplayName string
}

// IsZero reports whether the principal reference is unset.
func (p Principal) IsZero() bool {
	return strings.TrimSpace(p.ID) == ""
}

// Session is one device-scoped authentication grant: an access token and a
// refresh token with independent expiries, a one-way revocation flag, and
// the device and address it was issued to.
//
// A session is created only by New (issuance path) or Restore (persistence
// path). Token strings and expiry instants never change after creation; a
// refreshed session is a new session, not a mutation of this one.
type Session struct {
	id               string
	accessToken      Token
	refreshToken     Token
	accessExpiresAt  time.Time
	refreshExpiresAt time.Time
	revoked          bool
	deviceName       string
	ipAddress        netip.Addr
	principal        Principal
	createdAt        time.Time
}

// New constructs a session, enforcing every invariant: non-zero principal,
// non-blank device name, parseable ip, both expiries strictly in the
// future, and access expiry not after refresh expiry. No partially valid
// session is ever returned.
func New(accessToken, refreshToken Token, refreshExpiresAt, accessExpiresAt time.Time, principal Principal, deviceName, ipAddress string) (*Session, error) {
	if accessToken.IsZero() || refreshToken.IsZero() {
		return nil, ErrEmptyToken
	}
	if principal.IsZero() {
		return nil, ErrMissingPrincipal
	}
	if strings.TrimSpace(deviceName) == "" {
		return nil, ErrInvalidDeviceName
	}
	addr, err := netip.ParseAddr(ipAddress)
	if err != nil {
		return nil, ErrInvalidIPAddress
	}
	now := time.Now().UTC()
	if !accessExpiresAt.After(now) || !refreshExpiresAt.After(now) {
		return nil, ErrInvalidExpiryOrdering
	}
	if accessExpiresAt.After(refreshExpiresAt) {
		return nil, ErrInvalidExpiryOrdering
	}
	return &Session{
		accessToken:      accessToken,
		refreshToken:     refreshToken,
		accessExpiresAt:  accessExpiresAt.UTC(),
		refreshExpiresAt: refreshExpiresAt.UTC(),
		deviceName:       deviceName,
		ipAddress:        addr,
		principal:        principal,
		createdAt:        now,
	}, nil
}

// Restore rehydrates a persisted session without the temporal checks: a
// stored session may legitimately be expired or revoked. Repositories are
// the only intended caller; issuance must go through New.
func Restore(id string, accessToken, refreshToken Token, refreshExpiresAt, accessExpiresAt time.Time, revoked bool, principal Principal, deviceName, ipAddress string, createdAt time.Time) (*Session, error) {
	if principal.IsZero() {
		return nil, ErrMissingPrincipal
	}
	if strings.TrimSpace(deviceName) == "" {
		return nil, ErrInvalidDeviceName
	}
	addr, err := netip.ParseAddr(ipAddress)
	if err != nil {
		return nil, ErrInvalidIPAddress
	}
	return &Session{
		id:               id,
		accessToken:      accessToken,
		refreshToken:     refreshToken,
		accessExpiresAt:  accessExpiresAt.UTC(),
		refreshExpiresAt: refreshExpiresAt.UTC(),
		revoked:          revoked,
		deviceName:       deviceName,
		ipAddress:        addr,
		principal:        principal,
		createdAt:        createdAt.UTC(),
	}, nil
}

// Revoke transitions the session from active to revoked. The transition is
// one-way and not idempotent: revoking an already revoked session returns
// ErrAlreadyRevoked so double revocations surface as caller bugs instead
// of being silently absorbed.
func (s *Session) Revoke() error {
	if s.revoked {
		return ErrAlreadyRevoked
	}
	s.revoked = true
	return nil
}

// IsAccessExpired reports whether the access window has elapsed at now.
// Expiry is independent of revocation; callers must check both.
func (s *Session) IsAccessExpired(now time.Time) bool {
	return !now.Before(s.accessExpiresAt)
}

// IsRefreshExpired reports whether the refresh window has elapsed at now.
func (s *Session) IsRefreshExpired(now time.Time) bool {
	return !now.Before(s.refreshExpiresAt)
}

// IsRevoked reports whether Revoke has been called on this session.
func (s *Session) IsRevoked() bool {
	return s.revoked
}

// ID returns the session identifier; empty until assigned via SetID or Restore.
func (s *Session) ID() string { return s.id }

// SetID assigns the identifier once. Later calls are ignored so a persisted
// id can never be rewritten.
func (s *Session) SetID(id string) {
	if s.id == "" {
		s.id = id
	}
}

// AccessToken returns the access bearer token.
func (s *Session) AccessToken() Token { return s.accessToken }

// RefreshToken returns the refresh bearer token.
func (s *Session) RefreshToken() Token { return s.refreshToken }

// AccessExpiresAt returns the access window end.
func (s *Session) AccessExpiresAt() time.Time { return s.accessExpiresAt }

// RefreshExpiresAt returns the refresh window end.
func (s *Session) RefreshExpiresAt() time.Time { return s.refreshExpiresAt }

// DeviceName returns the originating client label.
func (s *Session) DeviceName() string { return s.deviceName }

// IPAddress returns the originating network address.
func (s *Session) IPAddress() netip.Addr { return s.ipAddress }

// Principal returns the reference to the owning user.
func (s *Session) Principal() Principal { return s.principal }

// CreatedAt returns the creation instant.
func (s *Session) CreatedAt() time.Time { return s.createdAt }
