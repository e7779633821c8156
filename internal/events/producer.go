// Package events publishes session lifecycle events for downstream
// consumers (analytics, audit pipelines). Emission is best-effort and must
// never fail a login or revocation.
package events

import (
	"context"
	"time"
)

// Event types published on the session stream.
const (
	TypeSessionIssued  = "session.issued"
	TypeSessionRevoked = "session.revoked"
)

// SessionEvent is the JSON payload published per session lifecycle change.
type SessionEvent struct {
	EventType  string    `json:"event_type"`
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id"`
	DeviceName string    `json:"device_name,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Producer publishes session events. Implementations must be safe for
// concurrent use; a nil Producer is treated as disabled by callers.
type Producer interface {
	Emit(ctx context.Context, event SessionEvent) error
	Close() error
}
