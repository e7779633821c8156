package domain

import "time"

// AuditLog is one recorded security-relevant action: a login, logout, or
// session revocation.
type AuditLog struct {
	ID        string
	UserID    string
	Action    string
	Resource  string
	IP        string
	Metadata  string
	CreatedAt time.Time
}
