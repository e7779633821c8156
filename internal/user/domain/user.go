package domain

import (
	"errors"
	"strings"
	"time"
)

// User is the authenticated principal: a trivia administrator or editor.
// Sessions reference users; they do not own their lifecycle.
type User struct {
	ID           string
	Username     string
	DisplayName  string
	Role         Role
	PasswordHash string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role controls what catalog and moderation operations a user may perform.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// Status marks whether the user may log in.
type Status string

const (
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)

// Validate validates the user for persistence. Returns an error describing
// the first validation failure.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return errors.New("username is required")
	}
	if strings.TrimSpace(u.DisplayName) == "" {
		return errors.New("display name is required")
	}
	switch u.Role {
	case RoleAdmin, RoleEditor:
	default:
		return errors.New("role must be admin or editor")
	}
	if u.Status == "" {
		u.Status = StatusActive
	}
	return nil
}
