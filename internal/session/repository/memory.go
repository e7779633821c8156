package repository

import (
	"context"
	"errors"
	"strings"
	"sync"

	"quizdesk/backend/internal/session/domain"
)

// MemoryRepository is an in-memory session store for tests and local runs.
// It keeps the same atomicity contract as the Postgres implementation:
// UpdateAll applies the whole batch under one lock.
type MemoryRepository struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

// NewMemoryRepository returns an empty in-memory session store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{sessions: make(map[string]*domain.Session)}
}

// GetByID returns the session for id, or nil if not found.
func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return copySession(s), nil
}

// Create stores a new session. The session must have its id assigned.
func (r *MemoryRepository) Create(ctx context.Context, s *domain.Session) error {
	if s.ID() == "" {
		return errors.New("session id must be assigned before persistence")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[s.ID()]; exists {
		return errors.New("session id already exists")
	}
	r.sessions[s.ID()] = copySession(s)
	return nil
}

// Update replaces the stored session state for one id.
func (r *MemoryRepository) Update(ctx context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.ID()]; !ok {
		return errors.New("session not found")
	}
	r.sessions[s.ID()] = copySession(s)
	return nil
}

// UpdateAll replaces the stored state for every session in the batch under
// a single lock: readers never observe a partial batch.
func (r *MemoryRepository) UpdateAll(ctx context.Context, sessions []*domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range sessions {
		if _, ok := r.sessions[s.ID()]; !ok {
			return errors.New("session not found")
		}
	}
	for _, s := range sessions {
		r.sessions[s.ID()] = copySession(s)
	}
	return nil
}

// ListActiveByUser returns non-revoked sessions for the user.
func (r *MemoryRepository) ListActiveByUser(ctx context.Context, userID string) ([]*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Session
	for _, s := range r.sessions {
		if s.Principal().ID == userID && !s.IsRevoked() {
			out = append(out, copySession(s))
		}
	}
	return out, nil
}

// ListActiveByUserAndDevice returns non-revoked sessions for the user on
// the given device, matching the device label case-insensitively.
func (r *MemoryRepository) ListActiveByUserAndDevice(ctx context.Context, userID, deviceName string) ([]*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Session
	for _, s := range r.sessions {
		if s.Principal().ID == userID && strings.EqualFold(s.DeviceName(), deviceName) && !s.IsRevoked() {
			out = append(out, copySession(s))
		}
	}
	return out, nil
}

func copySession(s *domain.Session) *domain.Session {
	c, err := domain.Restore(s.ID(), s.AccessToken(), s.RefreshToken(),
		s.RefreshExpiresAt(), s.AccessExpiresAt(), s.IsRevoked(),
		s.Principal(), s.DeviceName(), s.IPAddress().String(), s.CreatedAt())
	if err != nil {
		// Stored sessions always pass Restore; they were validated on the way in.
		panic(err)
	}
	return c
}
