package repository

import (
	"context"

	"quizdesk/backend/internal/session/domain"
)

// Repository defines persistence for sessions. "Active" means not revoked;
// expiry is a predicate on the entity, not a storage state.
//
// UpdateAll must persist the batch atomically: a concurrent reader never
// observes a partially revoked set.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	Create(ctx context.Context, s *domain.Session) error
	Update(ctx context.Context, s *domain.Session) error
	UpdateAll(ctx context.Context, sessions []*domain.Session) error
	ListActiveByUser(ctx context.Context, userID string) ([]*domain.Session, error)
	ListActiveByUserAndDevice(ctx context.Context, userID, deviceName string) ([]*domain.Session, error)
}
