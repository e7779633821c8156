package repository

import (
	"context"

	"quizdesk/backend/internal/user/domain"
)

// Repository defines persistence for users. Lookups return (nil, nil) for
// missing users; errors are database failures only.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}
