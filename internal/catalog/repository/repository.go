// Package repository persists the catalog entities.
package repository

import (
	"context"

	"quizdesk/backend/internal/catalog/domain"
)

// QuestionRepository persists questions. Get returns (nil, nil) for a
// missing row.
type QuestionRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Question, error)
	List(ctx context.Context, limit, offset int32) ([]*domain.Question, error)
	ListByCategory(ctx context.Context, categoryID string, limit, offset int32) ([]*domain.Question, error)
	Create(ctx context.Context, q *domain.Question) error
	Update(ctx context.Context, q *domain.Question) error
	Delete(ctx context.Context, id string) error
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context, limit, offset int32) ([]*domain.Category, error)
	Create(ctx context.Context, c *domain.Category) error
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id string) error
}

// AnnouncementRepository persists announcements.
type AnnouncementRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Announcement, error)
	List(ctx context.Context, limit, offset int32) ([]*domain.Announcement, error)
	Create(ctx context.Context, a *domain.Announcement) error
	Update(ctx context.Context, a *domain.Announcement) error
	Delete(ctx context.Context, id string) error
}
