// Package repository persists the moderation entities.
package repository

import (
	"context"

	"quizdesk/backend/internal/moderation/domain"
)

// ProposalRepository persists proposals. GetByID returns (nil, nil) for a
// missing row.
type ProposalRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Proposal, error)
	ListByStatus(ctx context.Context, status domain.ProposalStatus, limit, offset int32) ([]*domain.Proposal, error)
	Create(ctx context.Context, p *domain.Proposal) error
	Update(ctx context.Context, p *domain.Proposal) error
}

// ReportRepository persists reports.
type ReportRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	ListByStatus(ctx context.Context, status domain.ReportStatus, limit, offset int32) ([]*domain.Report, error)
	Create(ctx context.Context, r *domain.Report) error
	Update(ctx context.Context, r *domain.Report) error
}
