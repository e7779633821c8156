package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"quizdesk/backend/internal/moderation/domain"
)

// MemoryProposalRepository is an in-memory proposal store for tests.
type MemoryProposalRepository struct {
	mu        sync.Mutex
	proposals map[string]*domain.Proposal
}

func NewMemoryProposalRepository() *MemoryProposalRepository {
	return &MemoryProposalRepository{proposals: make(map[string]*domain.Proposal)}
}

func (r *MemoryProposalRepository) GetByID(ctx context.Context, id string) (*domain.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.proposals[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *MemoryProposalRepository) ListByStatus(ctx context.Context, status domain.ProposalStatus, limit, offset int32) ([]*domain.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*domain.Proposal
	for _, p := range r.proposals {
		if p.Status == status {
			c := *p
			all = append(all, &c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= int32(len(all)) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && int32(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *MemoryProposalRepository) Create(ctx context.Context, p *domain.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.proposals[p.ID]; exists {
		return fmt.Errorf("proposal %s already exists", p.ID)
	}
	c := *p
	r.proposals[p.ID] = &c
	return nil
}

func (r *MemoryProposalRepository) Update(ctx context.Context, p *domain.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.proposals[p.ID]; !exists {
		return fmt.Errorf("proposal %s: no row updated", p.ID)
	}
	c := *p
	r.proposals[p.ID] = &c
	return nil
}

// MemoryReportRepository is an in-memory report store for tests.
type MemoryReportRepository struct {
	mu      sync.Mutex
	reports map[string]*domain.Report
}

func NewMemoryReportRepository() *MemoryReportRepository {
	return &MemoryReportRepository{reports: make(map[string]*domain.Report)}
}

func (r *MemoryReportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rep, ok := r.reports[id]
	if !ok {
		return nil, nil
	}
	c := *rep
	return &c, nil
}

func (r *MemoryReportRepository) ListByStatus(ctx context.Context, status domain.ReportStatus, limit, offset int32) ([]*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*domain.Report
	for _, rep := range r.reports {
		if rep.Status == status {
			c := *rep
			all = append(all, &c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= int32(len(all)) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && int32(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *MemoryReportRepository) Create(ctx context.Context, rep *domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.reports[rep.ID]; exists {
		return fmt.Errorf("report %s already exists", rep.ID)
	}
	c := *rep
	r.reports[rep.ID] = &c
	return nil
}

func (r *MemoryReportRepository) Update(ctx context.Context, rep *domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.reports[rep.ID]; !exists {
		return fmt.Errorf("report %s: no row updated", rep.ID)
	}
	c := *rep
	r.reports[rep.ID] = &c
	return nil
}
