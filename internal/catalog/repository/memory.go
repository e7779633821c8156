package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"quizdesk/backend/internal/catalog/domain"
)

// MemoryQuestionRepository is an in-memory question store for tests.
type MemoryQuestionRepository struct {
	mu        sync.Mutex
	questions map[string]*domain.Question
}

func NewMemoryQuestionRepository() *MemoryQuestionRepository {
	return &MemoryQuestionRepository{questions: make(map[string]*domain.Question)}
}

func (r *MemoryQuestionRepository) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.questions[id]
	if !ok {
		return nil, nil
	}
	c := *q
	return &c, nil
}

func (r *MemoryQuestionRepository) List(ctx context.Context, limit, offset int32) ([]*domain.Question, error) {
	return r.list(func(*domain.Question) bool { return true }, limit, offset)
}

func (r *MemoryQuestionRepository) ListByCategory(ctx context.Context, categoryID string, limit, offset int32) ([]*domain.Question, error) {
	return r.list(func(q *domain.Question) bool { return q.CategoryID == categoryID }, limit, offset)
}

func (r *MemoryQuestionRepository) list(match func(*domain.Question) bool, limit, offset int32) ([]*domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*domain.Question
	for _, q := range r.questions {
		if match(q) {
			c := *q
			all = append(all, &c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return window(all, limit, offset), nil
}

func (r *MemoryQuestionRepository) Create(ctx context.Context, q *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.questions[q.ID]; exists {
		return fmt.Errorf("question %s already exists", q.ID)
	}
	c := *q
	r.questions[q.ID] = &c
	return nil
}

func (r *MemoryQuestionRepository) Update(ctx context.Context, q *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.questions[q.ID]; !exists {
		return fmt.Errorf("question %s: no row updated", q.ID)
	}
	c := *q
	r.questions[q.ID] = &c
	return nil
}

func (r *MemoryQuestionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.questions[id]; !exists {
		return fmt.Errorf("question %s: no row deleted", id)
	}
	delete(r.questions, id)
	return nil
}

// MemoryCategoryRepository is an in-memory category store for tests.
type MemoryCategoryRepository struct {
	mu         sync.Mutex
	categories map[string]*domain.Category
}

func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{categories: make(map[string]*domain.Category)}
}

func (r *MemoryCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *MemoryCategoryRepository) List(ctx context.Context, limit, offset int32) ([]*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*domain.Category
	for _, c := range r.categories {
		cp := *c
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		return strings.ToLower(all[i].Name) < strings.ToLower(all[j].Name)
	})
	return window(all, limit, offset), nil
}

func (r *MemoryCategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.categories[c.ID]; exists {
		return fmt.Errorf("category %s already exists", c.ID)
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *MemoryCategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.categories[c.ID]; !exists {
		return fmt.Errorf("category %s: no row updated", c.ID)
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *MemoryCategoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.categories[id]; !exists {
		return fmt.Errorf("category %s: no row deleted", id)
	}
	delete(r.categories, id)
	return nil
}

// MemoryAnnouncementRepository is an in-memory announcement store for tests.
type MemoryAnnouncementRepository struct {
	mu            sync.Mutex
	announcements map[string]*domain.Announcement
}

func NewMemoryAnnouncementRepository() *MemoryAnnouncementRepository {
	return &MemoryAnnouncementRepository{announcements: make(map[string]*domain.Announcement)}
}

func (r *MemoryAnnouncementRepository) GetByID(ctx context.Context, id string) (*domain.Announcement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.announcements[id]
	if !ok {
		return nil, nil
	}
	c := *a
	return &c, nil
}

func (r *MemoryAnnouncementRepository) List(ctx context.Context, limit, offset int32) ([]*domain.Announcement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*domain.Announcement
	for _, a := range r.announcements {
		c := *a
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return window(all, limit, offset), nil
}

func (r *MemoryAnnouncementRepository) Create(ctx context.Context, a *domain.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.announcements[a.ID]; exists {
		return fmt.Errorf("announcement %s already exists", a.ID)
	}
	c := *a
	r.announcements[a.ID] = &c
	return nil
}

func (r *MemoryAnnouncementRepository) Update(ctx context.Context, a *domain.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.announcements[a.ID]; !exists {
		return fmt.Errorf("announcement %s: no row updated", a.ID)
	}
	c := *a
	r.announcements[a.ID] = &c
	return nil
}

func (r *MemoryAnnouncementRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.announcements[id]; !exists {
		return fmt.Errorf("announcement %s: no row deleted", id)
	}
	delete(r.announcements, id)
	return nil
}

// window applies limit/offset to an already sorted slice.
func window[T any](all []T, limit, offset int32) []T {
	if offset >= int32(len(all)) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && int32(len(all)) > limit {
		all = all[:limit]
	}
	return all
}
