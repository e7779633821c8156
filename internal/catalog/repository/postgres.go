package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"quizdesk/backend/internal/catalog/domain"
)

// nullify maps "" to SQL NULL for optional UUID columns.
func nullify(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// PostgresQuestionRepository persists questions in the questions table.
type PostgresQuestionRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresQuestionRepository(pool *pgxpool.Pool) *PostgresQuestionRepository {
	return &PostgresQuestionRepository{pool: pool}
}

const questionColumns = `id, category_id, prompt, answer, difficulty, created_by, created_at, updated_at`

func scanQuestion(row pgx.Row) (*domain.Question, error) {
	var q domain.Question
	var categoryID, createdBy *string
	if err := row.Scan(&q.ID, &categoryID, &q.Prompt, &q.Answer, &q.Difficulty, &createdBy, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return nil, err
	}
	q.CategoryID = deref(categoryID)
	q.CreatedBy = deref(createdBy)
	return &q, nil
}

// GetByID returns the question for id, or nil if not found.
func (r *PostgresQuestionRepository) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = $1`, id)
	q, err := scanQuestion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return q, nil
}

// List returns questions ordered by creation time, newest first, bounded
// by limit and offset.
func (r *PostgresQuestionRepository) List(ctx context.Context, limit, offset int32) ([]*domain.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+questionColumns+` FROM questions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectQuestions(rows)
}

// ListByCategory returns the category's questions, newest first.
func (r *PostgresQuestionRepository) ListByCategory(ctx context.Context, categoryID string, limit, offset int32) ([]*domain.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+questionColumns+` FROM questions
		WHERE category_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, categoryID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectQuestions(rows)
}

func collectQuestions(rows pgx.Rows) ([]*domain.Question, error) {
	var out []*domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *PostgresQuestionRepository) Create(ctx context.Context, q *domain.Question) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO questions (`+questionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		q.ID, nullify(q.CategoryID), q.Prompt, q.Answer, q.Difficulty, nullify(q.CreatedBy), q.CreatedAt, q.UpdatedAt)
	return err
}

func (r *PostgresQuestionRepository) Update(ctx context.Context, q *domain.Question) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE questions
		SET category_id = $2, prompt = $3, answer = $4, difficulty = $5, updated_at = $6
		WHERE id = $1`,
		q.ID, nullify(q.CategoryID), q.Prompt, q.Answer, q.Difficulty, q.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("question %s: no row updated", q.ID)
	}
	return nil
}

func (r *PostgresQuestionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("question %s: no row deleted", id)
	}
	return nil
}

// PostgresCategoryRepository persists categories in the categories table.
type PostgresCategoryRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCategoryRepository(pool *pgxpool.Pool) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{pool: pool}
}

const categoryColumns = `id, name, description, created_at, updated_at`

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// List returns categories in name order, bounded by limit and offset.
func (r *PostgresCategoryRepository) List(ctx context.Context, limit, offset int32) ([]*domain.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+categoryColumns+` FROM categories
		ORDER BY LOWER(name)
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresCategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO categories (`+categoryColumns+`)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *PostgresCategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE categories SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		c.ID, c.Name, c.Description, c.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category %s: no row updated", c.ID)
	}
	return nil
}

func (r *PostgresCategoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category %s: no row deleted", id)
	}
	return nil
}

// PostgresAnnouncementRepository persists announcements.
type PostgresAnnouncementRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresAnnouncementRepository(pool *pgxpool.Pool) *PostgresAnnouncementRepository {
	return &PostgresAnnouncementRepository{pool: pool}
}

const announcementColumns = `id, title, body, published, created_by, created_at, updated_at`

func scanAnnouncement(row pgx.Row) (*domain.Announcement, error) {
	var a domain.Announcement
	var createdBy *string
	if err := row.Scan(&a.ID, &a.Title, &a.Body, &a.Published, &createdBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.CreatedBy = deref(createdBy)
	return &a, nil
}

func (r *PostgresAnnouncementRepository) GetByID(ctx context.Context, id string) (*domain.Announcement, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+announcementColumns+` FROM announcements WHERE id = $1`, id)
	a, err := scanAnnouncement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// List returns announcements newest first, bounded by limit and offset.
func (r *PostgresAnnouncementRepository) List(ctx context.Context, limit, offset int32) ([]*domain.Announcement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+announcementColumns+` FROM announcements
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresAnnouncementRepository) Create(ctx context.Context, a *domain.Announcement) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO announcements (`+announcementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.Title, a.Body, a.Published, nullify(a.CreatedBy), a.CreatedAt, a.UpdatedAt)
	return err
}

func (r *PostgresAnnouncementRepository) Update(ctx context.Context, a *domain.Announcement) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE announcements
		SET title = $2, body = $3, published = $4, updated_at = $5
		WHERE id = $1`,
		a.ID, a.Title, a.Body, a.Published, a.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("announcement %s: no row updated", a.ID)
	}
	return nil
}

func (r *PostgresAnnouncementRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("announcement %s: no row deleted", id)
	}
	return nil
}
