package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"quizdesk/backend/internal/moderation/domain"
)

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

// PostgresProposalRepository persists proposals in the proposals table.
type PostgresProposalRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresProposalRepository(pool *pgxpool.Pool) *PostgresProposalRepository {
	return &PostgresProposalRepository{pool: pool}
}

const proposalColumns = `id, prompt, answer, category_id, submitted_by, status, reviewed_by, created_at, updated_at`

func scanProposal(row pgx.Row) (*domain.Proposal, error) {
	var p domain.Proposal
	var categoryID, reviewedBy *string
	if err := row.Scan(&p.ID, &p.Prompt, &p.Answer, &categoryID, &p.SubmittedBy, &p.Status, &reviewedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.CategoryID = deref(categoryID)
	p.ReviewedBy = deref(reviewedBy)
	return &p, nil
}

// GetByID returns the proposal for id, or nil if not found.
func (r *PostgresProposalRepository) GetByID(ctx context.Context, id string) (*domain.Proposal, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+proposalColumns+` FROM proposals WHERE id = $1`, id)
	p, err := scanProposal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// ListByStatus returns proposals in the given state, newest first.
func (r *PostgresProposalRepository) ListByStatus(ctx context.Context, status domain.ProposalStatus, limit, offset int32) ([]*domain.Proposal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+proposalColumns+` FROM proposals
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresProposalRepository) Create(ctx context.Context, p *domain.Proposal) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO proposals (`+proposalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Prompt, p.Answer, nullify(p.CategoryID), p.SubmittedBy, p.Status, nullify(p.ReviewedBy), p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *PostgresProposalRepository) Update(ctx context.Context, p *domain.Proposal) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE proposals
		SET status = $2, reviewed_by = $3, updated_at = $4
		WHERE id = $1`,
		p.ID, p.Status, nullify(p.ReviewedBy), p.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("proposal %s: no row updated", p.ID)
	}
	return nil
}

// PostgresReportRepository persists reports in the reports table.
type PostgresReportRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresReportRepository(pool *pgxpool.Pool) *PostgresReportRepository {
	return &PostgresReportRepository{pool: pool}
}

const reportColumns = `id, question_id, reason, reported_by, status, resolved_by, created_at, updated_at`

func scanReport(row pgx.Row) (*domain.Report, error) {
	var rep domain.Report
	var resolvedBy *string
	if err := row.Scan(&rep.ID, &rep.QuestionID, &rep.Reason, &rep.ReportedBy, &rep.Status, &resolvedBy, &rep.CreatedAt, &rep.UpdatedAt); err != nil {
		return nil, err
	}
	rep.ResolvedBy = deref(resolvedBy)
	return &rep, nil
}

// GetByID returns the report for id, or nil if not found.
func (r *PostgresReportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, id)
	rep, err := scanReport(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rep, nil
}

// ListByStatus returns reports in the given state, newest first.
func (r *PostgresReportRepository) ListByStatus(ctx context.Context, status domain.ReportStatus, limit, offset int32) ([]*domain.Report, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+reportColumns+` FROM reports
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (r *PostgresReportRepository) Create(ctx context.Context, rep *domain.Report) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reports (`+reportColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rep.ID, rep.QuestionID, rep.Reason, rep.ReportedBy, rep.Status, nullify(rep.ResolvedBy), rep.CreatedAt, rep.UpdatedAt)
	return err
}

func (r *PostgresReportRepository) Update(ctx context.Context, rep *domain.Report) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE reports
		SET status = $2, resolved_by = $3, updated_at = $4
		WHERE id = $1`,
		rep.ID, rep.Status, nullify(rep.ResolvedBy), rep.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("report %s: no row updated", rep.ID)
	}
	return nil
}
