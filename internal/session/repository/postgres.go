package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"quizdesk/backend/internal/session/domain"
)

// PostgresRepository persists sessions in the sessions table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a session repository backed by the given pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const sessionColumns = `id, user_id, user_role, user_display_name, access_token, refresh_token,
	access_expires_at, refresh_expires_at, revoked, device_name, ip_address, created_at`

// GetByID returns the session for id, or nil if not found. It returns an
// error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id)
	s, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

// Create persists a new session. The session must have its id assigned.
func (r *PostgresRepository) Create(ctx context.Context, s *domain.Session) error {
	if s.ID() == "" {
		return errors.New("session id must be assigned before persistence")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO sessions (`+sessionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		insertArgs(s)...)
	return err
}

// Update persists the mutable state (the revocation flag) of one session.
func (r *PostgresRepository) Update(ctx context.Context, s *domain.Session) error {
	tag, err := r.pool.Exec(ctx, `UPDATE sessions SET revoked = $2 WHERE id = $1`, s.ID(), s.IsRevoked())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session %s: no row updated", s.ID())
	}
	return nil
}

// UpdateAll persists the batch inside a single transaction so a concurrent
// reader never sees a partially revoked set.
func (r *PostgresRepository) UpdateAll(ctx context.Context, sessions []*domain.Session) error {
	if len(sessions) == 0 {
		return nil
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	for _, s := range sessions {
		if _, err := tx.Exec(ctx, `UPDATE sessions SET revoked = $2 WHERE id = $1`, s.ID(), s.IsRevoked()); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// ListActiveByUser returns all non-revoked sessions for the user.
func (r *PostgresRepository) ListActiveByUser(ctx context.Context, userID string) ([]*domain.Session, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+sessionColumns+` FROM sessions
		WHERE user_id = $1 AND NOT revoked
		ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

// ListActiveByUserAndDevice returns non-revoked sessions for the user on
// the given device. The device match is case-insensitive.
func (r *PostgresRepository) ListActiveByUserAndDevice(ctx context.Context, userID, deviceName string) ([]*domain.Session, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+sessionColumns+` FROM sessions
		WHERE user_id = $1 AND LOWER(device_name) = LOWER($2) AND NOT revoked
		ORDER BY created_at`, userID, deviceName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func insertArgs(s *domain.Session) []any {
	p := s.Principal()
	return []any{
		s.ID(), p.ID, p.Role, p.DisplayName,
		s.AccessToken().String(), s.RefreshToken().String(),
		s.AccessExpiresAt(), s.RefreshExpiresAt(),
		s.IsRevoked(), s.DeviceName(), s.IPAddress().String(), s.CreatedAt(),
	}
}

func collectSessions(rows pgx.Rows) ([]*domain.Session, error) {
	var out []*domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// scanSession maps one row back to the domain entity through Restore so
// the non-temporal invariants are re-checked at the store boundary.
func scanSession(row pgx.Row) (*domain.Session, error) {
	var (
		id, userID, role, displayName  string
		accessStr, refreshStr          string
		accessExpiresAt, refreshExpiry time.Time
		revoked                        bool
		deviceName, ipAddress          string
		createdAt                      time.Time
	)
	if err := row.Scan(&id, &userID, &role, &displayName, &accessStr, &refreshStr,
		&accessExpiresAt, &refreshExpiry, &revoked, &deviceName, &ipAddress, &createdAt); err != nil {
		return nil, err
	}
	access, err := domain.NewToken(accessStr)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	refresh, err := domain.NewToken(refreshStr)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	s, err := domain.Restore(id, access, refresh, refreshExpiry, accessExpiresAt, revoked,
		domain.Principal{ID: userID, Role: role, DisplayName: displayName}, deviceName, ipAddress, createdAt)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	return s, nil
}
