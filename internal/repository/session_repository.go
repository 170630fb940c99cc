package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"time"

	"github.com/taskforge/backend/internal/crypto"
	"github.com/taskforge/backend/internal/domain"
)

type PostgresSessionRepository struct {
	db *sql.DB
}

func NewPostgresSessionRepository(db *sql.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

func (r *PostgresSessionRepository) Create(ctx context.Context, userID string, expiresAt time.Time) (*domain.Session, error) {
	token, err := crypto.GenerateSessionToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}
	return r.insert(ctx, r.db, token, userID, expiresAt)
}

type execQueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (r *PostgresSessionRepository) insert(ctx context.Context, q execQueryRower, token, userID string, expiresAt time.Time) (*domain.Session, error) {
	query := `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING token, user_id, expires_at, created_at
	`

	var session domain.Session
	err := q.QueryRowContext(ctx, query, token, userID, expiresAt).Scan(
		&session.Token,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if isUniqueViolation(err) {
		return nil, domain.ErrConflict
	}
	if err != nil {
		return nil, err
	}

	return &session, nil
}

func (r *PostgresSessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	query := `
		SELECT token, user_id, expires_at, created_at
		FROM sessions
		WHERE token = $1
	`

	var session domain.Session
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&session.Token,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &session, nil
}

func (r *PostgresSessionRepository) DeleteByToken(ctx context.Context, token string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresSessionRepository) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// RotateForUser runs the login-time delete-then-insert inside one
// transaction, so two concurrent logins cannot both leave a valid session
// behind.
func (r *PostgresSessionRepository) RotateForUser(ctx context.Context, userID string, expiresAt time.Time) (*domain.Session, error) {
	token, err := crypto.GenerateSessionToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("failed to clear previous sessions: %w", err)
	}

	session, err := r.insert(ctx, tx, token, userID, expiresAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return session, nil
}

func (r *PostgresSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresSessionRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

var _ domain.SessionRepository = (*PostgresSessionRepository)(nil)
