package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/taskforge/backend/internal/domain"
)

type PostgresInvitationRepository struct {
	db *sql.DB
}

func NewPostgresInvitationRepository(db *sql.DB) *PostgresInvitationRepository {
	return &PostgresInvitationRepository{db: db}
}

const invitationColumns = `id, email, workspace_id, role, project_id, invited_by, accepted_at, expires_at, created_at`

func scanInvitation(row *sql.Row) (*domain.Invitation, error) {
	var invitation domain.Invitation
	var projectID sql.NullString
	var acceptedAt sql.NullTime

	err := row.Scan(
		&invitation.ID,
		&invitation.Email,
		&invitation.WorkspaceID,
		&invitation.Role,
		&projectID,
		&invitation.InvitedBy,
		&acceptedAt,
		&invitation.ExpiresAt,
		&invitation.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	invitation.ProjectID = fromNullStringPtr(projectID)
	invitation.AcceptedAt = fromNullTime(acceptedAt)
	return &invitation, nil
}

func (r *PostgresInvitationRepository) Create(ctx context.Context, input domain.CreateInvitationInput) (*domain.Invitation, error) {
	query := `
		INSERT INTO invitations (email, workspace_id, role, project_id, invited_by, expires_at)
		VALUES (lower($1), $2, $3, $4, $5, $6)
		RETURNING ` + invitationColumns

	row := r.db.QueryRowContext(ctx, query,
		input.Email,
		input.WorkspaceID,
		input.Role,
		toNullString(input.ProjectID),
		input.InvitedBy,
		input.ExpiresAt,
	)

	invitation, err := scanInvitation(row)
	if isUniqueViolation(err) {
		return nil, domain.ErrAlreadyExists
	}
	return invitation, err
}

func (r *PostgresInvitationRepository) FindByID(ctx context.Context, id string) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE id = $1`
	return scanInvitation(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresInvitationRepository) MarkAccepted(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE invitations SET accepted_at = NOW() WHERE id = $1 AND accepted_at IS NULL`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrConflict
	}

	return nil
}

func (r *PostgresInvitationRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM invitations WHERE lower(email) = lower($1)`, email)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

var _ domain.InvitationRepository = (*PostgresInvitationRepository)(nil)
