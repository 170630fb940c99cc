package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/taskforge/backend/internal/domain"
)

type PostgresMemberRepository struct {
	db *sql.DB
}

func NewPostgresMemberRepository(db *sql.DB) *PostgresMemberRepository {
	return &PostgresMemberRepository{db: db}
}

const memberColumns = `id, user_id, workspace_id, role, project_id, created_at, updated_at`

func scanMember(row *sql.Row) (*domain.Member, error) {
	var member domain.Member
	var projectID sql.NullString

	err := row.Scan(
		&member.ID,
		&member.UserID,
		&member.WorkspaceID,
		&member.Role,
		&projectID,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	member.ProjectID = fromNullStringPtr(projectID)
	return &member, nil
}

func (r *PostgresMemberRepository) Create(ctx context.Context, input domain.CreateMemberInput) (*domain.Member, error) {
	query := `
		INSERT INTO members (user_id, workspace_id, role, project_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + memberColumns

	row := r.db.QueryRowContext(ctx, query, input.UserID, input.WorkspaceID, input.Role, toNullString(input.ProjectID))

	member, err := scanMember(row)
	if isUniqueViolation(err) {
		return nil, domain.ErrAlreadyExists
	}
	return member, err
}

func (r *PostgresMemberRepository) FindByID(ctx context.Context, id string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	return scanMember(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresMemberRepository) FindByUserAndWorkspace(ctx context.Context, userID, workspaceID string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE user_id = $1 AND workspace_id = $2`
	return scanMember(r.db.QueryRowContext(ctx, query, userID, workspaceID))
}

func (r *PostgresMemberRepository) FindByUser(ctx context.Context, userID string) ([]domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var member domain.Member
		var projectID sql.NullString
		if err := rows.Scan(&member.ID, &member.UserID, &member.WorkspaceID, &member.Role, &projectID, &member.CreatedAt, &member.UpdatedAt); err != nil {
			return nil, err
		}
		member.ProjectID = fromNullStringPtr(projectID)
		members = append(members, member)
	}

	return members, rows.Err()
}

func (r *PostgresMemberRepository) FindByWorkspace(ctx context.Context, workspaceID string) ([]domain.MemberWithUser, error) {
	query := `
		SELECT m.id, m.user_id, m.workspace_id, m.role, m.project_id, m.created_at, m.updated_at, u.name, u.email
		FROM members m
		JOIN users u ON u.id = m.user_id
		WHERE m.workspace_id = $1
		ORDER BY m.created_at
	`

	rows, err := r.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.MemberWithUser
	for rows.Next() {
		var member domain.MemberWithUser
		var projectID sql.NullString
		if err := rows.Scan(&member.ID, &member.UserID, &member.WorkspaceID, &member.Role, &projectID, &member.CreatedAt, &member.UpdatedAt, &member.Name, &member.Email); err != nil {
			return nil, err
		}
		member.ProjectID = fromNullStringPtr(projectID)
		members = append(members, member)
	}

	return members, rows.Err()
}

func (r *PostgresMemberRepository) UpdateRole(ctx context.Context, id string, role domain.Role, projectID *string) (*domain.Member, error) {
	query := `
		UPDATE members SET role = $2, project_id = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + memberColumns

	return scanMember(r.db.QueryRowContext(ctx, query, id, role, toNullString(projectID)))
}

func (r *PostgresMemberRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *PostgresMemberRepository) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

var _ domain.MemberRepository = (*PostgresMemberRepository)(nil)
