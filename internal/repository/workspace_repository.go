package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/taskforge/backend/internal/domain"
)

type PostgresWorkspaceRepository struct {
	db *sql.DB
}

func NewPostgresWorkspaceRepository(db *sql.DB) *PostgresWorkspaceRepository {
	return &PostgresWorkspaceRepository{db: db}
}

func scanWorkspace(row *sql.Row) (*domain.Workspace, error) {
	var workspace domain.Workspace
	err := row.Scan(&workspace.ID, &workspace.Name, &workspace.CreatedAt, &workspace.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &workspace, nil
}

func (r *PostgresWorkspaceRepository) Create(ctx context.Context, name string) (*domain.Workspace, error) {
	query := `
		INSERT INTO workspaces (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at
	`

	workspace, err := scanWorkspace(r.db.QueryRowContext(ctx, query, name))
	if isUniqueViolation(err) {
		return nil, domain.ErrAlreadyExists
	}
	return workspace, err
}

func (r *PostgresWorkspaceRepository) FindByID(ctx context.Context, id string) (*domain.Workspace, error) {
	query := `SELECT id, name, created_at, updated_at FROM workspaces WHERE id = $1`
	return scanWorkspace(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresWorkspaceRepository) FindAll(ctx context.Context) ([]domain.Workspace, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at, updated_at FROM workspaces ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workspaces []domain.Workspace
	for rows.Next() {
		var workspace domain.Workspace
		if err := rows.Scan(&workspace.ID, &workspace.Name, &workspace.CreatedAt, &workspace.UpdatedAt); err != nil {
			return nil, err
		}
		workspaces = append(workspaces, workspace)
	}

	return workspaces, rows.Err()
}

func (r *PostgresWorkspaceRepository) FindFirst(ctx context.Context) (*domain.Workspace, error) {
	query := `SELECT id, name, created_at, updated_at FROM workspaces ORDER BY created_at LIMIT 1`
	return scanWorkspace(r.db.QueryRowContext(ctx, query))
}

var _ domain.WorkspaceRepository = (*PostgresWorkspaceRepository)(nil)
