package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taskforge/backend/internal/domain"
)

type PostgresProjectRepository struct {
	db *sql.DB
}

func NewPostgresProjectRepository(db *sql.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

const projectColumns = `id, name, workspace_id, image_url, post_date, tentative_end_date, assignees, created_at, updated_at`

func scanProject(row *sql.Row) (*domain.Project, error) {
	var project domain.Project
	var workspaceID, imageURL sql.NullString
	var assignees []byte

	err := row.Scan(
		&project.ID,
		&project.Name,
		&workspaceID,
		&imageURL,
		&project.PostDate,
		&project.TentativeEndDate,
		&assignees,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	project.WorkspaceID = fromNullStringPtr(workspaceID)
	project.ImageURL = fromNullString(imageURL)
	if project.Assignees, err = fromJSONB(assignees); err != nil {
		return nil, fmt.Errorf("failed to decode assignees: %w", err)
	}

	return &project, nil
}

func collectProjects(rows *sql.Rows) ([]domain.Project, error) {
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var project domain.Project
		var workspaceID, imageURL sql.NullString
		var assignees []byte

		err := rows.Scan(
			&project.ID,
			&project.Name,
			&workspaceID,
			&imageURL,
			&project.PostDate,
			&project.TentativeEndDate,
			&assignees,
			&project.CreatedAt,
			&project.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		project.WorkspaceID = fromNullStringPtr(workspaceID)
		project.ImageURL = fromNullString(imageURL)
		if project.Assignees, err = fromJSONB(assignees); err != nil {
			return nil, fmt.Errorf("failed to decode assignees: %w", err)
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

func (r *PostgresProjectRepository) Create(ctx context.Context, input domain.CreateProjectInput) (*domain.Project, error) {
	assignees, err := toJSONB(input.Assignees)
	if err != nil {
		return nil, fmt.Errorf("failed to encode assignees: %w", err)
	}

	query := `
		INSERT INTO projects (name, workspace_id, image_url, post_date, tentative_end_date, assignees)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + projectColumns

	row := r.db.QueryRowContext(ctx, query,
		input.Name,
		toNullString(input.WorkspaceID),
		toNullStringValue(input.ImageURL),
		input.PostDate,
		input.TentativeEndDate,
		assignees,
	)

	project, err := scanProject(row)
	if isUniqueViolation(err) {
		return nil, domain.ErrAlreadyExists
	}
	return project, err
}

func (r *PostgresProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return scanProject(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresProjectRepository) FindAll(ctx context.Context, workspaceID *string, limit int) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	args := []interface{}{}

	if workspaceID != nil {
		query += ` WHERE workspace_id = $1`
		args = append(args, *workspaceID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectProjects(rows)
}

func (r *PostgresProjectRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	idsJSON, err := toJSONB(ids)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE id IN (SELECT jsonb_array_elements_text($1::jsonb)::uuid)
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, idsJSON)
	if err != nil {
		return nil, err
	}
	return collectProjects(rows)
}

func (r *PostgresProjectRepository) FindForAssignee(ctx context.Context, userID string, limit int) ([]domain.Project, error) {
	query := fmt.Sprintf(`
		SELECT `+projectColumns+`
		FROM projects
		WHERE assignees @> to_jsonb(ARRAY[$1::text])
		   OR id IN (SELECT DISTINCT project_id FROM tasks WHERE assignee_id = $1 AND project_id IS NOT NULL)
		ORDER BY created_at DESC
		LIMIT %d
	`, limit)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return collectProjects(rows)
}

func (r *PostgresProjectRepository) Update(ctx context.Context, id string, input domain.UpdateProjectInput) (*domain.Project, error) {
	assignees, err := toJSONB(input.Assignees)
	if err != nil {
		return nil, fmt.Errorf("failed to encode assignees: %w", err)
	}

	query := `
		UPDATE projects SET
			name = COALESCE($2, name),
			image_url = COALESCE($3, image_url),
			assignees = COALESCE($4, assignees),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + projectColumns

	row := r.db.QueryRowContext(ctx, query, id, toNullString(input.Name), toNullString(input.ImageURL), assignees)

	project, err := scanProject(row)
	if isUniqueViolation(err) {
		return nil, domain.ErrAlreadyExists
	}
	return project, err
}

func (r *PostgresProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
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

func (r *PostgresProjectRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	idsJSON, err := toJSONB(ids)
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx,
		`DELETE FROM projects WHERE id IN (SELECT jsonb_array_elements_text($1::jsonb)::uuid)`, idsJSON)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

var _ domain.ProjectRepository = (*PostgresProjectRepository)(nil)
