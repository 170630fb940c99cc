package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/taskforge/backend/internal/domain"
)

type PostgresTaskRepository struct {
	db *sql.DB
}

func NewPostgresTaskRepository(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

const taskColumns = `id, summary, status, issue_id, project_id, workspace_id, assignee_id, parent_task_id, due_date, created_at, updated_at`

func scanTask(row *sql.Row) (*domain.Task, error) {
	var task domain.Task
	var projectID, workspaceID, assigneeID, parentTaskID sql.NullString
	var dueDate sql.NullTime

	err := row.Scan(
		&task.ID,
		&task.Summary,
		&task.Status,
		&task.IssueID,
		&projectID,
		&workspaceID,
		&assigneeID,
		&parentTaskID,
		&dueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	task.ProjectID = fromNullStringPtr(projectID)
	task.WorkspaceID = fromNullStringPtr(workspaceID)
	task.AssigneeID = fromNullStringPtr(assigneeID)
	task.ParentTaskID = fromNullStringPtr(parentTaskID)
	task.DueDate = fromNullTime(dueDate)
	return &task, nil
}

func (r *PostgresTaskRepository) Create(ctx context.Context, input domain.CreateTaskInput) (*domain.Task, error) {
	query := `
		INSERT INTO tasks (summary, status, issue_id, project_id, workspace_id, assignee_id, parent_task_id, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + taskColumns

	row := r.db.QueryRowContext(ctx, query,
		input.Summary,
		input.Status,
		input.IssueID,
		toNullString(input.ProjectID),
		toNullString(input.WorkspaceID),
		toNullString(input.AssigneeID),
		toNullString(input.ParentTaskID),
		toNullTime(input.DueDate),
	)

	task, err := scanTask(row)
	if isUniqueViolation(err) {
		return nil, domain.ErrAlreadyExists
	}
	return task, err
}

func (r *PostgresTaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	return scanTask(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresTaskRepository) FindAll(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE 1=1`
	args := []interface{}{}

	if filter.WorkspaceID != nil {
		args = append(args, *filter.WorkspaceID)
		query += fmt.Sprintf(` AND workspace_id = $%d`, len(args))
	}
	if filter.ProjectID != nil {
		args = append(args, *filter.ProjectID)
		query += fmt.Sprintf(` AND project_id = $%d`, len(args))
	}
	if filter.AssigneeID != nil {
		args = append(args, *filter.AssigneeID)
		query += fmt.Sprintf(` AND assignee_id = $%d`, len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.ParentTaskID != nil {
		args = append(args, *filter.ParentTaskID)
		query += fmt.Sprintf(` AND parent_task_id = $%d`, len(args))
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, filter.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var task domain.Task
		var projectID, workspaceID, assigneeID, parentTaskID sql.NullString
		var dueDate sql.NullTime

		err := rows.Scan(
			&task.ID,
			&task.Summary,
			&task.Status,
			&task.IssueID,
			&projectID,
			&workspaceID,
			&assigneeID,
			&parentTaskID,
			&dueDate,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		task.ProjectID = fromNullStringPtr(projectID)
		task.WorkspaceID = fromNullStringPtr(workspaceID)
		task.AssigneeID = fromNullStringPtr(assigneeID)
		task.ParentTaskID = fromNullStringPtr(parentTaskID)
		task.DueDate = fromNullTime(dueDate)
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

func (r *PostgresTaskRepository) ProjectIDsForAssignee(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT DISTINCT project_id FROM tasks WHERE assignee_id = $1 AND project_id IS NOT NULL`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *PostgresTaskRepository) Update(ctx context.Context, id string, input domain.UpdateTaskInput) (*domain.Task, error) {
	var status sql.NullString
	if input.Status != nil {
		status = sql.NullString{String: string(*input.Status), Valid: true}
	}

	query := `
		UPDATE tasks SET
			summary = COALESCE($2, summary),
			status = COALESCE($3, status),
			project_id = COALESCE($4, project_id),
			assignee_id = COALESCE($5, assignee_id),
			due_date = COALESCE($6, due_date),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + taskColumns

	return scanTask(r.db.QueryRowContext(ctx, query,
		id,
		toNullString(input.Summary),
		status,
		toNullString(input.ProjectID),
		toNullString(input.AssigneeID),
		toNullTime(input.DueDate),
	))
}

// DeleteWithSubtasks removes the direct subtasks first so the parent foreign
// key never dangles mid-delete.
func (r *PostgresTaskRepository) DeleteWithSubtasks(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE parent_task_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete subtasks: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
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

	return tx.Commit()
}

func (r *PostgresTaskRepository) UnassignUser(ctx context.Context, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET assignee_id = NULL, updated_at = NOW() WHERE assignee_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresTaskRepository) WindowStats(ctx context.Context, projectID, userID string, from, to, now time.Time) (*domain.TaskWindowStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE assignee_id = $2),
			COUNT(*) FILTER (WHERE status = 'DONE'),
			COUNT(*) FILTER (WHERE due_date < $5 AND status <> 'DONE')
		FROM tasks
		WHERE project_id = $1 AND created_at >= $3 AND created_at < $4
	`

	var stats domain.TaskWindowStats
	err := r.db.QueryRowContext(ctx, query, projectID, userID, from, to, now).Scan(
		&stats.Total,
		&stats.Assigned,
		&stats.Completed,
		&stats.Overdue,
	)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

var _ domain.TaskRepository = (*PostgresTaskRepository)(nil)
