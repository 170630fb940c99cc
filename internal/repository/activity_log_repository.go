package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/taskforge/backend/internal/domain"
)

type PostgresActivityLogRepository struct {
	db *sql.DB
}

func NewPostgresActivityLogRepository(db *sql.DB) *PostgresActivityLogRepository {
	return &PostgresActivityLogRepository{db: db}
}

const activityLogColumns = `id, event_type, entity_type, entity_id, user_id, user_name, workspace_id, project_id, summary, details, created_at`

func (r *PostgresActivityLogRepository) Create(ctx context.Context, input domain.CreateActivityLogInput) (*domain.ActivityLog, error) {
	var details []byte
	if input.Details != nil {
		var err error
		if details, err = json.Marshal(input.Details); err != nil {
			return nil, fmt.Errorf("failed to encode details: %w", err)
		}
	}

	query := `
		INSERT INTO activity_logs (event_type, entity_type, entity_id, user_id, user_name, workspace_id, project_id, summary, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + activityLogColumns

	row := r.db.QueryRowContext(ctx, query,
		input.EventType,
		input.EntityType,
		toNullString(input.EntityID),
		toNullString(input.UserID),
		toNullString(input.UserName),
		toNullString(input.WorkspaceID),
		toNullString(input.ProjectID),
		input.Summary,
		details,
	)

	return scanActivityLog(row.Scan)
}

type scanFunc func(dest ...interface{}) error

func scanActivityLog(scan scanFunc) (*domain.ActivityLog, error) {
	var log domain.ActivityLog
	var entityID, userID, userName, workspaceID, projectID sql.NullString
	var details []byte

	err := scan(
		&log.ID,
		&log.EventType,
		&log.EntityType,
		&entityID,
		&userID,
		&userName,
		&workspaceID,
		&projectID,
		&log.Summary,
		&details,
		&log.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	log.EntityID = fromNullStringPtr(entityID)
	log.UserID = fromNullStringPtr(userID)
	log.UserName = fromNullStringPtr(userName)
	log.WorkspaceID = fromNullStringPtr(workspaceID)
	log.ProjectID = fromNullStringPtr(projectID)
	if len(details) > 0 {
		log.Details = json.RawMessage(details)
	}

	return &log, nil
}

func (r *PostgresActivityLogRepository) FindAll(ctx context.Context, filter domain.ActivityLogFilter) ([]domain.ActivityLog, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}

	if filter.EventType != nil {
		args = append(args, *filter.EventType)
		where += fmt.Sprintf(` AND event_type = $%d`, len(args))
	}
	if filter.EntityID != nil {
		args = append(args, *filter.EntityID)
		where += fmt.Sprintf(` AND entity_id = $%d`, len(args))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where += fmt.Sprintf(` AND user_id = $%d`, len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activity_logs`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + activityLogColumns + ` FROM activity_logs` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d OFFSET %d`, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var logs []domain.ActivityLog
	for rows.Next() {
		log, err := scanActivityLog(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		logs = append(logs, *log)
	}

	return logs, total, rows.Err()
}

var _ domain.ActivityLogRepository = (*PostgresActivityLogRepository)(nil)
