package repository

import (
	"context"
	"database/sql"

	"github.com/taskforge/backend/internal/domain"
)

type PostgresNotificationRepository struct {
	db *sql.DB
}

func NewPostgresNotificationRepository(db *sql.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

const notificationColumns = `id, user_id, type, title, message, is_read, read_at, created_at`

func (r *PostgresNotificationRepository) Create(ctx context.Context, input domain.CreateNotificationInput) (*domain.Notification, error) {
	query := `
		INSERT INTO notifications (user_id, type, title, message)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + notificationColumns

	var notification domain.Notification
	var readAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, input.UserID, input.Type, input.Title, input.Message).Scan(
		&notification.ID,
		&notification.UserID,
		&notification.Type,
		&notification.Title,
		&notification.Message,
		&notification.IsRead,
		&readAt,
		&notification.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	notification.ReadAt = fromNullTime(readAt)
	return &notification, nil
}

func (r *PostgresNotificationRepository) FindByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var notification domain.Notification
		var readAt sql.NullTime
		err := rows.Scan(
			&notification.ID,
			&notification.UserID,
			&notification.Type,
			&notification.Title,
			&notification.Message,
			&notification.IsRead,
			&readAt,
			&notification.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		notification.ReadAt = fromNullTime(readAt)
		notifications = append(notifications, notification)
	}

	return notifications, rows.Err()
}

func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE, read_at = NOW() WHERE id = $1 AND user_id = $2 AND NOT is_read`,
		id, userID)
	return err
}

func (r *PostgresNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE, read_at = NOW() WHERE user_id = $1 AND NOT is_read`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresNotificationRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
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

func (r *PostgresNotificationRepository) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

var _ domain.NotificationRepository = (*PostgresNotificationRepository)(nil)
