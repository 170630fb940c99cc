package domain

import (
	"context"
	"time"
)

type NotificationType string

const (
	NotificationTaskAssigned   NotificationType = "task.assigned"
	NotificationTaskUpdated    NotificationType = "task.updated"
	NotificationMemberAdded    NotificationType = "member.added"
	NotificationMemberRemoved  NotificationType = "member.removed"
	NotificationInviteAccepted NotificationType = "invite.accepted"
)

type Notification struct {
	ID        string
	UserID    string
	Type      NotificationType
	Title     string
	Message   string
	IsRead    bool
	ReadAt    *time.Time
	CreatedAt time.Time
}

type CreateNotificationInput struct {
	UserID  string
	Type    NotificationType
	Title   string
	Message string
}

type NotificationRepository interface {
	Create(ctx context.Context, input CreateNotificationInput) (*Notification, error)
	// FindByUser returns the user's most recent notifications, capped by limit.
	FindByUser(ctx context.Context, userID string, limit int) ([]Notification, error)
	// MarkRead flips a single notification owned by userID; marking an absent
	// or foreign row is a no-op.
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id, userID string) error
	DeleteAllForUser(ctx context.Context, userID string) (int64, error)
}
