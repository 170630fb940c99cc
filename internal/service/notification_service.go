package service

import (
	"context"
	"log/slog"

	"github.com/taskforge/backend/internal/domain"
	"github.com/taskforge/backend/internal/realtime"
)

const notificationListLimit = 50

// NotificationService persists in-app notifications and pushes them to the
// user's live connections through the hub. Delivery failures never fail the
// operation that triggered the notification.
type NotificationService struct {
	repo   domain.NotificationRepository
	hub    *realtime.Hub
	logger *slog.Logger
}

func NewNotificationService(repo domain.NotificationRepository, hub *realtime.Hub, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		repo:   repo,
		hub:    hub,
		logger: logger.With("component", "notification_service"),
	}
}

func (s *NotificationService) notify(ctx context.Context, input domain.CreateNotificationInput) {
	notification, err := s.repo.Create(ctx, input)
	if err != nil {
		s.logger.Error("failed to create notification",
			"user_id", input.UserID,
			"type", input.Type,
			"error", err,
		)
		return
	}

	s.hub.Publish(input.UserID, notification)
}

func (s *NotificationService) NotifyTaskAssigned(ctx context.Context, userID, taskSummary string) {
	s.notify(ctx, domain.CreateNotificationInput{
		UserID:  userID,
		Type:    domain.NotificationTaskAssigned,
		Title:   "Task assigned",
		Message: "You were assigned: " + taskSummary,
	})
}

func (s *NotificationService) NotifyTaskUpdated(ctx context.Context, userID, taskSummary string) {
	s.notify(ctx, domain.CreateNotificationInput{
		UserID:  userID,
		Type:    domain.NotificationTaskUpdated,
		Title:   "Task updated",
		Message: "A task assigned to you changed: " + taskSummary,
	})
}

func (s *NotificationService) NotifyMemberAdded(ctx context.Context, userID, workspaceID string) {
	s.notify(ctx, domain.CreateNotificationInput{
		UserID:  userID,
		Type:    domain.NotificationMemberAdded,
		Title:   "Added to workspace",
		Message: "You were added to a workspace",
	})
}

func (s *NotificationService) NotifyMemberRemoved(ctx context.Context, userID, workspaceID string) {
	s.notify(ctx, domain.CreateNotificationInput{
		UserID:  userID,
		Type:    domain.NotificationMemberRemoved,
		Title:   "Removed from workspace",
		Message: "Your workspace membership was removed",
	})
}

func (s *NotificationService) NotifyInviteAccepted(ctx context.Context, inviterID, inviteeEmail string) {
	s.notify(ctx, domain.CreateNotificationInput{
		UserID:  inviterID,
		Type:    domain.NotificationInviteAccepted,
		Title:   "Invitation accepted",
		Message: inviteeEmail + " accepted your invitation",
	})
}

// List returns the user's most recent notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.repo.FindByUser(ctx, userID, notificationListLimit)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}

func (s *NotificationService) ClearAll(ctx context.Context, userID string) (int64, error) {
	return s.repo.DeleteAllForUser(ctx, userID)
}
