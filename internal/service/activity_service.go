package service

import (
	"context"
	"log/slog"

	"github.com/taskforge/backend/internal/domain"
)

// ActivityService writes the append-only activity log. Destructive operations
// record their entry before the row disappears, so the log keeps the details.
type ActivityService struct {
	repo   domain.ActivityLogRepository
	logger *slog.Logger
}

func NewActivityService(repo domain.ActivityLogRepository, logger *slog.Logger) *ActivityService {
	return &ActivityService{
		repo:   repo,
		logger: logger,
	}
}

func (s *ActivityService) Log(ctx context.Context, input domain.CreateActivityLogInput) {
	if _, err := s.repo.Create(ctx, input); err != nil {
		s.logger.Error("failed to create activity log",
			"event_type", input.EventType,
			"entity_type", input.EntityType,
			"entity_id", input.EntityID,
			"error", err,
		)
	}
}

func (s *ActivityService) LogTaskDeleted(ctx context.Context, actor *domain.User, task *domain.Task, subtaskCount int) {
	s.Log(ctx, domain.CreateActivityLogInput{
		EventType:   domain.EventTaskDeleted,
		EntityType:  domain.EntityTask,
		EntityID:    &task.ID,
		UserID:      &actor.ID,
		UserName:    &actor.Name,
		WorkspaceID: task.WorkspaceID,
		ProjectID:   task.ProjectID,
		Summary:     "deleted task " + task.IssueID,
		Details: map[string]interface{}{
			"summary":       task.Summary,
			"status":        task.Status,
			"subtask_count": subtaskCount,
		},
	})
}

func (s *ActivityService) LogMemberRemoved(ctx context.Context, actor *domain.User, member *domain.Member, memberName string) {
	s.Log(ctx, domain.CreateActivityLogInput{
		EventType:   domain.EventMemberRemoved,
		EntityType:  domain.EntityMember,
		EntityID:    &member.ID,
		UserID:      &actor.ID,
		UserName:    &actor.Name,
		WorkspaceID: &member.WorkspaceID,
		Summary:     "removed member " + memberName,
		Details: map[string]interface{}{
			"removed_user_id": member.UserID,
			"role":            member.Role,
		},
	})
}

func (s *ActivityService) LogRoleChanged(ctx context.Context, actor *domain.User, member *domain.Member, previous domain.Role) {
	s.Log(ctx, domain.CreateActivityLogInput{
		EventType:   domain.EventRoleChanged,
		EntityType:  domain.EntityMember,
		EntityID:    &member.ID,
		UserID:      &actor.ID,
		UserName:    &actor.Name,
		WorkspaceID: &member.WorkspaceID,
		Summary:     "changed member role",
		Details: map[string]interface{}{
			"member_user_id": member.UserID,
			"previous_role":  previous,
			"new_role":       member.Role,
		},
	})
}

func (s *ActivityService) LogProfileDeleted(ctx context.Context, actor *domain.User, deleted *domain.User) {
	s.Log(ctx, domain.CreateActivityLogInput{
		EventType:  domain.EventProfileDeleted,
		EntityType: domain.EntityUser,
		EntityID:   &deleted.ID,
		UserID:     &actor.ID,
		UserName:   &actor.Name,
		Summary:    "deleted profile " + deleted.Name,
		Details: map[string]interface{}{
			"email": deleted.Email,
		},
	})
}

func (s *ActivityService) LogProjectDeleted(ctx context.Context, actor *domain.User, project *domain.Project) {
	s.Log(ctx, domain.CreateActivityLogInput{
		EventType:   domain.EventProjectDeleted,
		EntityType:  domain.EntityProject,
		EntityID:    &project.ID,
		UserID:      &actor.ID,
		UserName:    &actor.Name,
		WorkspaceID: project.WorkspaceID,
		Summary:     "deleted project " + project.Name,
	})
}

func (s *ActivityService) LogSessionsCleared(ctx context.Context, actor *domain.User, count int64) {
	s.Log(ctx, domain.CreateActivityLogInput{
		EventType:  domain.EventSessionsCleared,
		EntityType: domain.EntityUser,
		UserID:     &actor.ID,
		UserName:   &actor.Name,
		Summary:    "cleared all sessions",
		Details: map[string]interface{}{
			"sessions_deleted": count,
		},
	})
}

func (s *ActivityService) LogUserLoggedIn(ctx context.Context, user *domain.User) {
	s.Log(ctx, domain.CreateActivityLogInput{
		EventType:  domain.EventUserLoggedIn,
		EntityType: domain.EntityUser,
		EntityID:   &user.ID,
		UserID:     &user.ID,
		UserName:   &user.Name,
		Summary:    user.Name + " logged in",
	})
}

func (s *ActivityService) LogUserLoggedOut(ctx context.Context, user *domain.User) {
	s.Log(ctx, domain.CreateActivityLogInput{
		EventType:  domain.EventUserLoggedOut,
		EntityType: domain.EntityUser,
		EntityID:   &user.ID,
		UserID:     &user.ID,
		UserName:   &user.Name,
		Summary:    user.Name + " logged out",
	})
}

func (s *ActivityService) Query(ctx context.Context, filter domain.ActivityLogFilter) ([]domain.ActivityLog, int, error) {
	return s.repo.FindAll(ctx, filter)
}
