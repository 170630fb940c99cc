package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taskforge/backend/internal/authz"
	"github.com/taskforge/backend/internal/domain"
)

type MemberService struct {
	members  domain.MemberRepository
	users    domain.UserRepository
	sessions *SessionService
	activity *ActivityService
	notifier *NotificationService
	logger   *slog.Logger
}

type MemberServiceConfig struct {
	Members  domain.MemberRepository
	Users    domain.UserRepository
	Sessions *SessionService
	Activity *ActivityService
	Notifier *NotificationService
	Logger   *slog.Logger
}

func NewMemberService(cfg MemberServiceConfig) *MemberService {
	return &MemberService{
		members:  cfg.Members,
		users:    cfg.Users,
		sessions: cfg.Sessions,
		activity: cfg.Activity,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
	}
}

// RoleIn resolves the caller's role for one workspace. Membership is scoped:
// holding a role in another workspace grants nothing here.
func (s *MemberService) RoleIn(ctx context.Context, userID, workspaceID string) (*domain.Member, error) {
	return s.members.FindByUserAndWorkspace(ctx, userID, workspaceID)
}

func (s *MemberService) List(ctx context.Context, workspaceID string) ([]domain.MemberWithUser, error) {
	return s.members.FindByWorkspace(ctx, workspaceID)
}

// AddByEmail attaches an existing user to the workspace. CLIENT members must
// arrive bound to exactly one project.
func (s *MemberService) AddByEmail(ctx context.Context, actor *domain.User, workspaceID, email string, role domain.Role, projectID *string) (*domain.Member, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if role == domain.RoleClient && projectID == nil {
		return nil, domain.ErrInvalidInput
	}
	if role != domain.RoleClient {
		projectID = nil
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	member, err := s.members.Create(ctx, domain.CreateMemberInput{
		UserID:      user.ID,
		WorkspaceID: workspaceID,
		Role:        role,
		ProjectID:   projectID,
	})
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyMemberAdded(ctx, user.ID, workspaceID)

	s.logger.Info("member added",
		"workspace_id", workspaceID,
		"user_id", user.ID,
		"role", role,
		"actor_id", actor.ID,
	)

	return member, nil
}

// ChangeRole updates a membership's role after the self-protection and tier
// checks pass. Moving someone to CLIENT requires a project binding; moving
// away from CLIENT drops it.
func (s *MemberService) ChangeRole(ctx context.Context, actor *domain.User, actorRole domain.Role, workspaceID, memberID string, role domain.Role, projectID *string) (*domain.Member, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidInput
	}

	member, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	// The actor's role only carries inside its own workspace.
	if member.WorkspaceID != workspaceID {
		return nil, domain.ErrNotFound
	}

	if err := authz.CheckRoleChange(actorRole, actor.ID, member.UserID); err != nil {
		return nil, err
	}

	if role == domain.RoleClient && projectID == nil {
		return nil, domain.ErrInvalidInput
	}
	if role != domain.RoleClient {
		projectID = nil
	}

	previous := member.Role
	updated, err := s.members.UpdateRole(ctx, memberID, role, projectID)
	if err != nil {
		return nil, err
	}

	s.activity.LogRoleChanged(ctx, actor, updated, previous)
	return updated, nil
}

// Remove deletes a membership and synchronously invalidates the removed
// user's sessions, so revoked access cannot ride out an existing login.
func (s *MemberService) Remove(ctx context.Context, actor *domain.User, actorRole domain.Role, workspaceID, memberID string) error {
	member, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return err
	}
	// The actor's role only carries inside its own workspace.
	if member.WorkspaceID != workspaceID {
		return domain.ErrNotFound
	}

	if err := authz.CheckMemberRemoval(actorRole, actor.ID, member.UserID); err != nil {
		return err
	}

	if _, err := s.sessions.InvalidateUser(ctx, member.UserID); err != nil {
		return err
	}

	if err := s.members.Delete(ctx, memberID); err != nil {
		return err
	}

	memberName := member.UserID
	if user, err := s.users.FindByID(ctx, member.UserID); err == nil {
		memberName = user.Name
	} else if !errors.Is(err, domain.ErrNotFound) {
		s.logger.Warn("failed to resolve removed member's name", "user_id", member.UserID, "error", err)
	}

	s.activity.LogMemberRemoved(ctx, actor, member, memberName)
	s.notifier.NotifyMemberRemoved(ctx, member.UserID, member.WorkspaceID)
	return nil
}
