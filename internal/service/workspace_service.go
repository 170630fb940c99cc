package service

import (
	"context"
	"log/slog"

	"github.com/taskforge/backend/internal/domain"
)

type WorkspaceService struct {
	workspaces domain.WorkspaceRepository
	members    domain.MemberRepository
	logger     *slog.Logger
}

func NewWorkspaceService(workspaces domain.WorkspaceRepository, members domain.MemberRepository, logger *slog.Logger) *WorkspaceService {
	return &WorkspaceService{
		workspaces: workspaces,
		members:    members,
		logger:     logger,
	}
}

// Create makes a workspace and installs the creator as its ADMIN.
func (s *WorkspaceService) Create(ctx context.Context, actor *domain.User, name string) (*domain.Workspace, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	workspace, err := s.workspaces.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	_, err = s.members.Create(ctx, domain.CreateMemberInput{
		UserID:      actor.ID,
		WorkspaceID: workspace.ID,
		Role:        domain.RoleAdmin,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("workspace created", "workspace_id", workspace.ID, "owner_id", actor.ID)
	return workspace, nil
}

func (s *WorkspaceService) Get(ctx context.Context, id string) (*domain.Workspace, error) {
	return s.workspaces.FindByID(ctx, id)
}

// ListForUser returns the workspaces the user belongs to, oldest first.
func (s *WorkspaceService) ListForUser(ctx context.Context, userID string) ([]domain.Workspace, error) {
	memberships, err := s.members.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var workspaces []domain.Workspace
	for _, membership := range memberships {
		workspace, err := s.workspaces.FindByID(ctx, membership.WorkspaceID)
		if err != nil {
			s.logger.Warn("membership points at missing workspace", "workspace_id", membership.WorkspaceID)
			continue
		}
		workspaces = append(workspaces, *workspace)
	}

	return workspaces, nil
}
