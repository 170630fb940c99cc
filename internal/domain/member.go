package domain

import (
	"context"
	"time"
)

// Role is the closed privilege enum for workspace membership.
type Role string

const (
	RoleAdmin          Role = "ADMIN"
	RoleProjectManager Role = "PROJECT_MANAGER"
	RoleManagement     Role = "MANAGEMENT"
	RoleTeamLead       Role = "TEAM_LEAD"
	RoleEmployee       Role = "EMPLOYEE"
	RoleClient         Role = "CLIENT"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProjectManager, RoleManagement, RoleTeamLead, RoleEmployee, RoleClient:
		return true
	}
	return false
}

// Member associates a user with a workspace under a role. CLIENT members are
// additionally scoped to exactly one project via ProjectID.
type Member struct {
	ID          string
	UserID      string
	WorkspaceID string
	Role        Role
	ProjectID   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateMemberInput struct {
	UserID      string
	WorkspaceID string
	Role        Role
	ProjectID   *string
}

// MemberWithUser is the list-view projection joining the user's identity
// fields onto the membership row.
type MemberWithUser struct {
	Member
	Name  string
	Email string
}

type MemberRepository interface {
	Create(ctx context.Context, input CreateMemberInput) (*Member, error)
	FindByID(ctx context.Context, id string) (*Member, error)
	// FindByUserAndWorkspace resolves the caller's role for a specific
	// workspace. ErrNotFound when the user is not a member there.
	FindByUserAndWorkspace(ctx context.Context, userID, workspaceID string) (*Member, error)
	// FindByUser returns all memberships of a user, oldest first.
	FindByUser(ctx context.Context, userID string) ([]Member, error)
	FindByWorkspace(ctx context.Context, workspaceID string) ([]MemberWithUser, error)
	UpdateRole(ctx context.Context, id string, role Role, projectID *string) (*Member, error)
	Delete(ctx context.Context, id string) error
	DeleteAllForUser(ctx context.Context, userID string) (int64, error)
}
