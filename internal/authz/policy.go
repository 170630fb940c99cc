// Package authz centralizes the role/permission decisions enforced by every
// route handler. Decisions are pure functions of the caller's current member
// row; nothing here is cached across requests.
package authz

import (
	"github.com/taskforge/backend/internal/domain"
)

type Action string

const (
	ActionManageMembers      Action = "members.manage"
	ActionCreateProject      Action = "projects.create"
	ActionDeleteProject      Action = "projects.delete"
	ActionBulkImportProfiles Action = "profiles.bulk_import"
	ActionDeleteTask         Action = "tasks.delete"
	ActionDeleteProfile      Action = "profiles.delete"
	ActionClearSessions      Action = "sessions.clear"
	ActionInviteClient       Action = "invitations.create"
)

// Privileged reports whether the role belongs to the workspace-management
// tier.
func Privileged(role domain.Role) bool {
	switch role {
	case domain.RoleAdmin, domain.RoleProjectManager, domain.RoleManagement:
		return true
	}
	return false
}

// Can maps (role, action) to a yes/no decision. Destructive actions on users
// and tasks require strictly ADMIN; workspace-wide management requires the
// privileged tier.
func Can(role domain.Role, action Action) bool {
	switch action {
	case ActionDeleteTask, ActionDeleteProfile, ActionClearSessions:
		return role == domain.RoleAdmin
	case ActionManageMembers, ActionCreateProject, ActionDeleteProject,
		ActionBulkImportProfiles, ActionInviteClient:
		return Privileged(role)
	}
	return false
}

// CanAccessProject enforces CLIENT project scoping: a CLIENT member may only
// touch the single project bound to their membership. Every other role passes.
func CanAccessProject(role domain.Role, memberProjectID *string, targetProjectID string) bool {
	if role != domain.RoleClient {
		return true
	}
	return memberProjectID != nil && *memberProjectID == targetProjectID
}

// CheckMemberRemoval guards DELETE on a member row. The self check runs
// before the tier check so an admin targeting themselves gets the self-action
// rejection, not a permission grant.
func CheckMemberRemoval(actorRole domain.Role, actorUserID, targetUserID string) error {
	if actorUserID == targetUserID {
		return domain.ErrSelfAction
	}
	if !Can(actorRole, ActionManageMembers) {
		return domain.ErrForbidden
	}
	return nil
}

// CheckRoleChange guards PATCH on a member's role.
func CheckRoleChange(actorRole domain.Role, actorUserID, targetUserID string) error {
	if actorUserID == targetUserID {
		return domain.ErrSelfAction
	}
	if !Can(actorRole, ActionManageMembers) {
		return domain.ErrForbidden
	}
	return nil
}

// CheckProfileDeletion guards cascade deletion of a user account.
func CheckProfileDeletion(actorRole domain.Role, actorUserID, targetUserID string) error {
	if actorUserID == targetUserID {
		return domain.ErrSelfAction
	}
	if !Can(actorRole, ActionDeleteProfile) {
		return domain.ErrForbidden
	}
	return nil
}
