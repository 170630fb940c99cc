package authz

import (
	"errors"
	"testing"

	"github.com/taskforge/backend/internal/domain"
)

func TestPrivileged(t *testing.T) {
	privileged := []domain.Role{domain.RoleAdmin, domain.RoleProjectManager, domain.RoleManagement}
	for _, r := range privileged {
		if !Privileged(r) {
			t.Errorf("%s should be privileged", r)
		}
	}

	unprivileged := []domain.Role{domain.RoleTeamLead, domain.RoleEmployee, domain.RoleClient}
	for _, r := range unprivileged {
		if Privileged(r) {
			t.Errorf("%s should not be privileged", r)
		}
	}
}

func TestCanAdminOnlyActions(t *testing.T) {
	adminOnly := []Action{ActionDeleteTask, ActionDeleteProfile, ActionClearSessions}

	for _, action := range adminOnly {
		if !Can(domain.RoleAdmin, action) {
			t.Errorf("ADMIN should be allowed %s", action)
		}
		for _, r := range []domain.Role{domain.RoleProjectManager, domain.RoleManagement, domain.RoleTeamLead, domain.RoleEmployee, domain.RoleClient} {
			if Can(r, action) {
				t.Errorf("%s must not be allowed %s", r, action)
			}
		}
	}
}

func TestCanPrivilegedTierActions(t *testing.T) {
	tierActions := []Action{ActionManageMembers, ActionCreateProject, ActionDeleteProject, ActionBulkImportProfiles}

	for _, action := range tierActions {
		for _, r := range []domain.Role{domain.RoleAdmin, domain.RoleProjectManager, domain.RoleManagement} {
			if !Can(r, action) {
				t.Errorf("%s should be allowed %s", r, action)
			}
		}
		for _, r := range []domain.Role{domain.RoleTeamLead, domain.RoleEmployee, domain.RoleClient} {
			if Can(r, action) {
				t.Errorf("%s must not be allowed %s", r, action)
			}
		}
	}
}

func TestCanUnknownAction(t *testing.T) {
	if Can(domain.RoleAdmin, Action("nonsense")) {
		t.Error("unknown actions must be denied")
	}
}

func TestCanAccessProject(t *testing.T) {
	p1 := "project-1"

	tests := []struct {
		name            string
		role            domain.Role
		memberProjectID *string
		target          string
		want            bool
	}{
		{"client assigned project", domain.RoleClient, &p1, "project-1", true},
		{"client other project", domain.RoleClient, &p1, "project-2", false},
		{"client without binding", domain.RoleClient, nil, "project-1", false},
		{"employee any project", domain.RoleEmployee, nil, "project-2", true},
		{"admin any project", domain.RoleAdmin, nil, "project-2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccessProject(tt.role, tt.memberProjectID, tt.target); got != tt.want {
				t.Errorf("CanAccessProject() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelfProtectionShortCircuits(t *testing.T) {
	// Self checks run before tier checks: an admin targeting themselves gets
	// the self-action rejection, never a permission grant.
	checks := map[string]func(domain.Role, string, string) error{
		"member removal":   CheckMemberRemoval,
		"role change":      CheckRoleChange,
		"profile deletion": CheckProfileDeletion,
	}

	for name, check := range checks {
		t.Run(name, func(t *testing.T) {
			err := check(domain.RoleAdmin, "user-1", "user-1")
			if !errors.Is(err, domain.ErrSelfAction) {
				t.Errorf("self target should return ErrSelfAction, got %v", err)
			}

			if err := check(domain.RoleAdmin, "user-1", "user-2"); err != nil {
				t.Errorf("admin acting on another user should pass, got %v", err)
			}

			err = check(domain.RoleEmployee, "user-1", "user-2")
			if !errors.Is(err, domain.ErrForbidden) {
				t.Errorf("employee should be forbidden, got %v", err)
			}
		})
	}
}

func TestRoleChangeRequiresPrivilegedTier(t *testing.T) {
	if err := CheckRoleChange(domain.RoleManagement, "a", "b"); err != nil {
		t.Errorf("MANAGEMENT may change roles, got %v", err)
	}
	if err := CheckProfileDeletion(domain.RoleProjectManager, "a", "b"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("profile deletion is ADMIN only, got %v", err)
	}
}
