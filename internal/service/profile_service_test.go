package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/taskforge/backend/internal/bulkimport"
	"github.com/taskforge/backend/internal/domain"
)

func newTestProfileService(users *mockUserRepo, members *mockMemberRepo, workspaces *mockWorkspaceRepo, tasks *mockTaskRepo, notifications *mockNotificationRepo, invitations *mockInvitationRepo, sessions *mockSessionRepo) *ProfileService {
	return NewProfileService(ProfileServiceConfig{
		Users:         users,
		Members:       members,
		Workspaces:    workspaces,
		Tasks:         tasks,
		Notifications: notifications,
		Invitations:   invitations,
		Sessions: NewSessionService(SessionServiceConfig{
			Sessions: sessions,
			Users:    users,
			Activity: newTestActivityService(),
			Logger:   discardLogger(),
		}),
		Activity: newTestActivityService(),
		Logger:   discardLogger(),
	})
}

func TestBulkImportPartialFailure(t *testing.T) {
	created := 0
	users := &mockUserRepo{
		FindConflictsFunc: func(ctx context.Context, names, emails, mobiles []string) (*domain.UserConflicts, error) {
			return &domain.UserConflicts{
				Names:   map[string]bool{},
				Emails:  map[string]bool{"taken@example.com": true},
				Mobiles: map[string]bool{},
			}, nil
		},
		CreateFunc: func(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
			created++
			return &domain.User{ID: fmt.Sprintf("u%d", created), Name: input.Name, Email: input.Email}, nil
		},
	}
	workspaces := &mockWorkspaceRepo{
		FindFirstFunc: func(ctx context.Context) (*domain.Workspace, error) {
			return &domain.Workspace{ID: "ws-1"}, nil
		},
	}
	var memberships []domain.CreateMemberInput
	members := &mockMemberRepo{
		CreateFunc: func(ctx context.Context, input domain.CreateMemberInput) (*domain.Member, error) {
			memberships = append(memberships, input)
			return &domain.Member{ID: "m", UserID: input.UserID}, nil
		},
	}

	svc := newTestProfileService(users, members, workspaces, &mockTaskRepo{}, &mockNotificationRepo{}, &mockInvitationRepo{}, &mockSessionRepo{})

	rows := []bulkimport.Row{
		{Line: 2, Name: "Asha", Email: "asha@example.com"},
		{Line: 3, Name: "Taken", Email: "taken@example.com"},
		{Line: 4, Name: "", Email: "noname@example.com"},
		{Line: 5, Name: "Asha", Email: "asha2@example.com"},
		{Line: 6, Name: "Vikram", Email: "vikram@example.com"},
	}

	result, err := svc.BulkImport(context.Background(), rows)
	if err != nil {
		t.Fatalf("BulkImport() error = %v", err)
	}

	if result.Created != 2 {
		t.Errorf("Created = %d, want 2", result.Created)
	}
	if result.Failed != 3 {
		t.Errorf("Failed = %d, want 3", result.Failed)
	}
	if len(result.Errors) != 3 {
		t.Fatalf("got %d errors, want 3", len(result.Errors))
	}

	wantLines := map[int]string{
		3: "email already exists",
		4: "name is required",
		5: "duplicate name in file",
	}
	for _, rowErr := range result.Errors {
		want, ok := wantLines[rowErr.Line]
		if !ok {
			t.Errorf("unexpected failed line %d: %s", rowErr.Line, rowErr.Message)
			continue
		}
		if rowErr.Message != want {
			t.Errorf("line %d message = %q, want %q", rowErr.Line, rowErr.Message, want)
		}
	}

	if len(memberships) != 2 {
		t.Errorf("got %d memberships, want 2", len(memberships))
	}
	for _, m := range memberships {
		if m.WorkspaceID != "ws-1" || m.Role != domain.RoleEmployee {
			t.Errorf("imported membership = %+v, want EMPLOYEE in ws-1", m)
		}
	}
}

func TestBulkImportLoginCapableRows(t *testing.T) {
	var inputs []domain.CreateUserInput
	users := &mockUserRepo{
		FindConflictsFunc: func(ctx context.Context, names, emails, mobiles []string) (*domain.UserConflicts, error) {
			return &domain.UserConflicts{Names: map[string]bool{}, Emails: map[string]bool{}, Mobiles: map[string]bool{}}, nil
		},
		CreateFunc: func(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
			inputs = append(inputs, input)
			return &domain.User{ID: fmt.Sprintf("u%d", len(inputs)), Name: input.Name, Email: input.Email}, nil
		},
	}
	workspaces := &mockWorkspaceRepo{
		FindFirstFunc: func(ctx context.Context) (*domain.Workspace, error) {
			return &domain.Workspace{ID: "ws-1"}, nil
		},
	}
	var roles []domain.Role
	members := &mockMemberRepo{
		CreateFunc: func(ctx context.Context, input domain.CreateMemberInput) (*domain.Member, error) {
			roles = append(roles, input.Role)
			return &domain.Member{ID: "m", UserID: input.UserID}, nil
		},
	}

	svc := newTestProfileService(users, members, workspaces, &mockTaskRepo{}, &mockNotificationRepo{}, &mockInvitationRepo{}, &mockSessionRepo{})

	rows := []bulkimport.Row{
		{Line: 2, Name: "Asha", Email: "asha@example.com", Password: "s3cret99", Role: "TEAM_LEAD"},
		{Line: 3, Name: "Vikram", Email: "vikram@example.com"},
		{Line: 4, Name: "Short", Email: "short@example.com", Password: "abc"},
		{Line: 5, Name: "Odd", Email: "odd@example.com", Password: "s3cret99", Role: "WIZARD"},
	}

	result, err := svc.BulkImport(context.Background(), rows)
	if err != nil {
		t.Fatalf("BulkImport() error = %v", err)
	}

	if result.Created != 2 || result.Failed != 2 {
		t.Fatalf("result = %d created %d failed, want 2/2", result.Created, result.Failed)
	}
	wantLines := map[int]string{
		4: "password must be at least 6 characters",
		5: "unknown role WIZARD",
	}
	for _, rowErr := range result.Errors {
		if want := wantLines[rowErr.Line]; rowErr.Message != want {
			t.Errorf("line %d message = %q, want %q", rowErr.Line, rowErr.Message, want)
		}
	}

	if inputs[0].PasswordHash == "" || inputs[0].PasswordHash == "s3cret99" {
		t.Errorf("password must be stored hashed, got %q", inputs[0].PasswordHash)
	}
	if inputs[1].PasswordHash != "" {
		t.Errorf("directory-only row must not get a hash, got %q", inputs[1].PasswordHash)
	}

	wantRoles := []domain.Role{domain.RoleTeamLead, domain.RoleEmployee}
	for i, role := range roles {
		if role != wantRoles[i] {
			t.Errorf("membership %d role = %s, want %s", i, role, wantRoles[i])
		}
	}
}

func TestBulkImportWithoutWorkspaceStillCreatesProfiles(t *testing.T) {
	users := &mockUserRepo{
		FindConflictsFunc: func(ctx context.Context, names, emails, mobiles []string) (*domain.UserConflicts, error) {
			return &domain.UserConflicts{Names: map[string]bool{}, Emails: map[string]bool{}, Mobiles: map[string]bool{}}, nil
		},
		CreateFunc: func(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
			return &domain.User{ID: "u1", Name: input.Name, Email: input.Email}, nil
		},
	}
	workspaces := &mockWorkspaceRepo{
		FindFirstFunc: func(ctx context.Context) (*domain.Workspace, error) {
			return nil, domain.ErrNotFound
		},
	}
	members := &mockMemberRepo{
		CreateFunc: func(ctx context.Context, input domain.CreateMemberInput) (*domain.Member, error) {
			t.Fatal("no membership should be created without a workspace")
			return nil, nil
		},
	}

	svc := newTestProfileService(users, members, workspaces, &mockTaskRepo{}, &mockNotificationRepo{}, &mockInvitationRepo{}, &mockSessionRepo{})

	result, err := svc.BulkImport(context.Background(), []bulkimport.Row{{Line: 2, Name: "Solo", Email: "solo@example.com"}})
	if err != nil {
		t.Fatalf("BulkImport() error = %v", err)
	}
	if result.Created != 1 || result.Failed != 0 {
		t.Errorf("result = %+v, want 1 created", result)
	}
}

func TestProfileDeleteCascadeOrder(t *testing.T) {
	var calls []string
	record := func(name string) {
		calls = append(calls, name)
	}

	users := &mockUserRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Name: "Asha", Email: "asha@example.com"}, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			record("user")
			return nil
		},
	}
	sessions := &mockSessionRepo{
		DeleteAllForUserFunc: func(ctx context.Context, userID string) (int64, error) {
			record("sessions")
			return 1, nil
		},
	}
	members := &mockMemberRepo{
		DeleteAllForUserFunc: func(ctx context.Context, userID string) (int64, error) {
			record("members")
			return 1, nil
		},
	}
	invitations := &mockInvitationRepo{
		DeleteByEmailFunc: func(ctx context.Context, email string) (int64, error) {
			record("invitations")
			if email != "asha@example.com" {
				t.Errorf("invitations deleted for wrong email: %s", email)
			}
			return 0, nil
		},
	}
	notifications := &mockNotificationRepo{
		DeleteAllForUserFunc: func(ctx context.Context, userID string) (int64, error) {
			record("notifications")
			return 2, nil
		},
	}
	tasks := &mockTaskRepo{
		UnassignUserFunc: func(ctx context.Context, userID string) (int64, error) {
			record("tasks")
			return 3, nil
		},
	}

	svc := newTestProfileService(users, members, &mockWorkspaceRepo{}, tasks, notifications, invitations, sessions)

	actor := &domain.User{ID: "admin", Name: "Admin"}
	if err := svc.Delete(context.Background(), actor, "user-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	want := []string{"sessions", "members", "invitations", "notifications", "tasks", "user"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("cascade order = %v, want %v", calls, want)
		}
	}
}

func TestProfileDeleteStopsOnSessionFailure(t *testing.T) {
	storeErr := errors.New("down")
	users := &mockUserRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Email: "x@example.com"}, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			t.Fatal("user must not be deleted when session invalidation fails")
			return nil
		},
	}
	sessions := &mockSessionRepo{
		DeleteAllForUserFunc: func(ctx context.Context, userID string) (int64, error) {
			return 0, storeErr
		},
	}

	svc := newTestProfileService(users, &mockMemberRepo{}, &mockWorkspaceRepo{}, &mockTaskRepo{}, &mockNotificationRepo{}, &mockInvitationRepo{}, sessions)

	err := svc.Delete(context.Background(), &domain.User{ID: "admin"}, "user-1")
	if !errors.Is(err, storeErr) {
		t.Errorf("got %v, want store error", err)
	}
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	svc := newTestProfileService(&mockUserRepo{}, &mockMemberRepo{}, &mockWorkspaceRepo{}, &mockTaskRepo{}, &mockNotificationRepo{}, &mockInvitationRepo{}, &mockSessionRepo{})

	tests := []RegisterInput{
		{Name: "", Email: "a@example.com", Password: "long-enough"},
		{Name: "A", Email: "", Password: "long-enough"},
		{Name: "A", Email: "a@example.com", Password: "short"},
	}

	for _, input := range tests {
		if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Register(%+v) = %v, want ErrInvalidInput", input, err)
		}
	}
}
