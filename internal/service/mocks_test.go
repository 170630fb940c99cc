package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/taskforge/backend/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockUserRepo struct {
	FindByIDFunc      func(ctx context.Context, id string) (*domain.User, error)
	FindByEmailFunc   func(ctx context.Context, email string) (*domain.User, error)
	FindAllFunc       func(ctx context.Context) ([]domain.User, error)
	CreateFunc        func(ctx context.Context, input domain.CreateUserInput) (*domain.User, error)
	UpdateProfileFunc func(ctx context.Context, id string, input domain.UpdateProfileInput) (*domain.User, error)
	FindConflictsFunc func(ctx context.Context, names, emails, mobiles []string) (*domain.UserConflicts, error)
	DeleteFunc        func(ctx context.Context, id string) error
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.FindByEmailFunc(ctx, email)
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	return m.FindAllFunc(ctx)
}

func (m *mockUserRepo) Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	return m.CreateFunc(ctx, input)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id string, input domain.UpdateProfileInput) (*domain.User, error) {
	return m.UpdateProfileFunc(ctx, id, input)
}

func (m *mockUserRepo) FindConflicts(ctx context.Context, names, emails, mobiles []string) (*domain.UserConflicts, error) {
	return m.FindConflictsFunc(ctx, names, emails, mobiles)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

type mockSessionRepo struct {
	CreateFunc           func(ctx context.Context, userID string, expiresAt time.Time) (*domain.Session, error)
	FindByTokenFunc      func(ctx context.Context, token string) (*domain.Session, error)
	DeleteByTokenFunc    func(ctx context.Context, token string) (int64, error)
	DeleteAllForUserFunc func(ctx context.Context, userID string) (int64, error)
	RotateForUserFunc    func(ctx context.Context, userID string, expiresAt time.Time) (*domain.Session, error)
	DeleteExpiredFunc    func(ctx context.Context) (int64, error)
	DeleteAllFunc        func(ctx context.Context) (int64, error)
}

func (m *mockSessionRepo) Create(ctx context.Context, userID string, expiresAt time.Time) (*domain.Session, error) {
	return m.CreateFunc(ctx, userID, expiresAt)
}

func (m *mockSessionRepo) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	return m.FindByTokenFunc(ctx, token)
}

func (m *mockSessionRepo) DeleteByToken(ctx context.Context, token string) (int64, error) {
	return m.DeleteByTokenFunc(ctx, token)
}

func (m *mockSessionRepo) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	return m.DeleteAllForUserFunc(ctx, userID)
}

func (m *mockSessionRepo) RotateForUser(ctx context.Context, userID string, expiresAt time.Time) (*domain.Session, error) {
	return m.RotateForUserFunc(ctx, userID, expiresAt)
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return m.DeleteExpiredFunc(ctx)
}

func (m *mockSessionRepo) DeleteAll(ctx context.Context) (int64, error) {
	return m.DeleteAllFunc(ctx)
}

type mockMemberRepo struct {
	CreateFunc                 func(ctx context.Context, input domain.CreateMemberInput) (*domain.Member, error)
	FindByIDFunc               func(ctx context.Context, id string) (*domain.Member, error)
	FindByUserAndWorkspaceFunc func(ctx context.Context, userID, workspaceID string) (*domain.Member, error)
	FindByUserFunc             func(ctx context.Context, userID string) ([]domain.Member, error)
	FindByWorkspaceFunc        func(ctx context.Context, workspaceID string) ([]domain.MemberWithUser, error)
	UpdateRoleFunc             func(ctx context.Context, id string, role domain.Role, projectID *string) (*domain.Member, error)
	DeleteFunc                 func(ctx context.Context, id string) error
	DeleteAllForUserFunc       func(ctx context.Context, userID string) (int64, error)
}

func (m *mockMemberRepo) Create(ctx context.Context, input domain.CreateMemberInput) (*domain.Member, error) {
	return m.CreateFunc(ctx, input)
}

func (m *mockMemberRepo) FindByID(ctx context.Context, id string) (*domain.Member, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockMemberRepo) FindByUserAndWorkspace(ctx context.Context, userID, workspaceID string) (*domain.Member, error) {
	return m.FindByUserAndWorkspaceFunc(ctx, userID, workspaceID)
}

func (m *mockMemberRepo) FindByUser(ctx context.Context, userID string) ([]domain.Member, error) {
	return m.FindByUserFunc(ctx, userID)
}

func (m *mockMemberRepo) FindByWorkspace(ctx context.Context, workspaceID string) ([]domain.MemberWithUser, error) {
	return m.FindByWorkspaceFunc(ctx, workspaceID)
}

func (m *mockMemberRepo) UpdateRole(ctx context.Context, id string, role domain.Role, projectID *string) (*domain.Member, error) {
	return m.UpdateRoleFunc(ctx, id, role, projectID)
}

func (m *mockMemberRepo) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockMemberRepo) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	return m.DeleteAllForUserFunc(ctx, userID)
}

type mockWorkspaceRepo struct {
	CreateFunc    func(ctx context.Context, name string) (*domain.Workspace, error)
	FindByIDFunc  func(ctx context.Context, id string) (*domain.Workspace, error)
	FindAllFunc   func(ctx context.Context) ([]domain.Workspace, error)
	FindFirstFunc func(ctx context.Context) (*domain.Workspace, error)
}

func (m *mockWorkspaceRepo) Create(ctx context.Context, name string) (*domain.Workspace, error) {
	return m.CreateFunc(ctx, name)
}

func (m *mockWorkspaceRepo) FindByID(ctx context.Context, id string) (*domain.Workspace, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockWorkspaceRepo) FindAll(ctx context.Context) ([]domain.Workspace, error) {
	return m.FindAllFunc(ctx)
}

func (m *mockWorkspaceRepo) FindFirst(ctx context.Context) (*domain.Workspace, error) {
	return m.FindFirstFunc(ctx)
}

type mockProjectRepo struct {
	CreateFunc          func(ctx context.Context, input domain.CreateProjectInput) (*domain.Project, error)
	FindByIDFunc        func(ctx context.Context, id string) (*domain.Project, error)
	FindAllFunc         func(ctx context.Context, workspaceID *string, limit int) ([]domain.Project, error)
	FindByIDsFunc       func(ctx context.Context, ids []string) ([]domain.Project, error)
	FindForAssigneeFunc func(ctx context.Context, userID string, limit int) ([]domain.Project, error)
	UpdateFunc          func(ctx context.Context, id string, input domain.UpdateProjectInput) (*domain.Project, error)
	DeleteFunc          func(ctx context.Context, id string) error
	DeleteByIDsFunc     func(ctx context.Context, ids []string) (int64, error)
}

func (m *mockProjectRepo) Create(ctx context.Context, input domain.CreateProjectInput) (*domain.Project, error) {
	return m.CreateFunc(ctx, input)
}

func (m *mockProjectRepo) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockProjectRepo) FindAll(ctx context.Context, workspaceID *string, limit int) ([]domain.Project, error) {
	return m.FindAllFunc(ctx, workspaceID, limit)
}

func (m *mockProjectRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Project, error) {
	return m.FindByIDsFunc(ctx, ids)
}

func (m *mockProjectRepo) FindForAssignee(ctx context.Context, userID string, limit int) ([]domain.Project, error) {
	return m.FindForAssigneeFunc(ctx, userID, limit)
}

func (m *mockProjectRepo) Update(ctx context.Context, id string, input domain.UpdateProjectInput) (*domain.Project, error) {
	return m.UpdateFunc(ctx, id, input)
}

func (m *mockProjectRepo) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockProjectRepo) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	return m.DeleteByIDsFunc(ctx, ids)
}

type mockTaskRepo struct {
	CreateFunc                func(ctx context.Context, input domain.CreateTaskInput) (*domain.Task, error)
	FindByIDFunc              func(ctx context.Context, id string) (*domain.Task, error)
	FindAllFunc               func(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	ProjectIDsForAssigneeFunc func(ctx context.Context, userID string) ([]string, error)
	UpdateFunc                func(ctx context.Context, id string, input domain.UpdateTaskInput) (*domain.Task, error)
	DeleteWithSubtasksFunc    func(ctx context.Context, id string) error
	UnassignUserFunc          func(ctx context.Context, userID string) (int64, error)
	WindowStatsFunc           func(ctx context.Context, projectID, userID string, from, to, now time.Time) (*domain.TaskWindowStats, error)
}

func (m *mockTaskRepo) Create(ctx context.Context, input domain.CreateTaskInput) (*domain.Task, error) {
	return m.CreateFunc(ctx, input)
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockTaskRepo) FindAll(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	return m.FindAllFunc(ctx, filter)
}

func (m *mockTaskRepo) ProjectIDsForAssignee(ctx context.Context, userID string) ([]string, error) {
	return m.ProjectIDsForAssigneeFunc(ctx, userID)
}

func (m *mockTaskRepo) Update(ctx context.Context, id string, input domain.UpdateTaskInput) (*domain.Task, error) {
	return m.UpdateFunc(ctx, id, input)
}

func (m *mockTaskRepo) DeleteWithSubtasks(ctx context.Context, id string) error {
	return m.DeleteWithSubtasksFunc(ctx, id)
}

func (m *mockTaskRepo) UnassignUser(ctx context.Context, userID string) (int64, error) {
	return m.UnassignUserFunc(ctx, userID)
}

func (m *mockTaskRepo) WindowStats(ctx context.Context, projectID, userID string, from, to, now time.Time) (*domain.TaskWindowStats, error) {
	return m.WindowStatsFunc(ctx, projectID, userID, from, to, now)
}

type mockNotificationRepo struct {
	CreateFunc           func(ctx context.Context, input domain.CreateNotificationInput) (*domain.Notification, error)
	FindByUserFunc       func(ctx context.Context, userID string, limit int) ([]domain.Notification, error)
	MarkReadFunc         func(ctx context.Context, id, userID string) error
	MarkAllReadFunc      func(ctx context.Context, userID string) (int64, error)
	DeleteFunc           func(ctx context.Context, id, userID string) error
	DeleteAllForUserFunc func(ctx context.Context, userID string) (int64, error)
}

func (m *mockNotificationRepo) Create(ctx context.Context, input domain.CreateNotificationInput) (*domain.Notification, error) {
	return m.CreateFunc(ctx, input)
}

func (m *mockNotificationRepo) FindByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	return m.FindByUserFunc(ctx, userID, limit)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	return m.MarkReadFunc(ctx, id, userID)
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return m.MarkAllReadFunc(ctx, userID)
}

func (m *mockNotificationRepo) Delete(ctx context.Context, id, userID string) error {
	return m.DeleteFunc(ctx, id, userID)
}

func (m *mockNotificationRepo) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	return m.DeleteAllForUserFunc(ctx, userID)
}

type mockInvitationRepo struct {
	CreateFunc        func(ctx context.Context, input domain.CreateInvitationInput) (*domain.Invitation, error)
	FindByIDFunc      func(ctx context.Context, id string) (*domain.Invitation, error)
	MarkAcceptedFunc  func(ctx context.Context, id string) error
	DeleteByEmailFunc func(ctx context.Context, email string) (int64, error)
}

func (m *mockInvitationRepo) Create(ctx context.Context, input domain.CreateInvitationInput) (*domain.Invitation, error) {
	return m.CreateFunc(ctx, input)
}

func (m *mockInvitationRepo) FindByID(ctx context.Context, id string) (*domain.Invitation, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockInvitationRepo) MarkAccepted(ctx context.Context, id string) error {
	return m.MarkAcceptedFunc(ctx, id)
}

func (m *mockInvitationRepo) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	return m.DeleteByEmailFunc(ctx, email)
}

type mockActivityLogRepo struct {
	CreateFunc  func(ctx context.Context, input domain.CreateActivityLogInput) (*domain.ActivityLog, error)
	FindAllFunc func(ctx context.Context, filter domain.ActivityLogFilter) ([]domain.ActivityLog, int, error)
}

func (m *mockActivityLogRepo) Create(ctx context.Context, input domain.CreateActivityLogInput) (*domain.ActivityLog, error) {
	if m.CreateFunc == nil {
		return &domain.ActivityLog{}, nil
	}
	return m.CreateFunc(ctx, input)
}

func (m *mockActivityLogRepo) FindAll(ctx context.Context, filter domain.ActivityLogFilter) ([]domain.ActivityLog, int, error) {
	return m.FindAllFunc(ctx, filter)
}

func newTestActivityService() *ActivityService {
	return NewActivityService(&mockActivityLogRepo{}, discardLogger())
}
