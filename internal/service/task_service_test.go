package service

import (
	"context"
	"errors"
	"testing"

	"github.com/taskforge/backend/internal/domain"
	"github.com/taskforge/backend/internal/realtime"
)

func newTestTaskService(tasks *mockTaskRepo, activityRepo *mockActivityLogRepo) *TaskService {
	notifier := NewNotificationService(&mockNotificationRepo{
		CreateFunc: func(ctx context.Context, input domain.CreateNotificationInput) (*domain.Notification, error) {
			return &domain.Notification{ID: "n"}, nil
		},
	}, realtime.NewHub(), discardLogger())
	return NewTaskService(tasks, NewActivityService(activityRepo, discardLogger()), notifier, discardLogger())
}

func strptr(s string) *string { return &s }

func TestTaskDeleteRecordsDetailsBeforeRemoval(t *testing.T) {
	var calls []string

	tasks := &mockTaskRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Task, error) {
			return &domain.Task{ID: id, Summary: "Fix login", IssueID: "TF-12", WorkspaceID: strptr("ws-1")}, nil
		},
		FindAllFunc: func(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
			if filter.ParentTaskID == nil {
				t.Fatal("subtask lookup must filter by parent")
			}
			return []domain.Task{{ID: "s1"}, {ID: "s2"}}, nil
		},
		DeleteWithSubtasksFunc: func(ctx context.Context, id string) error {
			calls = append(calls, "delete")
			return nil
		},
	}
	activityRepo := &mockActivityLogRepo{
		CreateFunc: func(ctx context.Context, input domain.CreateActivityLogInput) (*domain.ActivityLog, error) {
			calls = append(calls, "log")
			if input.Details["subtask_count"] != 2 {
				t.Errorf("subtask_count = %v, want 2", input.Details["subtask_count"])
			}
			return &domain.ActivityLog{}, nil
		},
	}

	svc := newTestTaskService(tasks, activityRepo)
	actor := &domain.User{ID: "admin", Name: "Admin"}

	if err := svc.Delete(context.Background(), actor, "ws-1", "t-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if len(calls) != 2 || calls[0] != "log" || calls[1] != "delete" {
		t.Errorf("calls = %v, want log before delete", calls)
	}
}

func TestTaskDeleteOutsideWorkspaceIsNotFound(t *testing.T) {
	tasks := &mockTaskRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Task, error) {
			return &domain.Task{ID: id, WorkspaceID: strptr("ws-other")}, nil
		},
		DeleteWithSubtasksFunc: func(ctx context.Context, id string) error {
			t.Fatal("a task of another workspace must not be deleted")
			return nil
		},
	}

	svc := newTestTaskService(tasks, &mockActivityLogRepo{})

	err := svc.Delete(context.Background(), &domain.User{ID: "admin"}, "ws-1", "t-1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestTaskGetOutsideWorkspaceIsNotFound(t *testing.T) {
	tasks := &mockTaskRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Task, error) {
			return &domain.Task{ID: id, WorkspaceID: strptr("ws-other")}, nil
		},
	}

	svc := newTestTaskService(tasks, &mockActivityLogRepo{})

	_, err := svc.Get(context.Background(), domain.RoleAdmin, nil, "ws-1", "t-1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestTaskUpdateOutsideWorkspaceIsNotFound(t *testing.T) {
	tasks := &mockTaskRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Task, error) {
			return &domain.Task{ID: id, WorkspaceID: strptr("ws-other")}, nil
		},
		UpdateFunc: func(ctx context.Context, id string, input domain.UpdateTaskInput) (*domain.Task, error) {
			t.Fatal("a task of another workspace must not be updated")
			return nil, nil
		},
	}

	svc := newTestTaskService(tasks, &mockActivityLogRepo{})

	_, err := svc.Update(context.Background(), "ws-1", "t-1", domain.UpdateTaskInput{Summary: strptr("new")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestTaskListPinsWorkspaceAndClientProject(t *testing.T) {
	var got domain.TaskFilter
	tasks := &mockTaskRepo{
		FindAllFunc: func(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
			got = filter
			return nil, nil
		},
	}

	svc := newTestTaskService(tasks, &mockActivityLogRepo{})

	boundProject := "p-1"
	requested := "p-2"
	if _, err := svc.List(context.Background(), domain.RoleClient, &boundProject, "ws-1", domain.TaskFilter{ProjectID: &requested}); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if got.WorkspaceID == nil || *got.WorkspaceID != "ws-1" {
		t.Errorf("WorkspaceID = %v, want ws-1", got.WorkspaceID)
	}
	if got.ProjectID == nil || *got.ProjectID != boundProject {
		t.Errorf("ProjectID = %v, want the client's bound project", got.ProjectID)
	}
}
