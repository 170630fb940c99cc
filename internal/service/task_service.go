package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taskforge/backend/internal/authz"
	"github.com/taskforge/backend/internal/domain"
)

const taskListLimit = 200

type TaskService struct {
	tasks    domain.TaskRepository
	activity *ActivityService
	notifier *NotificationService
	logger   *slog.Logger
}

func NewTaskService(tasks domain.TaskRepository, activity *ActivityService, notifier *NotificationService, logger *slog.Logger) *TaskService {
	return &TaskService{
		tasks:    tasks,
		activity: activity,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *TaskService) Create(ctx context.Context, input domain.CreateTaskInput) (*domain.Task, error) {
	if input.Summary == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Status == "" {
		input.Status = domain.TaskStatusTodo
	}
	if !input.Status.Valid() {
		return nil, domain.ErrInvalidInput
	}

	task, err := s.tasks.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	if task.AssigneeID != nil {
		s.notifier.NotifyTaskAssigned(ctx, *task.AssigneeID, task.Summary)
	}
	return task, nil
}

// Get returns one task. The task must live in the workspace the caller's
// role was resolved in; CLIENT members are further pinned to their project.
func (s *TaskService) Get(ctx context.Context, role domain.Role, memberProjectID *string, workspaceID, id string) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sameWorkspace(task.WorkspaceID, workspaceID) {
		return nil, domain.ErrNotFound
	}

	if task.ProjectID != nil && !authz.CanAccessProject(role, memberProjectID, *task.ProjectID) {
		return nil, domain.ErrForbidden
	}
	return task, nil
}

// List returns the workspace's tasks matching the filter. CLIENT members are
// pinned to their bound project regardless of the requested filter.
func (s *TaskService) List(ctx context.Context, role domain.Role, memberProjectID *string, workspaceID string, filter domain.TaskFilter) ([]domain.Task, error) {
	filter.WorkspaceID = &workspaceID
	if role == domain.RoleClient {
		if memberProjectID == nil {
			return nil, nil
		}
		filter.ProjectID = memberProjectID
	}
	if filter.Limit <= 0 || filter.Limit > taskListLimit {
		filter.Limit = taskListLimit
	}
	return s.tasks.FindAll(ctx, filter)
}

func (s *TaskService) Update(ctx context.Context, workspaceID, id string, input domain.UpdateTaskInput) (*domain.Task, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, domain.ErrInvalidInput
	}

	previous, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sameWorkspace(previous.WorkspaceID, workspaceID) {
		return nil, domain.ErrNotFound
	}

	task, err := s.tasks.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}

	if task.AssigneeID != nil {
		if previous.AssigneeID == nil || *previous.AssigneeID != *task.AssigneeID {
			s.notifier.NotifyTaskAssigned(ctx, *task.AssigneeID, task.Summary)
		} else {
			s.notifier.NotifyTaskUpdated(ctx, *task.AssigneeID, task.Summary)
		}
	}
	return task, nil
}

// Delete removes a task and its subtasks. The activity entry is written
// before the delete so the task's details survive it.
func (s *TaskService) Delete(ctx context.Context, actor *domain.User, workspaceID, id string) error {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !sameWorkspace(task.WorkspaceID, workspaceID) {
		return domain.ErrNotFound
	}

	subtasks, err := s.tasks.FindAll(ctx, domain.TaskFilter{ParentTaskID: &id, Limit: taskListLimit})
	if err != nil {
		return fmt.Errorf("failed to count subtasks: %w", err)
	}

	s.activity.LogTaskDeleted(ctx, actor, task, len(subtasks))

	if err := s.tasks.DeleteWithSubtasks(ctx, id); err != nil {
		return err
	}

	s.logger.Info("task deleted", "task_id", id, "subtasks", len(subtasks), "actor_id", actor.ID)
	return nil
}
