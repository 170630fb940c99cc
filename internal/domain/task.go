package domain

import (
	"context"
	"time"
)

type TaskStatus string

const (
	TaskStatusBacklog    TaskStatus = "BACKLOG"
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusInReview   TaskStatus = "IN_REVIEW"
	TaskStatusDone       TaskStatus = "DONE"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusBacklog, TaskStatusTodo, TaskStatusInProgress, TaskStatusInReview, TaskStatusDone:
		return true
	}
	return false
}

type Task struct {
	ID           string
	Summary      string
	Status       TaskStatus
	IssueID      string
	ProjectID    *string
	WorkspaceID  *string
	AssigneeID   *string
	ParentTaskID *string
	DueDate      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateTaskInput struct {
	Summary      string
	Status       TaskStatus
	IssueID      string
	ProjectID    *string
	WorkspaceID  *string
	AssigneeID   *string
	ParentTaskID *string
	DueDate      *time.Time
}

type UpdateTaskInput struct {
	Summary    *string
	Status     *TaskStatus
	ProjectID  *string
	AssigneeID *string
	DueDate    *time.Time
}

type TaskFilter struct {
	WorkspaceID  *string
	ProjectID    *string
	AssigneeID   *string
	Status       *TaskStatus
	ParentTaskID *string
	Limit        int
}

// TaskWindowStats aggregates task counts over a time window for project
// analytics.
type TaskWindowStats struct {
	Total     int
	Assigned  int
	Completed int
	Overdue   int
}

type TaskRepository interface {
	Create(ctx context.Context, input CreateTaskInput) (*Task, error)
	FindByID(ctx context.Context, id string) (*Task, error)
	FindAll(ctx context.Context, filter TaskFilter) ([]Task, error)
	// ProjectIDsForAssignee returns the distinct non-null project IDs of the
	// user's tasks.
	ProjectIDsForAssignee(ctx context.Context, userID string) ([]string, error)
	Update(ctx context.Context, id string, input UpdateTaskInput) (*Task, error)
	// DeleteWithSubtasks removes the task and its direct subtasks.
	DeleteWithSubtasks(ctx context.Context, id string) error
	UnassignUser(ctx context.Context, userID string) (int64, error)
	// WindowStats computes counts for tasks created inside [from, to) on the
	// project; "assigned" counts rows assigned to userID, "overdue" rows with
	// a due date before now that are not done.
	WindowStats(ctx context.Context, projectID, userID string, from, to, now time.Time) (*TaskWindowStats, error)
}
