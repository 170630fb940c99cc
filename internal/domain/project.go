package domain

import (
	"context"
	"time"
)

type Project struct {
	ID               string
	Name             string
	WorkspaceID      *string
	ImageURL         string
	PostDate         time.Time
	TentativeEndDate time.Time
	Assignees        []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type CreateProjectInput struct {
	Name             string
	WorkspaceID      *string
	ImageURL         string
	PostDate         time.Time
	TentativeEndDate time.Time
	Assignees        []string
}

type UpdateProjectInput struct {
	Name      *string
	ImageURL  *string
	Assignees []string
}

type ProjectRepository interface {
	Create(ctx context.Context, input CreateProjectInput) (*Project, error)
	FindByID(ctx context.Context, id string) (*Project, error)
	// FindAll returns the most recent projects, capped by limit.
	FindAll(ctx context.Context, workspaceID *string, limit int) ([]Project, error)
	FindByIDs(ctx context.Context, ids []string) ([]Project, error)
	// FindForAssignee returns projects where the user appears in the
	// assignees array or holds at least one task.
	FindForAssignee(ctx context.Context, userID string, limit int) ([]Project, error)
	Update(ctx context.Context, id string, input UpdateProjectInput) (*Project, error)
	Delete(ctx context.Context, id string) error
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}
