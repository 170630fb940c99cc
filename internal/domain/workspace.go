package domain

import (
	"context"
	"time"
)

type Workspace struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type WorkspaceRepository interface {
	Create(ctx context.Context, name string) (*Workspace, error)
	FindByID(ctx context.Context, id string) (*Workspace, error)
	FindAll(ctx context.Context) ([]Workspace, error)
	// FindFirst returns the oldest workspace, used as the default tenant for
	// bulk-imported memberships.
	FindFirst(ctx context.Context) (*Workspace, error)
}
