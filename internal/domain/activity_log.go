package domain

import (
	"context"
	"encoding/json"
	"time"
)

type EventType string

const (
	EventTaskDeleted     EventType = "task.deleted"
	EventMemberRemoved   EventType = "member.removed"
	EventRoleChanged     EventType = "member.role_changed"
	EventProfileDeleted  EventType = "profile.deleted"
	EventProjectDeleted  EventType = "project.deleted"
	EventSessionsCleared EventType = "sessions.cleared"
	EventUserLoggedIn    EventType = "user.logged_in"
	EventUserLoggedOut   EventType = "user.logged_out"
)

type EntityType string

const (
	EntityTask      EntityType = "task"
	EntityMember    EntityType = "member"
	EntityUser      EntityType = "user"
	EntityProject   EntityType = "project"
	EntityWorkspace EntityType = "workspace"
)

// ActivityLog is an append-only audit record written before destructive
// operations, so the entity details survive the deletion.
type ActivityLog struct {
	ID          string          `json:"id"`
	EventType   EventType       `json:"eventType"`
	EntityType  EntityType      `json:"entityType"`
	EntityID    *string         `json:"entityId,omitempty"`
	UserID      *string         `json:"userId,omitempty"`
	UserName    *string         `json:"userName,omitempty"`
	WorkspaceID *string         `json:"workspaceId,omitempty"`
	ProjectID   *string         `json:"projectId,omitempty"`
	Summary     string          `json:"summary"`
	Details     json.RawMessage `json:"details,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type CreateActivityLogInput struct {
	EventType   EventType
	EntityType  EntityType
	EntityID    *string
	UserID      *string
	UserName    *string
	WorkspaceID *string
	ProjectID   *string
	Summary     string
	Details     map[string]interface{}
}

type ActivityLogFilter struct {
	EventType *EventType
	EntityID  *string
	UserID    *string
	Limit     int
	Offset    int
}

type ActivityLogRepository interface {
	Create(ctx context.Context, input CreateActivityLogInput) (*ActivityLog, error)
	FindAll(ctx context.Context, filter ActivityLogFilter) ([]ActivityLog, int, error)
}
