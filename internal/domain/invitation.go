package domain

import (
	"context"
	"time"
)

// Invitation binds an email address to a pending workspace membership. The
// signed token mailed to the invitee references the row by ID; accepting
// validates both the signature and the row state.
type Invitation struct {
	ID          string
	Email       string
	WorkspaceID string
	Role        Role
	ProjectID   *string
	InvitedBy   string
	AcceptedAt  *time.Time
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

func (i *Invitation) Expired(now time.Time) bool {
	return !i.ExpiresAt.After(now)
}

type CreateInvitationInput struct {
	Email       string
	WorkspaceID string
	Role        Role
	ProjectID   *string
	InvitedBy   string
	ExpiresAt   time.Time
}

type InvitationRepository interface {
	Create(ctx context.Context, input CreateInvitationInput) (*Invitation, error)
	FindByID(ctx context.Context, id string) (*Invitation, error)
	MarkAccepted(ctx context.Context, id string) error
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}
