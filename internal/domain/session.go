package domain

import (
	"context"
	"time"
)

// Session is a server-side login session. The token is the opaque value
// carried by the auth cookie; it is stored as issued (64 hex chars) and acts
// as the primary key.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

type SessionRepository interface {
	// Create persists a new session under a freshly generated token.
	// Returns ErrConflict on the (astronomically unlikely) token collision.
	Create(ctx context.Context, userID string, expiresAt time.Time) (*Session, error)
	// FindByToken returns the session regardless of expiry; callers decide
	// what an expired row means. ErrNotFound when absent.
	FindByToken(ctx context.Context, token string) (*Session, error)
	// DeleteByToken removes a session. Deleting an absent token is a no-op
	// success with count zero.
	DeleteByToken(ctx context.Context, token string) (int64, error)
	DeleteAllForUser(ctx context.Context, userID string) (int64, error)
	// RotateForUser atomically deletes every session of the user and inserts
	// a single new one, so at most one valid session survives a login.
	RotateForUser(ctx context.Context, userID string, expiresAt time.Time) (*Session, error)
	DeleteExpired(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
