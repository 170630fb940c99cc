package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taskforge/backend/internal/crypto"
	"github.com/taskforge/backend/internal/domain"
	"github.com/taskforge/backend/internal/password"
)

// SessionService owns the login-session lifecycle: issuing on login,
// best-effort teardown on logout and synchronous invalidation when an
// account is removed.
type SessionService struct {
	sessions   domain.SessionRepository
	users      domain.UserRepository
	activity   *ActivityService
	logger     *slog.Logger
	sessionTTL time.Duration
}

type SessionServiceConfig struct {
	Sessions   domain.SessionRepository
	Users      domain.UserRepository
	Activity   *ActivityService
	Logger     *slog.Logger
	SessionTTL time.Duration
}

func NewSessionService(cfg SessionServiceConfig) *SessionService {
	return &SessionService{
		sessions:   cfg.Sessions,
		users:      cfg.Users,
		activity:   cfg.Activity,
		logger:     cfg.Logger,
		sessionTTL: cfg.SessionTTL,
	}
}

// Login verifies the credentials and rotates the user's sessions: previous
// sessions are deleted and a single new one is issued, in one transaction.
// Invalid email, wrong password and a credential-less profile all collapse
// into ErrInvalidCredentials.
func (s *SessionService) Login(ctx context.Context, email, plainPassword string) (*domain.Session, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !user.HasLoginAccess() {
		return nil, nil, domain.ErrInvalidCredentials
	}

	if err := password.Verify(user.PasswordHash, plainPassword); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	session, err := s.sessions.RotateForUser(ctx, user.ID, time.Now().Add(s.sessionTTL))
	if err != nil {
		return nil, nil, err
	}

	s.activity.LogUserLoggedIn(ctx, user)

	s.logger.Info("user logged in",
		"user_id", user.ID,
		"token_prefix", crypto.TokenPrefix(session.Token),
	)

	return session, user, nil
}

// Logout tears down the session identified by token. It never fails: a
// missing or already-deleted session and even a store error all end in the
// caller clearing the cookie, so the failure is only logged.
func (s *SessionService) Logout(ctx context.Context, token string, user *domain.User) {
	if token == "" {
		return
	}

	count, err := s.sessions.DeleteByToken(ctx, token)
	if err != nil {
		s.logger.Error("failed to delete session on logout",
			"token_prefix", crypto.TokenPrefix(token),
			"error", err,
		)
		return
	}

	if count > 0 && user != nil {
		s.activity.LogUserLoggedOut(ctx, user)
	}
}

// InvalidateUser synchronously removes every session of the user. Used when
// an account is deleted or a membership revoked; the sessions must be gone
// before the operation reports success.
func (s *SessionService) InvalidateUser(ctx context.Context, userID string) (int64, error) {
	count, err := s.sessions.DeleteAllForUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		s.logger.Info("invalidated user sessions", "user_id", userID, "count", count)
	}
	return count, nil
}

// ClearAll wipes the whole session table, forcing every user to log in
// again.
func (s *SessionService) ClearAll(ctx context.Context, actor *domain.User) (int64, error) {
	count, err := s.sessions.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	s.activity.LogSessionsCleared(ctx, actor, count)
	s.logger.Info("cleared all sessions", "count", count, "actor_id", actor.ID)
	return count, nil
}

// CleanupExpired removes expired sessions in bulk. The auth middleware also
// deletes expired rows lazily as they are presented; this sweep catches the
// ones never presented again.
func (s *SessionService) CleanupExpired(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx)
}
