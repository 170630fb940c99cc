package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/taskforge/backend/internal/crypto"
	"github.com/taskforge/backend/internal/domain"
	"github.com/taskforge/backend/internal/handler"
	"github.com/taskforge/backend/internal/response"
)

const expiredCleanupTimeout = 5 * time.Second

// AuthMiddleware resolves the session cookie into a user. An absent or
// invalid cookie is the normal anonymous outcome, not an error; only store
// failures surface as 500.
type AuthMiddleware struct {
	sessionRepo       domain.SessionRepository
	userRepo          domain.UserRepository
	logger            *slog.Logger
	sessionCookieName string
}

type AuthMiddlewareConfig struct {
	SessionRepo       domain.SessionRepository
	UserRepo          domain.UserRepository
	Logger            *slog.Logger
	SessionCookieName string
}

func NewAuthMiddleware(cfg AuthMiddlewareConfig) *AuthMiddleware {
	return &AuthMiddleware{
		sessionRepo:       cfg.SessionRepo,
		userRepo:          cfg.UserRepo,
		logger:            cfg.Logger,
		sessionCookieName: cfg.SessionCookieName,
	}
}

// resolve turns the request's cookie into a user, or nil for anonymous. A
// non-nil error means the store failed, not that the caller is anonymous.
func (m *AuthMiddleware) resolve(c *fiber.Ctx) (*domain.User, error) {
	token := c.Cookies(m.sessionCookieName)
	if token == "" {
		return nil, nil
	}

	session, err := m.sessionRepo.FindByToken(c.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if session.Expired(time.Now()) {
		m.cleanupExpired(session.Token)
		return nil, nil
	}

	user, err := m.userRepo.FindByID(c.Context(), session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// session outlived its user; drop it
			m.cleanupExpired(session.Token)
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

// cleanupExpired deletes a dead session off the request path. The request
// already treats the caller as anonymous either way, so failures only log.
func (m *AuthMiddleware) cleanupExpired(token string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), expiredCleanupTimeout)
		defer cancel()

		if _, err := m.sessionRepo.DeleteByToken(ctx, token); err != nil {
			m.logger.Warn("failed to delete dead session",
				"token_prefix", crypto.TokenPrefix(token),
				"error", err,
			)
		}
	}()
}

// Require rejects anonymous callers with 401.
func (m *AuthMiddleware) Require() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := m.resolve(c)
		if err != nil {
			m.logger.Error("session resolution failed", "error", err)
			return response.InternalError(c)
		}
		if user == nil {
			return response.Unauthorized(c, "authentication required")
		}

		handler.SetUserInContext(c, user)
		return c.Next()
	}
}

// Optional resolves the user when a valid session is present and continues
// anonymously otherwise.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := m.resolve(c)
		if err != nil {
			m.logger.Error("session resolution failed", "error", err)
			return response.InternalError(c)
		}
		if user != nil {
			handler.SetUserInContext(c, user)
		}
		return c.Next()
	}
}
