package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/taskforge/backend/internal/domain"
	"github.com/taskforge/backend/internal/handler"
)

type mockSessionRepo struct {
	FindByTokenFunc   func(ctx context.Context, token string) (*domain.Session, error)
	DeleteByTokenFunc func(ctx context.Context, token string) (int64, error)
}

func (m *mockSessionRepo) Create(ctx context.Context, userID string, expiresAt time.Time) (*domain.Session, error) {
	panic("not implemented")
}

func (m *mockSessionRepo) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	return m.FindByTokenFunc(ctx, token)
}

func (m *mockSessionRepo) DeleteByToken(ctx context.Context, token string) (int64, error) {
	if m.DeleteByTokenFunc == nil {
		return 0, nil
	}
	return m.DeleteByTokenFunc(ctx, token)
}

func (m *mockSessionRepo) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	panic("not implemented")
}

func (m *mockSessionRepo) RotateForUser(ctx context.Context, userID string, expiresAt time.Time) (*domain.Session, error) {
	panic("not implemented")
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	panic("not implemented")
}

func (m *mockSessionRepo) DeleteAll(ctx context.Context) (int64, error) {
	panic("not implemented")
}

type mockUserRepo struct {
	FindByIDFunc func(ctx context.Context, id string) (*domain.User, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	panic("not implemented")
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	panic("not implemented")
}

func (m *mockUserRepo) Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	panic("not implemented")
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id string, input domain.UpdateProfileInput) (*domain.User, error) {
	panic("not implemented")
}

func (m *mockUserRepo) FindConflicts(ctx context.Context, names, emails, mobiles []string) (*domain.UserConflicts, error) {
	panic("not implemented")
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	panic("not implemented")
}

const cookieName = "taskforge_session"

func newTestApp(sessions *mockSessionRepo, users *mockUserRepo) *fiber.App {
	m := NewAuthMiddleware(AuthMiddlewareConfig{
		SessionRepo:       sessions,
		UserRepo:          users,
		Logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		SessionCookieName: cookieName,
	})

	app := fiber.New()
	app.Get("/protected", m.Require(), func(c *fiber.Ctx) error {
		user := handler.GetUserFromContext(c)
		return c.SendString(user.ID)
	})
	app.Get("/optional", m.Optional(), func(c *fiber.Ctx) error {
		if user := handler.GetUserFromContext(c); user != nil {
			return c.SendString(user.ID)
		}
		return c.SendString("anonymous")
	})
	return app
}

func TestRequireRejectsAnonymous(t *testing.T) {
	app := newTestApp(&mockSessionRepo{
		FindByTokenFunc: func(ctx context.Context, token string) (*domain.Session, error) {
			t.Fatal("store should not be hit without a cookie")
			return nil, nil
		},
	}, &mockUserRepo{})

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusUnauthorized)
	}
}

func TestRequireResolvesValidSession(t *testing.T) {
	sessions := &mockSessionRepo{
		FindByTokenFunc: func(ctx context.Context, token string) (*domain.Session, error) {
			return &domain.Session{
				Token:     token,
				UserID:    "user-1",
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
	}
	users := &mockUserRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Name: "Jordan", Email: "jordan@example.com"}, nil
		},
	}

	app := newTestApp(sessions, users)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "token-1"})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "user-1" {
		t.Fatalf("body = %q, want %q", body, "user-1")
	}
}

func TestExpiredSessionIsAnonymousAndCleanedUp(t *testing.T) {
	deleted := make(chan string, 1)
	sessions := &mockSessionRepo{
		FindByTokenFunc: func(ctx context.Context, token string) (*domain.Session, error) {
			return &domain.Session{
				Token:     token,
				UserID:    "user-1",
				ExpiresAt: time.Now().Add(-time.Minute),
			}, nil
		},
		DeleteByTokenFunc: func(ctx context.Context, token string) (int64, error) {
			deleted <- token
			return 1, nil
		},
	}

	app := newTestApp(sessions, &mockUserRepo{})
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "stale-token"})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusUnauthorized)
	}

	select {
	case token := <-deleted:
		if token != "stale-token" {
			t.Fatalf("deleted token = %q, want %q", token, "stale-token")
		}
	case <-time.After(time.Second):
		t.Fatal("expired session was never deleted")
	}
}

func TestStoreFailureIsNotAnonymous(t *testing.T) {
	sessions := &mockSessionRepo{
		FindByTokenFunc: func(ctx context.Context, token string) (*domain.Session, error) {
			return nil, errors.New("connection refused")
		},
	}

	app := newTestApp(sessions, &mockUserRepo{})
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "token-1"})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusInternalServerError)
	}
}

func TestOptionalContinuesAnonymously(t *testing.T) {
	sessions := &mockSessionRepo{
		FindByTokenFunc: func(ctx context.Context, token string) (*domain.Session, error) {
			return nil, domain.ErrNotFound
		},
	}

	app := newTestApp(sessions, &mockUserRepo{})
	req := httptest.NewRequest("GET", "/optional", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "unknown"})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "anonymous" {
		t.Fatalf("body = %q, want %q", body, "anonymous")
	}
}
