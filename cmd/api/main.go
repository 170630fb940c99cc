package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/taskforge/backend/internal/database"
	"github.com/taskforge/backend/internal/di"
	"github.com/taskforge/backend/internal/handler"
	"github.com/taskforge/backend/internal/server"
)

func main() {
	_ = godotenv.Load()

	app, cleanup, err := di.InitializeApplication()
	if err != nil {
		panic(err)
	}
	defer cleanup()

	app.Logger.Info("Starting TaskForge API", "version", di.Version)

	migrationsPath := getMigrationsPath()
	if err := database.RunMigrations(app.DB, migrationsPath, app.Logger); err != nil {
		app.Logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	registerRoutes(app)

	stopSweep := startSessionSweep(app)
	defer stopSweep()

	go func() {
		if err := app.Server.Start(); err != nil {
			app.Logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := app.Server.Shutdown(); err != nil {
		app.Logger.Error("Server forced to shutdown", "error", err)
	}

	app.Logger.Info("Server stopped")
}

func registerRoutes(app *di.Application) {
	fiberApp := app.Server.App()

	app.HealthHandler.Register(fiberApp)
	app.SwaggerHandler.Register(fiberApp)

	api := fiberApp.Group(handler.APIPrefix)

	// credentials are the one surface worth throttling harder
	public := api.Group("", server.AuthRateLimiter())
	app.AuthHandler.Register(public)

	// websocket handshakes must be rejected before the upgrade handler runs
	api.Use("/notifications/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	protected := api.Group("", app.Auth.Require())
	app.AuthHandler.RegisterProtected(protected)
	app.WorkspaceHandler.RegisterProtected(protected)
	app.MemberHandler.RegisterProtected(protected)
	app.ProjectHandler.RegisterProtected(protected)
	app.TaskHandler.RegisterProtected(protected)
	app.ProfileHandler.RegisterProtected(protected)
	app.NotificationHandler.RegisterProtected(protected)
	app.InvitationHandler.RegisterProtected(protected)
	app.AdminHandler.RegisterProtected(protected)
}

// startSessionSweep periodically deletes expired sessions that were never
// presented again after expiry. Returns a stop function.
func startSessionSweep(app *di.Application) func() {
	interval := app.Config.Auth.CleanupInterval
	if interval <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				count, err := app.Sessions.CleanupExpired(ctx)
				cancel()
				if err != nil {
					app.Logger.Warn("Session sweep failed", "error", err)
					continue
				}
				if count > 0 {
					app.Logger.Info("Session sweep removed expired sessions", "count", count)
				}
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }
}

func getMigrationsPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return "migrations"
	}

	execDir := filepath.Dir(execPath)

	possiblePaths := []string{
		filepath.Join(execDir, "migrations"),
		filepath.Join(execDir, "..", "..", "migrations"),
		"migrations",
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return "migrations"
}
