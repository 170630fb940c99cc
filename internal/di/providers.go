package di

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/wire"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lmittmann/tint"

	"github.com/taskforge/backend/internal/config"
	"github.com/taskforge/backend/internal/cookie"
	"github.com/taskforge/backend/internal/domain"
	"github.com/taskforge/backend/internal/email"
	"github.com/taskforge/backend/internal/handler"
	"github.com/taskforge/backend/internal/invite"
	"github.com/taskforge/backend/internal/middleware"
	"github.com/taskforge/backend/internal/realtime"
	"github.com/taskforge/backend/internal/repository"
	"github.com/taskforge/backend/internal/server"
	"github.com/taskforge/backend/internal/service"
)

var ConfigSet = wire.NewSet(
	config.Load,
)

var LoggerSet = wire.NewSet(
	ProvideLogger,
)

var DatabaseSet = wire.NewSet(
	ProvideDatabase,
)

var RepositorySet = wire.NewSet(
	repository.NewPostgresUserRepository,
	wire.Bind(new(domain.UserRepository), new(*repository.PostgresUserRepository)),
	repository.NewPostgresSessionRepository,
	wire.Bind(new(domain.SessionRepository), new(*repository.PostgresSessionRepository)),
	repository.NewPostgresWorkspaceRepository,
	wire.Bind(new(domain.WorkspaceRepository), new(*repository.PostgresWorkspaceRepository)),
	repository.NewPostgresMemberRepository,
	wire.Bind(new(domain.MemberRepository), new(*repository.PostgresMemberRepository)),
	repository.NewPostgresProjectRepository,
	wire.Bind(new(domain.ProjectRepository), new(*repository.PostgresProjectRepository)),
	repository.NewPostgresTaskRepository,
	wire.Bind(new(domain.TaskRepository), new(*repository.PostgresTaskRepository)),
	repository.NewPostgresNotificationRepository,
	wire.Bind(new(domain.NotificationRepository), new(*repository.PostgresNotificationRepository)),
	repository.NewPostgresActivityLogRepository,
	wire.Bind(new(domain.ActivityLogRepository), new(*repository.PostgresActivityLogRepository)),
	repository.NewPostgresInvitationRepository,
	wire.Bind(new(domain.InvitationRepository), new(*repository.PostgresInvitationRepository)),
)

var ServiceSet = wire.NewSet(
	realtime.NewHub,
	service.NewActivityService,
	service.NewNotificationService,
	ProvideSessionService,
	ProvideMemberService,
	ProvideProfileService,
	service.NewProjectService,
	service.NewTaskService,
	ProvideInvitationService,
	service.NewWorkspaceService,
	ProvideEmailSender,
	ProvideInviteSigner,
)

var HandlerSet = wire.NewSet(
	ProvideHealthHandler,
	ProvideCookiePolicy,
	ProvideAuthHandler,
	handler.NewWorkspaceHandler,
	handler.NewMemberHandler,
	handler.NewProjectHandler,
	handler.NewTaskHandler,
	handler.NewProfileHandler,
	handler.NewNotificationHandler,
	handler.NewInvitationHandler,
	handler.NewAdminHandler,
	handler.NewSwaggerHandler,
)

var MiddlewareSet = wire.NewSet(
	ProvideAuthMiddleware,
)

var ServerSet = wire.NewSet(
	ProvideServerConfig,
	server.New,
)

var AppSet = wire.NewSet(
	ConfigSet,
	LoggerSet,
	DatabaseSet,
	RepositorySet,
	ServiceSet,
	HandlerSet,
	MiddlewareSet,
	ServerSet,
	wire.Struct(new(Application), "*"),
)

const Version = "0.1.0"

func ProvideLogger(cfg *config.Config) *slog.Logger {
	var logLevel slog.Level
	switch cfg.Server.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var h slog.Handler
	if cfg.Production() {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	} else {
		h = tint.NewHandler(os.Stdout, &tint.Options{Level: logLevel})
	}
	return slog.New(h)
}

func ProvideDatabase(cfg *config.Config) (*sql.DB, func(), error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	cleanup := func() {
		db.Close()
	}

	return db, cleanup, nil
}

func ProvideSessionService(sessions domain.SessionRepository, users domain.UserRepository, activity *service.ActivityService, cfg *config.Config, logger *slog.Logger) *service.SessionService {
	return service.NewSessionService(service.SessionServiceConfig{
		Sessions:   sessions,
		Users:      users,
		Activity:   activity,
		Logger:     logger,
		SessionTTL: cfg.Auth.SessionMaxAge,
	})
}

func ProvideMemberService(members domain.MemberRepository, users domain.UserRepository, sessions *service.SessionService, activity *service.ActivityService, notifier *service.NotificationService, logger *slog.Logger) *service.MemberService {
	return service.NewMemberService(service.MemberServiceConfig{
		Members:  members,
		Users:    users,
		Sessions: sessions,
		Activity: activity,
		Notifier: notifier,
		Logger:   logger,
	})
}

func ProvideProfileService(
	users domain.UserRepository,
	members domain.MemberRepository,
	workspaces domain.WorkspaceRepository,
	tasks domain.TaskRepository,
	notifications domain.NotificationRepository,
	invitations domain.InvitationRepository,
	sessions *service.SessionService,
	activity *service.ActivityService,
	logger *slog.Logger,
) *service.ProfileService {
	return service.NewProfileService(service.ProfileServiceConfig{
		Users:         users,
		Members:       members,
		Workspaces:    workspaces,
		Tasks:         tasks,
		Notifications: notifications,
		Invitations:   invitations,
		Sessions:      sessions,
		Activity:      activity,
		Logger:        logger,
	})
}

func ProvideInvitationService(
	invitations domain.InvitationRepository,
	members domain.MemberRepository,
	users domain.UserRepository,
	signer *invite.Signer,
	sender email.Sender,
	notifier *service.NotificationService,
	cfg *config.Config,
	logger *slog.Logger,
) *service.InvitationService {
	return service.NewInvitationService(service.InvitationServiceConfig{
		Invitations: invitations,
		Members:     members,
		Users:       users,
		Signer:      signer,
		Sender:      sender,
		Notifier:    notifier,
		AppOrigin:   cfg.Auth.AppOrigin,
		Logger:      logger,
	})
}

func ProvideInviteSigner(cfg *config.Config) *invite.Signer {
	return invite.NewSigner(cfg.Auth.InviteSigningKey)
}

func ProvideEmailSender(cfg *config.Config, logger *slog.Logger) email.Sender {
	switch cfg.Email.Mode {
	case "smtp":
		return email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.Email.SMTPHost,
			Port:     cfg.Email.SMTPPort,
			From:     cfg.Email.From,
			Username: cfg.Email.SMTPUser,
			Password: cfg.Email.SMTPPass,
		})
	case "webhook":
		return email.NewWebhookSender(cfg.Email.WebhookURL)
	default:
		return email.NewConsoleSender(logger)
	}
}

func ProvideCookiePolicy(cfg *config.Config) *cookie.Policy {
	return cookie.NewPolicy(cfg.Auth.SessionCookieName, cfg.Production(), cfg.Auth.AppOrigin)
}

func ProvideAuthHandler(sessions *service.SessionService, profiles *service.ProfileService, cookies *cookie.Policy, logger *slog.Logger) *handler.AuthHandler {
	return handler.NewAuthHandler(handler.AuthHandlerConfig{
		Sessions: sessions,
		Profiles: profiles,
		Cookies:  cookies,
		Logger:   logger,
	})
}

func ProvideAuthMiddleware(sessions domain.SessionRepository, users domain.UserRepository, cfg *config.Config, logger *slog.Logger) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(middleware.AuthMiddlewareConfig{
		SessionRepo:       sessions,
		UserRepo:          users,
		Logger:            logger,
		SessionCookieName: cfg.Auth.SessionCookieName,
	})
}

func ProvideHealthHandler(db *sql.DB) *handler.HealthHandler {
	return handler.NewHealthHandler(db, Version)
}

func ProvideServerConfig(cfg *config.Config) server.Config {
	return server.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
		CorsOrigins:  cfg.Server.CorsOrigins,
	}
}

type Application struct {
	Config              *config.Config
	Logger              *slog.Logger
	DB                  *sql.DB
	Hub                 *realtime.Hub
	Server              *server.Server
	Auth                *middleware.AuthMiddleware
	Sessions            *service.SessionService
	HealthHandler       *handler.HealthHandler
	AuthHandler         *handler.AuthHandler
	WorkspaceHandler    *handler.WorkspaceHandler
	MemberHandler       *handler.MemberHandler
	ProjectHandler      *handler.ProjectHandler
	TaskHandler         *handler.TaskHandler
	ProfileHandler      *handler.ProfileHandler
	NotificationHandler *handler.NotificationHandler
	InvitationHandler   *handler.InvitationHandler
	AdminHandler        *handler.AdminHandler
	SwaggerHandler      *handler.SwaggerHandler
}
