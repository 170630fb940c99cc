package server

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/taskforge/backend/internal/middleware"
	"github.com/taskforge/backend/internal/response"
)

const (
	apiRateLimitMax     = 120
	apiRateLimitWindow  = 1 * time.Minute
	authRateLimitMax    = 10
	authRateLimitWindow = 1 * time.Minute

	streamPath = "/api/v1/notifications/stream"
)

type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	CorsOrigins  string
}

type Server struct {
	app    *fiber.App
	config Config
	logger *slog.Logger
}

func New(cfg Config, log *slog.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "TaskForge API",
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           cfg.IdleTimeout,
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler(log),
	})

	s := &Server{
		app:    app,
		config: cfg,
		logger: log,
	}

	s.setupMiddlewares()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	s.app.Use(middleware.TraceID())

	s.app.Use(securityHeaders)

	corsOrigins := s.config.CorsOrigins
	if corsOrigins == "*" || corsOrigins == "" {
		s.logger.Warn("CORS_ORIGINS is wildcard or empty; in production, set explicit origins")
	}
	corsConfig := cors.Config{
		AllowOrigins:  corsOrigins,
		AllowMethods:  "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:  "Content-Type,Authorization,X-Trace-ID",
		ExposeHeaders: "X-Trace-ID",
	}
	// credentialed CORS is only legal with explicit origins
	if corsOrigins != "*" && corsOrigins != "" {
		corsConfig.AllowCredentials = true
	}
	s.app.Use(cors.New(corsConfig))

	s.app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path} | trace=${locals:traceId}\n",
		TimeFormat: "2006-01-02 15:04:05",
		Output:     nil,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))

	s.app.Use(limiter.New(limiter.Config{
		Max:        apiRateLimitMax,
		Expiration: apiRateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.RateLimited(c, "too many requests")
		},
		Next: func(c *fiber.Ctx) bool {
			// long-lived event streams would burn the budget of their own IP
			return c.Path() == "/health" || c.Path() == streamPath
		},
	}))
}

// AuthRateLimiter throttles credential-bearing routes harder than the rest of
// the API.
func AuthRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        authRateLimitMax,
		Expiration: authRateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.RateLimited(c, "too many authentication attempts")
		},
	})
}

func securityHeaders(c *fiber.Ctx) error {
	c.Set("X-Content-Type-Options", "nosniff")
	c.Set("X-Frame-Options", "DENY")
	c.Set("X-XSS-Protection", "1; mode=block")
	c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	c.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
	if c.Protocol() == "https" {
		c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
	}
	return c.Next()
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("Server listening", "addr", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	s.logger.Info("Shutting down server...")
	return s.app.Shutdown()
}

func customErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		log.Error("Request error",
			"path", c.Path(),
			"method", c.Method(),
			"error", err.Error(),
			"status", code,
			"traceId", middleware.GetTraceID(c),
		)

		return response.ServerError(c, code, message)
	}
}
