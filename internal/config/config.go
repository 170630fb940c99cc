package config

import (
	"os"
	"strconv"
	"time"
)

const (
	DefaultPort              = 8080
	DefaultSessionMaxAgeSec  = 2592000
	DefaultSessionCookieName = "taskforge_session"
	DefaultAppOrigin         = "http://localhost:3000"
	DefaultCleanupInterval   = time.Hour
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Email    EmailConfig
}

type ServerConfig struct {
	Env         string
	Host        string
	Port        int
	LogLevel    string
	CorsOrigins string
}

type DatabaseConfig struct {
	URL string
}

type AuthConfig struct {
	SessionCookieName string
	SessionMaxAge     time.Duration
	CleanupInterval   time.Duration
	InviteSigningKey  string
	AppOrigin         string
}

// EmailConfig selects how invitation mail leaves the process. Mode is one of
// "console", "smtp" or "webhook"; console is the development default.
type EmailConfig struct {
	Mode       string
	From       string
	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	WebhookURL string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Env:         getEnv("APP_ENV", "development"),
			Host:        getEnv("HOST", "0.0.0.0"),
			Port:        getEnvInt("PORT", DefaultPort),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			CorsOrigins: getEnv("CORS_ORIGINS", DefaultAppOrigin),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Auth: AuthConfig{
			SessionCookieName: getEnv("SESSION_COOKIE_NAME", DefaultSessionCookieName),
			SessionMaxAge:     time.Duration(getEnvInt("SESSION_MAX_AGE", DefaultSessionMaxAgeSec)) * time.Second,
			CleanupInterval:   time.Duration(getEnvInt("SESSION_CLEANUP_INTERVAL", int(DefaultCleanupInterval.Seconds()))) * time.Second,
			InviteSigningKey:  getEnv("INVITE_SIGNING_KEY", ""),
			AppOrigin:         getEnv("APP_ORIGIN", DefaultAppOrigin),
		},
		Email: EmailConfig{
			Mode:       getEnv("EMAIL_MODE", "console"),
			From:       getEnv("EMAIL_FROM", "no-reply@taskforge.local"),
			SMTPHost:   getEnv("SMTP_HOST", ""),
			SMTPPort:   getEnvInt("SMTP_PORT", 587),
			SMTPUser:   getEnv("SMTP_USER", ""),
			SMTPPass:   getEnv("SMTP_PASS", ""),
			WebhookURL: getEnv("EMAIL_WEBHOOK_URL", ""),
		},
	}
}

// Production reports whether the process should behave like a deployed
// instance (secure cookies, JSON logs).
func (c *Config) Production() bool {
	return c.Server.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
