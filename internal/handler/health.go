package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/taskforge/backend/internal/response"
)

type HealthData struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

type HealthHandler struct {
	db      *sql.DB
	version string
}

func NewHealthHandler(db *sql.DB, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		version: version,
	}
}

func (h *HealthHandler) Register(app *fiber.App) {
	app.Get("/health", h.Health)
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	dbStatus := "up"
	if err := h.db.PingContext(c.Context()); err != nil {
		dbStatus = "down"
	}

	return response.OK(c, HealthData{
		Status:    "healthy",
		Database:  dbStatus,
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	})
}
