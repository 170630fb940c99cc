package handler

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/taskforge/backend/internal/authz"
	"github.com/taskforge/backend/internal/domain"
	"github.com/taskforge/backend/internal/response"
	"github.com/taskforge/backend/internal/service"
)

// AdminHandler exposes the break-glass operations.
type AdminHandler struct {
	sessions *service.SessionService
	activity *service.ActivityService
	members  *service.MemberService
	logger   *slog.Logger
}

func NewAdminHandler(sessions *service.SessionService, activity *service.ActivityService, members *service.MemberService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		sessions: sessions,
		activity: activity,
		members:  members,
		logger:   logger,
	}
}

func (h *AdminHandler) RegisterProtected(app fiber.Router) {
	admin := app.Group("/workspaces/:workspaceId/admin")
	admin.Post("/clear-sessions", h.ClearSessions)
	admin.Get("/activity", h.Activity)
}

// ClearSessions godoc
// @Summary Delete every session in the system
// @Description Restricted to ADMIN. Forces all users, including the caller, to log in again.
// @Tags admin
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /workspaces/{workspaceId}/admin/clear-sessions [post]
func (h *AdminHandler) ClearSessions(c *fiber.Ctx) error {
	user, member, err := membershipOf(c, h.members, c.Params("workspaceId"))
	if err != nil {
		return HandleDomainError(c, err)
	}
	if !authz.Can(member.Role, authz.ActionClearSessions) {
		return response.Forbidden(c, MsgAdminOnly)
	}

	count, err := h.sessions.ClearAll(c.Context(), user)
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, map[string]int64{"deleted": count})
}

// Activity godoc
// @Summary Query the activity log
// @Tags admin
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Param eventType query string false "Filter by event type"
// @Param userId query string false "Filter by acting user"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Page offset"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /workspaces/{workspaceId}/admin/activity [get]
func (h *AdminHandler) Activity(c *fiber.Ctx) error {
	_, member, err := membershipOf(c, h.members, c.Params("workspaceId"))
	if err != nil {
		return HandleDomainError(c, err)
	}
	if !authz.Privileged(member.Role) {
		return response.Forbidden(c, "the activity log requires a privileged role")
	}

	filter := domain.ActivityLogFilter{Limit: 50}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 && limit <= 200 {
			filter.Limit = limit
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}
	if raw := c.Query("eventType"); raw != "" {
		eventType := domain.EventType(raw)
		filter.EventType = &eventType
	}
	if userID := c.Query("userId"); userID != "" {
		filter.UserID = &userID
	}

	logs, total, err := h.activity.Query(c.Context(), filter)
	if err != nil {
		return HandleDomainError(c, err)
	}

	return response.OK(c, map[string]interface{}{
		"entries": logs,
		"total":   total,
	})
}
