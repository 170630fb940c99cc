package handler

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/taskforge/backend/internal/domain"
	"github.com/taskforge/backend/internal/realtime"
	"github.com/taskforge/backend/internal/response"
	"github.com/taskforge/backend/internal/service"
)

const streamKeepAlive = 30 * time.Second

type NotificationHandler struct {
	notifications *service.NotificationService
	hub           *realtime.Hub
	logger        *slog.Logger
}

func NewNotificationHandler(notifications *service.NotificationService, hub *realtime.Hub, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		hub:           hub,
		logger:        logger,
	}
}

func (h *NotificationHandler) RegisterProtected(app fiber.Router) {
	notifications := app.Group("/notifications")
	notifications.Get("/", h.List)
	notifications.Patch("/read-all", h.MarkAllRead)
	notifications.Delete("/clear", h.ClearAll)
	notifications.Patch("/:notificationId/read", h.MarkRead)
	notifications.Delete("/:notificationId", h.Delete)
	notifications.Get("/stream", h.Stream)
	notifications.Get("/ws", websocket.New(h.Socket))
}

// List godoc
// @Summary List the caller's notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	user := GetUserFromContext(c)
	if user == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	notifications, err := h.notifications.List(c.Context(), user.ID)
	if err != nil {
		return HandleDomainError(c, err)
	}

	responses := make([]NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, ToNotificationResponse(&notifications[i]))
	}
	return response.OK(c, responses)
}

// MarkRead godoc
// @Summary Mark one notification read
// @Tags notifications
// @Produce json
// @Param notificationId path string true "Notification ID"
// @Success 200 {object} response.Envelope
// @Router /notifications/{notificationId}/read [patch]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	user := GetUserFromContext(c)
	if user == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	if err := h.notifications.MarkRead(c.Context(), c.Params("notificationId"), user.ID); err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, map[string]string{"message": "marked read"})
}

// MarkAllRead godoc
// @Summary Mark every notification read
// @Tags notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notifications/read-all [patch]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	user := GetUserFromContext(c)
	if user == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	count, err := h.notifications.MarkAllRead(c.Context(), user.ID)
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, map[string]int64{"updated": count})
}

// Delete godoc
// @Summary Delete one notification
// @Tags notifications
// @Produce json
// @Param notificationId path string true "Notification ID"
// @Success 204
// @Router /notifications/{notificationId} [delete]
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	user := GetUserFromContext(c)
	if user == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	if err := h.notifications.Delete(c.Context(), c.Params("notificationId"), user.ID); err != nil {
		return HandleDomainError(c, err)
	}
	return response.NoContent(c)
}

// ClearAll godoc
// @Summary Delete every notification of the caller
// @Tags notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notifications/clear [delete]
func (h *NotificationHandler) ClearAll(c *fiber.Ctx) error {
	user := GetUserFromContext(c)
	if user == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	count, err := h.notifications.ClearAll(c.Context(), user.ID)
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, map[string]int64{"deleted": count})
}

// Stream godoc
// @Summary Server-sent event stream of new notifications
// @Tags notifications
// @Produce text/event-stream
// @Success 200
// @Router /notifications/stream [get]
func (h *NotificationHandler) Stream(c *fiber.Ctx) error {
	user := GetUserFromContext(c)
	if user == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")

	events, cancel := h.hub.Subscribe(user.ID)

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		keepAlive := time.NewTicker(streamKeepAlive)
		defer keepAlive.Stop()

		for {
			select {
			case notification, ok := <-events:
				if !ok {
					return
				}
				data, err := json.Marshal(ToNotificationResponse(notification))
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: notification\n")
				fmt.Fprintf(w, "data: %s\n\n", data)
				if err := w.Flush(); err != nil {
					return
				}
			case <-keepAlive.C:
				fmt.Fprint(w, ": keep-alive\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}

// Socket pushes new notifications over a websocket. The auth middleware has
// already resolved the user before the upgrade.
func (h *NotificationHandler) Socket(conn *websocket.Conn) {
	user, ok := conn.Locals(userContextKey).(*domain.User)
	if !ok || user == nil {
		conn.Close()
		return
	}

	events, cancel := h.hub.Subscribe(user.ID)
	defer cancel()

	// drain client frames so pings are answered and closes detected
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case notification, ok := <-events:
			if !ok {
				return
			}
			payload, err := json.Marshal(ToNotificationResponse(notification))
			if err != nil {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}

type NotificationResponse struct {
	ID        string                  `json:"id"`
	Type      domain.NotificationType `json:"type"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	IsRead    bool                    `json:"isRead"`
	ReadAt    *time.Time              `json:"readAt,omitempty"`
	CreatedAt time.Time               `json:"createdAt"`
}

func ToNotificationResponse(notification *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        notification.ID,
		Type:      notification.Type,
		Title:     notification.Title,
		Message:   notification.Message,
		IsRead:    notification.IsRead,
		ReadAt:    notification.ReadAt,
		CreatedAt: notification.CreatedAt,
	}
}
