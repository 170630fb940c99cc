package response

import (
	"github.com/gofiber/fiber/v2"
)

// Envelope is the uniform JSON body of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Meta struct {
	TraceID string `json:"traceId,omitempty"`
}

func OK(c *fiber.Ctx, data interface{}) error {
	return send(c, fiber.StatusOK, data)
}

func Created(c *fiber.Ctx, data interface{}) error {
	return send(c, fiber.StatusCreated, data)
}

func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func BadRequest(c *fiber.Ctx, message string) error {
	return sendError(c, fiber.StatusBadRequest, message, nil)
}

func BadRequestWithDetails(c *fiber.Ctx, message string, details interface{}) error {
	return sendError(c, fiber.StatusBadRequest, message, details)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return sendError(c, fiber.StatusUnauthorized, message, nil)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return sendError(c, fiber.StatusForbidden, message, nil)
}

func NotFound(c *fiber.Ctx, message string) error {
	return sendError(c, fiber.StatusNotFound, message, nil)
}

func Conflict(c *fiber.Ctx, message string) error {
	return sendError(c, fiber.StatusConflict, message, nil)
}

func ConflictWithDetails(c *fiber.Ctx, message string, details interface{}) error {
	return sendError(c, fiber.StatusConflict, message, details)
}

func RateLimited(c *fiber.Ctx, message string) error {
	return sendError(c, fiber.StatusTooManyRequests, message, nil)
}

func InternalError(c *fiber.Ctx) error {
	return sendError(c, fiber.StatusInternalServerError, "internal server error", nil)
}

func ServerError(c *fiber.Ctx, status int, message string) error {
	return sendError(c, status, message, nil)
}

func send(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(Envelope{
		Success: true,
		Data:    data,
		Meta:    meta(c),
	})
}

func sendError(c *fiber.Ctx, status int, message string, details interface{}) error {
	return c.Status(status).JSON(Envelope{
		Success: false,
		Error:   message,
		Details: details,
		Meta:    meta(c),
	})
}

func meta(c *fiber.Ctx) *Meta {
	traceID, ok := c.Locals("traceId").(string)
	if !ok || traceID == "" {
		return nil
	}
	return &Meta{TraceID: traceID}
}
