package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/taskforge/backend/internal/domain"
	"github.com/taskforge/backend/internal/response"
)

const userContextKey = "user"

func SetUserInContext(c *fiber.Ctx, user *domain.User) {
	c.Locals(userContextKey, user)
}

func GetUserFromContext(c *fiber.Ctx) *domain.User {
	user, ok := c.Locals(userContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

func HandleDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		return response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrSelfAction):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, err.Error())
	default:
		return response.InternalError(c)
	}
}

func HandleNotFoundOrInternal(c *fiber.Ctx, err error, notFoundMsg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return response.NotFound(c, notFoundMsg)
	}
	return response.InternalError(c)
}
