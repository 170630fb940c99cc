package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "github.com/taskforge/backend/internal/docs"
)

type SwaggerHandler struct{}

func NewSwaggerHandler() *SwaggerHandler {
	return &SwaggerHandler{}
}

func (h *SwaggerHandler) Register(app *fiber.App) {
	app.Get(APIPrefix+"/swagger/*", swagger.HandlerDefault)
}
