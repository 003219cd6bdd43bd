package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-matcher/internal/services"
)

type ResultHandler struct {
	workspace services.Workspace
}

func NewResultHandler(workspace services.Workspace) *ResultHandler {
	return &ResultHandler{
		workspace: workspace,
	}
}

// HandleGetResult handles GET /result
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	id, result, ok := h.workspace.Result()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No analysis result available",
			"code":  fiber.StatusNotFound,
		})
	}

	return c.JSON(services.BuildResultView(id, result))
}
