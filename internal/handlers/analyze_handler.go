package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/services"
)

const statusCompleted = "completed"

type AnalyzeHandler struct {
	workspace services.Workspace
}

func NewAnalyzeHandler(workspace services.Workspace) *AnalyzeHandler {
	return &AnalyzeHandler{
		workspace: workspace,
	}
}

// HandleAnalyze handles POST /analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	id, result, err := h.workspace.Analyze(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.AnalyzeResponse{
		ID:     id,
		Status: statusCompleted,
		Result: services.BuildResultView(id, result),
	})
}
