package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-matcher/internal/services"
)

type WorkspaceHandler struct {
	workspace services.Workspace
}

func NewWorkspaceHandler(workspace services.Workspace) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspace: workspace,
	}
}

// HandleGetWorkspace handles GET /workspace
func (h *WorkspaceHandler) HandleGetWorkspace(c *fiber.Ctx) error {
	return c.JSON(h.workspace.Snapshot())
}
