package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Workspace *WorkspaceHandler
	Slots     *SlotHandler
	Analyze   *AnalyzeHandler
	Result    *ResultHandler
	Match     *MatchHandler
}

// Endpoints lists the public routes, in registration order.
var Endpoints = []string{
	"GET /api/v1/health",
	"GET /api/v1/workspace",
	"POST /api/v1/slots/:role/file",
	"POST /api/v1/slots/:role/drop",
	"POST /api/v1/slots/:role/drag-enter",
	"POST /api/v1/slots/:role/drag-leave",
	"PUT /api/v1/slots/:role/text",
	"DELETE /api/v1/slots/:role",
	"DELETE /api/v1/slots/:role/error",
	"POST /api/v1/analyze",
	"GET /api/v1/result",
	"POST /api/v1/match",
}

// RegisterRoutes mounts every endpoint under /api/v1.
func RegisterRoutes(app *fiber.App, h Handlers) {
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Get("/workspace", h.Workspace.HandleGetWorkspace)

	api.Post("/slots/:role/file", h.Slots.HandleSelectFile)
	api.Post("/slots/:role/drop", h.Slots.HandleDrop)
	api.Post("/slots/:role/drag-enter", h.Slots.HandleDragEnter)
	api.Post("/slots/:role/drag-leave", h.Slots.HandleDragLeave)
	api.Put("/slots/:role/text", h.Slots.HandleEditText)
	api.Delete("/slots/:role", h.Slots.HandleClear)
	api.Delete("/slots/:role/error", h.Slots.HandleDismissError)

	api.Post("/analyze", h.Analyze.HandleAnalyze)
	api.Get("/result", h.Result.HandleGetResult)
	api.Post("/match", h.Match.HandleMatch)
}
