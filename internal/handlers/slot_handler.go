package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/services"
)

type SlotHandler struct {
	workspace services.Workspace
	uploads   services.UploadReader
	validate  *validator.Validate
}

func NewSlotHandler(workspace services.Workspace, uploads services.UploadReader) *SlotHandler {
	return &SlotHandler{
		workspace: workspace,
		uploads:   uploads,
		validate:  validator.New(),
	}
}

func (h *SlotHandler) role(c *fiber.Ctx) (models.SlotRole, bool) {
	role, err := models.ParseSlotRole(c.Params("role"))
	if err != nil {
		return "", false
	}
	return role, true
}

// HandleSelectFile handles POST /slots/:role/file
func (h *SlotHandler) HandleSelectFile(c *fiber.Ctx) error {
	return h.handleFile(c, false, h.workspace.SelectFile)
}

// HandleDrop handles POST /slots/:role/drop
func (h *SlotHandler) HandleDrop(c *fiber.Ctx) error {
	return h.handleFile(c, true, h.workspace.DropFile)
}

func (h *SlotHandler) handleFile(c *fiber.Ctx, drop bool, intake func(models.SlotRole, *models.UploadedFile) (models.InputSlot, error)) error {
	role, ok := h.role(c)
	if !ok {
		return badRequest(c, "role must be resume or job_description")
	}

	// A drop ends the drag even when the upload itself is rejected.
	if drop {
		h.workspace.EndDrag(role)
	}

	header, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}

	file, err := h.uploads.Read(header)
	if err != nil {
		return respondError(c, err)
	}

	slot, err := intake(role, file)
	if err != nil {
		code := statusFor(err)
		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
			"code":  code,
			"slot":  slot,
		})
	}

	// Extraction continues in the background; poll the workspace for progress.
	return c.Status(fiber.StatusAccepted).JSON(models.SlotResponse{Slot: slot})
}

// HandleDragEnter handles POST /slots/:role/drag-enter
func (h *SlotHandler) HandleDragEnter(c *fiber.Ctx) error {
	role, ok := h.role(c)
	if !ok {
		return badRequest(c, "role must be resume or job_description")
	}
	return c.JSON(models.SlotResponse{Slot: h.workspace.DragEnter(role)})
}

// HandleDragLeave handles POST /slots/:role/drag-leave
func (h *SlotHandler) HandleDragLeave(c *fiber.Ctx) error {
	role, ok := h.role(c)
	if !ok {
		return badRequest(c, "role must be resume or job_description")
	}
	return c.JSON(models.SlotResponse{Slot: h.workspace.DragLeave(role)})
}

// HandleEditText handles PUT /slots/:role/text
func (h *SlotHandler) HandleEditText(c *fiber.Ctx) error {
	role, ok := h.role(c)
	if !ok {
		return badRequest(c, "role must be resume or job_description")
	}

	var req models.EditTextRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}
	if err := h.validate.Struct(&req); err != nil {
		return badRequest(c, "text is required")
	}

	slot, err := h.workspace.EditText(role, *req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SlotResponse{Slot: slot})
}

// HandleClear handles DELETE /slots/:role
func (h *SlotHandler) HandleClear(c *fiber.Ctx) error {
	role, ok := h.role(c)
	if !ok {
		return badRequest(c, "role must be resume or job_description")
	}
	return c.JSON(models.SlotResponse{Slot: h.workspace.Clear(role)})
}

// HandleDismissError handles DELETE /slots/:role/error
func (h *SlotHandler) HandleDismissError(c *fiber.Ctx) error {
	role, ok := h.role(c)
	if !ok {
		return badRequest(c, "role must be resume or job_description")
	}
	return c.JSON(models.SlotResponse{Slot: h.workspace.DismissError(role)})
}
