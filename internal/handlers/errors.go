package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-matcher/internal/services"
)

// statusFor maps a service error onto its HTTP status.
func statusFor(err error) int {
	var analysisErr *services.AnalysisError
	var extractionErr *services.ExtractionError

	switch {
	case errors.Is(err, services.ErrUnsupportedFileType):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, services.ErrFileTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, services.ErrMissingInput),
		errors.Is(err, services.ErrEmptyExtraction),
		errors.As(err, &extractionErr):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrSlotBusy),
		errors.Is(err, services.ErrAnalysisInProgress),
		errors.Is(err, services.ErrAnalysisStale):
		return fiber.StatusConflict
	case errors.As(err, &analysisErr):
		return fiber.StatusBadGateway
	case errors.Is(err, services.ErrWorkerStopped):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
		"code":  fiber.StatusBadRequest,
	})
}
