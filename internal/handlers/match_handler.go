package handlers

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/services"
)

// MatchHandler runs a one-shot analysis without touching the workspace.
type MatchHandler struct {
	uploads   services.UploadReader
	extractor services.DocumentExtractor
	gateway   services.AnalysisGateway
}

func NewMatchHandler(
	uploads services.UploadReader,
	extractor services.DocumentExtractor,
	gateway services.AnalysisGateway,
) *MatchHandler {
	return &MatchHandler{
		uploads:   uploads,
		extractor: extractor,
		gateway:   gateway,
	}
}

// matchInput is one side of a match: either inline text or an uploaded file.
type matchInput struct {
	role models.SlotRole
	text string
	file *models.UploadedFile
}

// HandleMatch handles POST /match
func (h *MatchHandler) HandleMatch(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "failed to parse multipart form")
	}

	resume, err := h.readInput(form, models.RoleResume)
	if err != nil {
		return respondError(c, err)
	}
	jobDescription, err := h.readInput(form, models.RoleJobDescription)
	if err != nil {
		return respondError(c, err)
	}

	g, gCtx := errgroup.WithContext(c.UserContext())
	g.Go(func() error { return h.resolve(gCtx, resume) })
	g.Go(func() error { return h.resolve(gCtx, jobDescription) })
	if err := g.Wait(); err != nil {
		return respondError(c, err)
	}

	result, err := h.gateway.Analyze(c.UserContext(), resume.text, jobDescription.text)
	if err != nil {
		return respondError(c, err)
	}

	id := uuid.NewString()
	return c.JSON(models.AnalyzeResponse{
		ID:     id,
		Status: statusCompleted,
		Result: services.BuildResultView(id, result),
	})
}

// readInput prefers an uploaded file over the inline text field.
func (h *MatchHandler) readInput(form *multipart.Form, role models.SlotRole) (*matchInput, error) {
	input := &matchInput{role: role}

	if files := form.File[string(role)]; len(files) > 0 {
		file, err := h.uploads.Read(files[0])
		if err != nil {
			return nil, err
		}
		if !role.Accepts(file.ContentType) {
			return nil, fmt.Errorf("%s %s: %w", role.Label(), file.Name, services.ErrUnsupportedFileType)
		}
		input.file = file
		return input, nil
	}

	if values := form.Value[string(role)+"_text"]; len(values) > 0 {
		input.text = values[0]
	}
	return input, nil
}

func (h *MatchHandler) resolve(ctx context.Context, input *matchInput) error {
	if input.file == nil {
		return nil
	}

	text, err := h.extractor.Extract(ctx, input.file, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", input.role.Label(), err)
	}
	input.text = text
	return nil
}
