package services

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"alfredoptarigan/resume-matcher/internal/models"
)

//go:embed schemas/analysis_result.schema.json
var analysisResultSchema string

var analysisSchemaLoader = gojsonschema.NewStringLoader(analysisResultSchema)

// AnalysisGateway sends both documents to the matching service and returns
// the validated result. Failures of the service call are *AnalysisError.
type AnalysisGateway interface {
	Analyze(ctx context.Context, resumeText, jobDescriptionText string) (*models.AnalysisResult, error)
}

type analysisGateway struct {
	geminiService GeminiService
	promptBuilder *PromptBuilder
	validate      *validator.Validate
}

func NewAnalysisGateway(geminiService GeminiService) AnalysisGateway {
	return &analysisGateway{
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		validate:      validator.New(),
	}
}

func (a *analysisGateway) Analyze(ctx context.Context, resumeText, jobDescriptionText string) (*models.AnalysisResult, error) {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobDescriptionText) == "" {
		return nil, ErrMissingInput
	}

	requestID := uuid.New()
	log.Printf("🤖 [%s] Requesting match analysis (resume: %d chars, job description: %d chars)\n",
		requestID, len(resumeText), len(jobDescriptionText))

	response, err := a.geminiService.GenerateJSON(
		ctx,
		a.promptBuilder.BuildMatchSystemInstruction(),
		a.promptBuilder.BuildMatchPrompt(resumeText, jobDescriptionText),
		MatchResponseSchema(),
	)
	if err != nil {
		log.Printf("❌ [%s] Match analysis failed: %v\n", requestID, err)
		return nil, newTransportError(err)
	}

	result, err := a.parseAnalysisResult(response)
	if err != nil {
		log.Printf("❌ [%s] Invalid match analysis response: %v\n", requestID, err)
		return nil, newInvalidFormatError(err)
	}

	log.Printf("✅ [%s] Match analysis completed: score %.0f (%s)\n", requestID, result.MatchScore, result.FitLevel)
	return result, nil
}

// parseAnalysisResult checks the raw response against the response schema
// before decoding it, so a partially populated result is never returned.
func (a *analysisGateway) parseAnalysisResult(response string) (*models.AnalysisResult, error) {
	jsonStr := extractJSON(response)

	validation, err := gojsonschema.Validate(analysisSchemaLoader, gojsonschema.NewStringLoader(jsonStr))
	if err != nil {
		return nil, fmt.Errorf("failed to read response as JSON: %w", err)
	}
	if !validation.Valid() {
		var problems []string
		for _, desc := range validation.Errors() {
			problems = append(problems, desc.String())
		}
		return nil, fmt.Errorf("response does not match schema: %s", strings.Join(problems, "; "))
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	if err := a.validate.Struct(&result); err != nil {
		return nil, fmt.Errorf("response failed validation: %w", err)
	}

	if expected := models.FitLevelForScore(result.MatchScore); result.FitLevel != expected {
		log.Printf("⚠️  Fit level %q does not match score %.1f, using %q\n", result.FitLevel, result.MatchScore, expected)
		result.FitLevel = expected
	}

	return &result, nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	// Remove markdown code blocks
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	endObj := strings.LastIndex(text, "}")
	if startObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}

	return strings.TrimSpace(text)
}
