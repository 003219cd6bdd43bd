package services

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"
)

type GeminiService interface {
	// GenerateJSON asks the model for a JSON document constrained to schema.
	GenerateJSON(ctx context.Context, systemInstruction, prompt string, schema *genai.Schema) (string, error)
}

type geminiService struct {
	client      *genai.Client
	modelName   string
	temperature float32
}

func NewGeminiService(apiKey, modelName string, temperature float32) (GeminiService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:      client,
		modelName:   modelName,
		temperature: temperature,
	}, nil
}

// GenerateJSON implements GeminiService.
func (g *geminiService) GenerateJSON(ctx context.Context, systemInstruction, prompt string, schema *genai.Schema) (string, error) {
	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       &temperature,
		MaxOutputTokens:   8192,
		ResponseMIMEType:  "application/json",
		ResponseSchema:    schema,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		log.Printf("❌ Gemini API error: %v\n", err)
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("no text content in response")
	}

	log.Printf("📊 Gemini response received: %d characters\n", len(text))
	return text, nil
}
