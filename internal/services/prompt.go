package services

import (
	"fmt"

	"google.golang.org/genai"

	"alfredoptarigan/resume-matcher/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildMatchSystemInstruction creates the fixed instruction for the matching engine
func (pb *PromptBuilder) BuildMatchSystemInstruction() string {
	return fmt.Sprintf(`You are an expert AI Resume–Job Description Matching Engine.
Your task is to provide a highly detailed, semantic comparison between a resume and a job description.
You do not use exact keyword matching; instead, focus on the deeper meaning of experiences and technical skills.

SCORING LOGIC (Total 100%%):
- Skills match: 40%%
- Responsibilities match: 30%%
- Tools & technologies: 20%%
- Experience level: 10%%

FIT LEVELS:
- %s: %d-100%%
- %s: %d-%d%%
- %s: %d-%d%%
- %s: Below %d%%

Output ONLY valid JSON according to the schema.`,
		models.FitLevelExcellent, models.ExcellentThreshold,
		models.FitLevelStrong, models.StrongThreshold, models.ExcellentThreshold-1,
		models.FitLevelModerate, models.ModerateThreshold, models.StrongThreshold-1,
		models.FitLevelWeak, models.ModerateThreshold)
}

// BuildMatchPrompt creates the per-request prompt carrying both documents
func (pb *PromptBuilder) BuildMatchPrompt(resumeText, jobDescriptionText string) string {
	return fmt.Sprintf(`Analyze the following Resume and Job Description for semantic alignment.
Evaluate the candidate's fit based on skills, responsibilities, tools, and experience.

RESUME:
%s

JOB DESCRIPTION:
%s`, resumeText, jobDescriptionText)
}

func stringList() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
}

// MatchResponseSchema is the response constraint sent with every analysis.
func MatchResponseSchema() *genai.Schema {
	minScore, maxScore := 0.0, 100.0

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"matchScore": {
				Type:        genai.TypeNumber,
				Description: "Match score from 0 to 100",
				Minimum:     &minScore,
				Maximum:     &maxScore,
			},
			"fitLevel": {
				Type: genai.TypeString,
				Enum: []string{
					string(models.FitLevelExcellent),
					string(models.FitLevelStrong),
					string(models.FitLevelModerate),
					string(models.FitLevelWeak),
				},
			},
			"skillAlignment": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"category":      {Type: genai.TypeString},
						"jobRequires":   {Type: genai.TypeString},
						"foundInResume": {Type: genai.TypeString},
						"match":         {Type: genai.TypeString},
					},
					Required: []string{"category", "jobRequires", "foundInResume", "match"},
				},
			},
			"strengths":     stringList(),
			"missingOrWeak": stringList(),
			"keywordGaps": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"critical":   stringList(),
					"niceToHave": stringList(),
				},
				Required: []string{"critical", "niceToHave"},
			},
			"suggestions": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"bulletRewrites":    stringList(),
					"skillsToHighlight": stringList(),
					"experienceFraming": stringList(),
				},
				Required: []string{"bulletRewrites", "skillsToHighlight", "experienceFraming"},
			},
			"verdict": {
				Type:        genai.TypeString,
				Description: "1-2 sentence final recruiter verdict",
			},
		},
		Required: []string{
			"matchScore", "fitLevel", "skillAlignment", "strengths",
			"missingOrWeak", "keywordGaps", "suggestions", "verdict",
		},
		PropertyOrdering: []string{
			"matchScore", "fitLevel", "skillAlignment", "strengths",
			"missingOrWeak", "keywordGaps", "suggestions", "verdict",
		},
	}
}
