package models

type EditTextRequest struct {
	Text *string `json:"text" validate:"required"`
}

type SlotResponse struct {
	Slot InputSlot `json:"slot"`
}

type AnalyzeResponse struct {
	ID     string     `json:"id"`
	Status string     `json:"status"`
	Result ResultView `json:"result"`
}

// ResultView is the render-ready form of an AnalysisResult.
type ResultView struct {
	AnalysisID      string                 `json:"analysisId,omitempty"`
	Score           int                    `json:"score"`
	RawScore        float64                `json:"rawScore"`
	FitLevel        FitLevel               `json:"fitLevel"`
	FitLabel        string                 `json:"fitLabel"`
	Tone            string                 `json:"tone"`
	GaugeDashArray  float64                `json:"gaugeDashArray"`
	GaugeDashOffset float64                `json:"gaugeDashOffset"`
	Verdict         string                 `json:"verdict"`
	Alignment       []AlignmentRowView     `json:"alignment"`
	Strengths       []string               `json:"strengths"`
	MissingOrWeak   []string               `json:"missingOrWeak"`
	KeywordGaps     KeywordGaps            `json:"keywordGaps"`
	Suggestions     ImprovementSuggestions `json:"suggestions"`
}

type AlignmentRowView struct {
	SkillAlignmentRow
	Quality MatchQuality `json:"quality"`
}
