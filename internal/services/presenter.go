package services

import (
	"math"

	"alfredoptarigan/resume-matcher/internal/models"
)

// GaugeRadius is the radius of the circular score gauge.
const GaugeRadius = 40

var fitTones = map[models.FitLevel]string{
	models.FitLevelExcellent: "emerald",
	models.FitLevelStrong:    "blue",
	models.FitLevelModerate:  "amber",
	models.FitLevelWeak:      "rose",
}

// BuildResultView maps an analysis onto the fields a result screen renders.
func BuildResultView(analysisID string, result *models.AnalysisResult) models.ResultView {
	circumference := 2 * math.Pi * GaugeRadius
	score := math.Max(0, math.Min(100, result.MatchScore))

	alignment := make([]models.AlignmentRowView, 0, len(result.SkillAlignment))
	for _, row := range result.SkillAlignment {
		alignment = append(alignment, models.AlignmentRowView{
			SkillAlignmentRow: row,
			Quality:           row.Quality(),
		})
	}

	return models.ResultView{
		AnalysisID:      analysisID,
		Score:           int(math.Round(result.MatchScore)),
		RawScore:        result.MatchScore,
		FitLevel:        result.FitLevel,
		FitLabel:        string(result.FitLevel) + " Fit",
		Tone:            toneFor(result.FitLevel),
		GaugeDashArray:  circumference,
		GaugeDashOffset: circumference - score/100*circumference,
		Verdict:         result.Verdict,
		Alignment:       alignment,
		Strengths:       nonNil(result.Strengths),
		MissingOrWeak:   nonNil(result.MissingOrWeak),
		KeywordGaps: models.KeywordGaps{
			Critical:   nonNil(result.KeywordGaps.Critical),
			NiceToHave: nonNil(result.KeywordGaps.NiceToHave),
		},
		Suggestions: models.ImprovementSuggestions{
			BulletRewrites:    nonNil(result.Suggestions.BulletRewrites),
			SkillsToHighlight: nonNil(result.Suggestions.SkillsToHighlight),
			ExperienceFraming: nonNil(result.Suggestions.ExperienceFraming),
		},
	}
}

func toneFor(level models.FitLevel) string {
	if tone, ok := fitTones[level]; ok {
		return tone
	}
	return fitTones[models.FitLevelWeak]
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
