package models

import "strings"

type FitLevel string

const (
	FitLevelExcellent FitLevel = "Excellent"
	FitLevelStrong    FitLevel = "Strong"
	FitLevelModerate  FitLevel = "Moderate"
	FitLevelWeak      FitLevel = "Weak"
)

// Score cutoffs for the fit levels. Scores are on a 0-100 scale.
const (
	ExcellentThreshold = 85
	StrongThreshold    = 70
	ModerateThreshold  = 50
)

// FitLevelForScore maps a match score onto its fit level.
func FitLevelForScore(score float64) FitLevel {
	switch {
	case score >= ExcellentThreshold:
		return FitLevelExcellent
	case score >= StrongThreshold:
		return FitLevelStrong
	case score >= ModerateThreshold:
		return FitLevelModerate
	default:
		return FitLevelWeak
	}
}

func (f FitLevel) Valid() bool {
	switch f {
	case FitLevelExcellent, FitLevelStrong, FitLevelModerate, FitLevelWeak:
		return true
	}
	return false
}

type SkillAlignmentRow struct {
	Category      string `json:"category"`
	JobRequires   string `json:"jobRequires"`
	FoundInResume string `json:"foundInResume"`
	Match         string `json:"match"`
}

type MatchQuality string

const (
	MatchQualityHigh    MatchQuality = "high"
	MatchQualityPartial MatchQuality = "partial"
	MatchQualityLow     MatchQuality = "low"
)

// Quality classifies the free-form match label of a row.
func (r SkillAlignmentRow) Quality() MatchQuality {
	label := strings.ToLower(r.Match)
	switch {
	case strings.Contains(label, "high"):
		return MatchQualityHigh
	case strings.Contains(label, "partial"):
		return MatchQualityPartial
	default:
		return MatchQualityLow
	}
}

type KeywordGaps struct {
	Critical   []string `json:"critical"`
	NiceToHave []string `json:"niceToHave"`
}

type ImprovementSuggestions struct {
	BulletRewrites    []string `json:"bulletRewrites"`
	SkillsToHighlight []string `json:"skillsToHighlight"`
	ExperienceFraming []string `json:"experienceFraming"`
}

// AnalysisResult is the structured fit analysis returned by the matching
// service. It is never mutated after it has been validated.
type AnalysisResult struct {
	MatchScore     float64                `json:"matchScore" validate:"gte=0,lte=100"`
	FitLevel       FitLevel               `json:"fitLevel" validate:"oneof=Excellent Strong Moderate Weak"`
	SkillAlignment []SkillAlignmentRow    `json:"skillAlignment" validate:"required"`
	Strengths      []string               `json:"strengths" validate:"required"`
	MissingOrWeak  []string               `json:"missingOrWeak" validate:"required"`
	KeywordGaps    KeywordGaps            `json:"keywordGaps"`
	Suggestions    ImprovementSuggestions `json:"suggestions"`
	Verdict        string                 `json:"verdict"`
}
