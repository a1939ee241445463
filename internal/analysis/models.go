// Package analysis combines the normalized signals and the rule set into a
// complete, explainable risk assessment.
package analysis

import "time"

// Level buckets the final risk score.
type Level string

const (
	LevelHigh     Level = "High Risk"
	LevelModerate Level = "Moderate Risk"
	LevelLow      Level = "Low Risk"
)

// ConfidenceLabel buckets the confidence percentage.
type ConfidenceLabel string

const (
	ConfidenceHigh   ConfidenceLabel = "High"
	ConfidenceMedium ConfidenceLabel = "Medium"
	ConfidenceLow    ConfidenceLabel = "Low"
)

// Reason is one fired rule's contribution, ordered most influential first.
// It stays internal to the pipeline; only the Detail string reaches the
// output record.
type Reason struct {
	Category   string
	ScoreDelta int
	Detail     string
}

// Result is the full assessment for one account. Reasons carry the fired
// rules' observed conditions as plain strings, never the internal deltas.
type Result struct {
	Username        string          `json:"username"`
	RiskScore       int             `json:"risk_score"`
	RiskLevel       Level           `json:"risk_level"`
	Confidence      int             `json:"confidence"`
	ConfidenceLabel ConfidenceLabel `json:"confidence_label"`
	Reasons         []string        `json:"reasons"`
	Recommendations []string        `json:"recommendations"`
	Timestamp       time.Time       `json:"timestamp"`
}

// LevelFromScore maps a clamped score to its risk bucket.
func LevelFromScore(score int) Level {
	switch {
	case score >= 65:
		return LevelHigh
	case score >= 40:
		return LevelModerate
	default:
		return LevelLow
	}
}

// LabelFromConfidence maps a confidence percentage to its label.
func LabelFromConfidence(confidence int) ConfidenceLabel {
	switch {
	case confidence >= 75:
		return ConfidenceHigh
	case confidence >= 40:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
