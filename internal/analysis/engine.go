package analysis

import (
	"time"

	"riskscope/internal/rules"
	"riskscope/internal/signal"
)

// Engine is the deterministic core: normalize, evaluate, aggregate, explain.
// It holds no clock and no I/O; identical input and timestamp produce an
// identical Result.
type Engine struct {
	registry []rules.Rule
}

// NewEngine builds an engine over the default rule calibration.
func NewEngine() *Engine {
	return NewEngineWithConfig(rules.DefaultConfig())
}

// NewEngineWithConfig builds an engine over a custom calibration.
func NewEngineWithConfig(cfg rules.Config) *Engine {
	return &Engine{registry: rules.NewRegistry(cfg)}
}

// Analyze normalizes the raw submission and produces a full assessment. The
// caller supplies the timestamp so the result stays a pure function of its
// arguments. Validation failures surface as signal.ValidationError.
func (e *Engine) Analyze(raw map[string]any, now time.Time) (*Result, error) {
	signals, err := signal.Normalize(raw)
	if err != nil {
		return nil, err
	}
	return e.AnalyzeSignals(signals, now), nil
}

// AnalyzeSignals runs the rule set over already-normalized signals.
func (e *Engine) AnalyzeSignals(s signal.AccountSignals, now time.Time) *Result {
	ev := evaluate(e.registry, s)

	score := ev.score()
	confidence := ev.confidence()
	reasons := ev.reasons()

	details := make([]string, 0, len(reasons))
	for _, r := range reasons {
		details = append(details, r.Detail)
	}

	return &Result{
		Username:        s.Username,
		RiskScore:       score,
		RiskLevel:       LevelFromScore(score),
		Confidence:      confidence,
		ConfidenceLabel: LabelFromConfidence(confidence),
		Reasons:         details,
		Recommendations: recommendations(reasons),
		Timestamp:       now.UTC(),
	}
}
