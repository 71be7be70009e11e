package reasoning

import "github.com/davidahmann/steward/internal/scenario"

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDegrading Trend = "degrading"
)

const confidenceAttribution = "Derived from scenario uncertainty and regime stability."

type ConfidenceResult struct {
	Level       float64
	Trend       Trend
	Attribution string
}

// ComputeConfidence derives a deterministic confidence score from scenario
// uncertainty, clamped to [0,1] here rather than at load time.
func ComputeConfidence(s scenario.Input) ConfidenceResult {
	uncertainty := clamp01(s.Environment.Uncertainty)
	level := clamp01(0.85 - uncertainty*0.5)

	trend := TrendStable
	switch {
	case uncertainty >= 0.6:
		trend = TrendDegrading
	case uncertainty <= 0.2 && s.Environment.RateRegime != "stable":
		trend = TrendImproving
	}

	return ConfidenceResult{
		Level:       level,
		Trend:       trend,
		Attribution: confidenceAttribution,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
