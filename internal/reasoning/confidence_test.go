package reasoning

import (
	"math"
	"testing"

	"github.com/davidahmann/steward/internal/scenario"
)

func scenarioWith(regime string, uncertainty float64) scenario.Input {
	s := scenario.Input{
		ScenarioID:  "s1",
		Environment: scenario.DefaultEnvironment,
		Portfolio:   scenario.DefaultPortfolio,
	}
	s.Environment.RateRegime = regime
	s.Environment.Uncertainty = uncertainty
	return s
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestConfidenceLowUncertaintyStableRegime(t *testing.T) {
	result := ComputeConfidence(scenarioWith("stable", 0.1))

	if !almostEqual(result.Level, 0.80) {
		t.Fatalf("expected level 0.80, got %v", result.Level)
	}
	if result.Trend != TrendStable {
		t.Fatalf("expected stable trend in a stable regime, got %s", result.Trend)
	}
}

func TestConfidenceLowUncertaintyShiftingRegime(t *testing.T) {
	result := ComputeConfidence(scenarioWith("rising", 0.1))

	if result.Trend != TrendImproving {
		t.Fatalf("expected improving trend outside a stable regime, got %s", result.Trend)
	}
}

func TestConfidenceHighUncertaintyDegrading(t *testing.T) {
	result := ComputeConfidence(scenarioWith("stable", 0.7))

	if !almostEqual(result.Level, 0.5) {
		t.Fatalf("expected level 0.5, got %v", result.Level)
	}
	if result.Trend != TrendDegrading {
		t.Fatalf("expected degrading trend, got %s", result.Trend)
	}
}

func TestConfidenceMidUncertaintyStable(t *testing.T) {
	result := ComputeConfidence(scenarioWith("rising", 0.4))

	if result.Trend != TrendStable {
		t.Fatalf("expected stable trend at mid uncertainty, got %s", result.Trend)
	}
}

func TestConfidenceClampsOutOfRangeUncertainty(t *testing.T) {
	result := ComputeConfidence(scenarioWith("stable", 1.7))

	// Clamped to 1.0 before scoring: 0.85 - 0.5 = 0.35.
	if !almostEqual(result.Level, 0.35) {
		t.Fatalf("expected level 0.35 after clamping, got %v", result.Level)
	}
	if result.Trend != TrendDegrading {
		t.Fatalf("expected degrading trend, got %s", result.Trend)
	}

	negative := ComputeConfidence(scenarioWith("stable", -0.5))
	if !almostEqual(negative.Level, 0.85) {
		t.Fatalf("expected level 0.85 for clamped negative uncertainty, got %v", negative.Level)
	}
}

func TestConfidenceAttributionFixed(t *testing.T) {
	a := ComputeConfidence(scenarioWith("stable", 0.1))
	b := ComputeConfidence(scenarioWith("falling", 0.9))

	if a.Attribution != b.Attribution || a.Attribution == "" {
		t.Fatalf("expected a fixed attribution string, got %q vs %q", a.Attribution, b.Attribution)
	}
}
