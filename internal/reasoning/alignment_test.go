package reasoning

import (
	"reflect"
	"testing"

	"github.com/davidahmann/steward/internal/mandate"
	"github.com/davidahmann/steward/internal/scenario"
)

func testMandate(t *testing.T, doc map[string]any) mandate.Mandate {
	t.Helper()
	m, err := mandate.FromDocument(doc, "test-mandate.yaml")
	if err != nil {
		t.Fatalf("build mandate: %v", err)
	}
	return m
}

func constrainedMandate(t *testing.T) mandate.Mandate {
	return testMandate(t, map[string]any{
		"meta":             map[string]any{"mandate_id": "m1"},
		"leverage":         map[string]any{"max_gross_exposure": 1.5},
		"liquidity":        map[string]any{"minimum_buffer_months": 6},
		"risk_constraints": map[string]any{"funding_ratio": map[string]any{"minimum": 0.95}},
	})
}

func baseScenario() scenario.Input {
	return scenario.Input{
		ScenarioID:  "s1",
		AsOf:        "2024-01-01T00:00:00Z",
		Environment: scenario.DefaultEnvironment,
		Portfolio:   scenario.DefaultPortfolio,
	}
}

func TestAlignmentWithinConstraints(t *testing.T) {
	result := EvaluateAlignment(constrainedMandate(t), baseScenario())

	if result.Status != StatusAligned {
		t.Fatalf("expected aligned, got %s", result.Status)
	}
	if result.HardConstraintsBreached {
		t.Fatalf("expected no hard breach")
	}
	if len(result.ConstraintsAtRisk) != 0 {
		t.Fatalf("expected no soft risks, got %v", result.ConstraintsAtRisk)
	}
}

func TestAlignmentExposureHardBreach(t *testing.T) {
	s := baseScenario()
	s.Portfolio.GrossExposure = 2.0

	result := EvaluateAlignment(constrainedMandate(t), s)

	if !result.HardConstraintsBreached {
		t.Fatalf("expected hard breach for exposure over maximum")
	}
	if result.Status != StatusMisaligned {
		t.Fatalf("expected misaligned, got %s", result.Status)
	}
	if len(result.RecommendedChanges) != 1 || result.RecommendedChanges[0] != "Reduce gross exposure to mandate maximum" {
		t.Fatalf("unexpected recommendations: %v", result.RecommendedChanges)
	}
}

func TestAlignmentLiquiditySoftRisk(t *testing.T) {
	s := baseScenario()
	s.Portfolio.LiquidityBufferMonths = 3

	result := EvaluateAlignment(constrainedMandate(t), s)

	if result.HardConstraintsBreached {
		t.Fatalf("liquidity shortfall must be soft, not a hard breach")
	}
	if !reflect.DeepEqual(result.ConstraintsAtRisk, []string{"liquidity_buffer_months"}) {
		t.Fatalf("expected liquidity at risk, got %v", result.ConstraintsAtRisk)
	}
	if result.Status != StatusMisaligned {
		t.Fatalf("soft risk alone must mark misalignment, got %s", result.Status)
	}
}

func TestAlignmentFundingRatioHardBreach(t *testing.T) {
	ratio := 0.8
	s := baseScenario()
	s.Portfolio.FundingRatio = &ratio

	result := EvaluateAlignment(constrainedMandate(t), s)

	if !result.HardConstraintsBreached {
		t.Fatalf("expected hard breach for funding ratio under minimum")
	}
}

func TestAlignmentCollectsAllViolations(t *testing.T) {
	ratio := 0.5
	s := baseScenario()
	s.Portfolio.GrossExposure = 3.0
	s.Portfolio.LiquidityBufferMonths = 0
	s.Portfolio.FundingRatio = &ratio

	result := EvaluateAlignment(constrainedMandate(t), s)

	if !result.HardConstraintsBreached {
		t.Fatalf("expected hard breach")
	}
	if len(result.ConstraintsAtRisk) != 1 {
		t.Fatalf("expected liquidity at risk alongside hard breaches, got %v", result.ConstraintsAtRisk)
	}
	if len(result.RecommendedChanges) != 3 {
		t.Fatalf("expected all three remediations collected, got %v", result.RecommendedChanges)
	}
}

func TestAlignmentAbsentConstraintsNotApplicable(t *testing.T) {
	m := testMandate(t, map[string]any{"meta": map[string]any{"mandate_id": "unconstrained"}})

	ratio := 0.1
	s := baseScenario()
	s.Portfolio.GrossExposure = 10.0
	s.Portfolio.LiquidityBufferMonths = 0
	s.Portfolio.FundingRatio = &ratio

	result := EvaluateAlignment(m, s)

	if result.Status != StatusAligned {
		t.Fatalf("absent constraints must not breach, got %s", result.Status)
	}
	if result.HardConstraintsBreached || len(result.ConstraintsAtRisk) != 0 {
		t.Fatalf("expected no violations without declared constraints")
	}
}

func TestAlignmentFundingRatioAbsentFromScenario(t *testing.T) {
	result := EvaluateAlignment(constrainedMandate(t), baseScenario())

	// Funding rule needs both the mandate minimum and the scenario value.
	if result.HardConstraintsBreached {
		t.Fatalf("expected no funding breach without a scenario funding ratio")
	}
}
