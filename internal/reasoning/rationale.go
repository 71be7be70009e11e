package reasoning

import (
	"fmt"
	"strings"

	"github.com/davidahmann/steward/internal/mandate"
	"github.com/davidahmann/steward/internal/scenario"
)

// OutcomeRationale renders the deterministic pipe-delimited explanation that
// becomes the outcome description. Identical inputs always produce an
// identical string; regression tests depend on that.
func OutcomeRationale(m mandate.Mandate, s scenario.Input, alignment AlignmentResult, confidence ConfidenceResult) string {
	parts := []string{
		fmt.Sprintf("Regime=%s", s.Environment.RateRegime),
		fmt.Sprintf("gross_exposure=%.2f", s.Portfolio.GrossExposure),
		fmt.Sprintf("liquidity_buffer_months=%d", s.Portfolio.LiquidityBufferMonths),
		fmt.Sprintf("confidence=%.2f", confidence.Level),
		fmt.Sprintf("mandate=%s", m.ID()),
	}

	switch {
	case alignment.HardConstraintsBreached:
		parts = append(parts, "hard_constraint_breach")
	case len(alignment.ConstraintsAtRisk) > 0:
		parts = append(parts, "constraints_at_risk")
	default:
		parts = append(parts, "within_constraints")
	}

	return strings.Join(parts, " | ")
}
