// Package reasoning holds the pure evaluation functions behind a judgment:
// constraint alignment, confidence scoring, and rationale formatting.
package reasoning

import (
	"github.com/davidahmann/steward/internal/mandate"
	"github.com/davidahmann/steward/internal/scenario"
)

type AlignmentStatus string

const (
	StatusAligned    AlignmentStatus = "aligned"
	StatusMisaligned AlignmentStatus = "misaligned"
)

type AlignmentResult struct {
	Status                  AlignmentStatus
	HardConstraintsBreached bool
	ConstraintsAtRisk       []string
	RecommendedChanges      []string
}

// EvaluateAlignment checks the scenario against the mandate's hard and soft
// constraints. Rules are evaluated independently so every applicable
// violation is collected. An absent mandate constraint is not applicable,
// never a breach of a zero limit.
func EvaluateAlignment(m mandate.Mandate, s scenario.Input) AlignmentResult {
	result := AlignmentResult{
		Status:            StatusAligned,
		ConstraintsAtRisk: []string{},
	}

	if max := m.MaxGrossExposure(); max != nil && s.Portfolio.GrossExposure > *max {
		result.HardConstraintsBreached = true
		result.RecommendedChanges = append(result.RecommendedChanges, "Reduce gross exposure to mandate maximum")
	}

	// Liquidity shortfalls are soft "at risk", not hard breaches. Funding
	// shortfalls below are hard. The asymmetry is deliberate.
	if min := m.MinLiquidityBufferMonths(); min != nil && s.Portfolio.LiquidityBufferMonths < *min {
		result.ConstraintsAtRisk = append(result.ConstraintsAtRisk, "liquidity_buffer_months")
		result.RecommendedChanges = append(result.RecommendedChanges, "Increase liquidity buffer to mandate minimum")
	}

	if min := m.MinFundingRatio(); min != nil && s.Portfolio.FundingRatio != nil && *s.Portfolio.FundingRatio < *min {
		result.HardConstraintsBreached = true
		result.RecommendedChanges = append(result.RecommendedChanges, "Restore funding ratio above mandate minimum")
	}

	if result.HardConstraintsBreached || len(result.ConstraintsAtRisk) > 0 {
		result.Status = StatusMisaligned
	}
	return result
}
