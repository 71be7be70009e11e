// Package procedure implements the judgment procedure: outcome determination,
// branch tracing, and assembly of the full audit record.
package procedure

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/davidahmann/steward/internal/mandate"
	"github.com/davidahmann/steward/internal/reasoning"
	"github.com/davidahmann/steward/internal/scenario"
	"github.com/davidahmann/steward/pkg/types"
)

const (
	ProcedureID      = "rate_regime_adjustment"
	ProcedureVersion = "v1"
)

type Procedure struct{}

// Judge runs one deterministic decision pass and assembles the judgment
// record. The caller supplies a placeholder latency and rewrites it with the
// measured value before persisting.
func (Procedure) Judge(m mandate.Mandate, s scenario.Input, thresholds Thresholds, decisionLatencyMS int) types.JudgmentRecord {
	alignment := reasoning.EvaluateAlignment(m, s)
	confidence := reasoning.ComputeConfidence(s)
	rationale := reasoning.OutcomeRationale(m, s, alignment, confidence)

	outcomeType := determineOutcome(m, alignment, confidence)
	branches := branchesTaken(alignment, confidence, outcomeType, m.MinConfidenceLevel())

	record := types.JudgmentRecord{
		RecordID:  uuid.New().String(),
		Timestamp: utcNowISO(),
		Authority: types.Authority{
			MandateID:        m.ID(),
			MandateVersion:   m.Version(),
			ProcedureID:      ProcedureID,
			ProcedureVersion: ProcedureVersion,
		},
		Invocation: types.Invocation{
			TriggerType:        "state_change",
			TriggerDescription: fmt.Sprintf("Scenario %s", s.ScenarioID),
			PersistenceEvidence: fmt.Sprintf(
				"%d confirmations over %d cycles",
				thresholds.MinimumConfirmations, thresholds.ReviewCycles,
			),
		},
		State: types.State{
			PortfolioSummary: types.PortfolioSummary{
				KeyExposures:      types.KeyExposures{GrossExposure: s.Portfolio.GrossExposure},
				LiquidityPosition: types.LiquidityPosition{BufferMonths: s.Portfolio.LiquidityBufferMonths},
				LeverageLevel:     s.Portfolio.GrossExposure,
			},
			EnvironmentSummary: types.EnvironmentSummary{
				RegimeState:      s.Environment.RateRegime,
				KeyUncertainties: []string{s.Environment.InflationRegime},
			},
		},
		Outcome: types.Outcome{
			Type:        outcomeType,
			Description: rationale,
		},
		Confidence: types.Confidence{
			Level:       confidence.Level,
			Trend:       string(confidence.Trend),
			Attribution: confidence.Attribution,
		},
		Constraints: types.Constraints{
			HardConstraintsBreached: alignment.HardConstraintsBreached,
			ConstraintsAtRisk:       alignment.ConstraintsAtRisk,
		},
		Compliance: types.Compliance{
			ProcedureFollowed: true,
			Deviations:        nil,
		},
		Behavior: types.Behavior{
			ToolCalls:              0,
			ProcedureBranchesTaken: branches,
			DecisionLatencyMS:      decisionLatencyMS,
			Escalated:              outcomeType == types.OutcomeEscalate,
			Inaction:               outcomeType == types.OutcomeAffirmAlignment,
		},
		Audit: types.Audit{
			RetainedUntil: retainedUntil(m.RetentionYears()),
			Immutable:     true,
			SupersededBy:  nil,
		},
	}

	switch outcomeType {
	case types.OutcomeRecommendAdjustment:
		changes := alignment.RecommendedChanges
		if len(changes) == 0 {
			changes = []string{"Rebalance exposures within mandate tolerances"}
		}
		record.Adjustment = &types.Adjustment{
			AdjustmentUnit:            "exposure",
			RecommendedChanges:        changes,
			MandateConstraintsChecked: true,
		}
	case types.OutcomeAffirmAlignment:
		record.Inaction = &types.Inaction{
			Justification:     "Exposures remain within mandate tolerances; no adjustment required.",
			RisksAcknowledged: []string{"Regime shift warrants continued monitoring"},
		}
	case types.OutcomeEscalate:
		record.Escalation = &types.Escalation{
			EscalationReason:          "Mandate constraints breached or confidence below floor.",
			HumanAuthorityRequired:    []string{"Investment committee review"},
			AutomatedActionsSuspended: true,
		}
	}

	return record
}

// determineOutcome applies the outcome rules in priority order; the first
// matching rule wins.
func determineOutcome(m mandate.Mandate, alignment reasoning.AlignmentResult, confidence reasoning.ConfidenceResult) types.OutcomeType {
	if alignment.HardConstraintsBreached {
		return types.OutcomeEscalate
	}
	if confidence.Level < m.MinConfidenceLevel() {
		return types.OutcomeEscalate
	}
	if alignment.Status == reasoning.StatusMisaligned {
		return types.OutcomeRecommendAdjustment
	}
	return types.OutcomeAffirmAlignment
}

// branchesTaken records the ordered branch tags for the audit trail, always
// ending with the outcome tag.
func branchesTaken(alignment reasoning.AlignmentResult, confidence reasoning.ConfidenceResult, outcomeType types.OutcomeType, minConfidence float64) []string {
	branches := []string{}
	if alignment.HardConstraintsBreached {
		branches = append(branches, "hard_constraint_breach")
	}
	if len(alignment.ConstraintsAtRisk) > 0 {
		branches = append(branches, "constraints_at_risk")
	}
	if confidence.Level < minConfidence {
		branches = append(branches, "confidence_below_floor")
	}
	branches = append(branches, "outcome_"+string(outcomeType))
	return branches
}
