package types

import (
	"errors"
	"fmt"
)

type OutcomeType string

const (
	OutcomeAffirmAlignment     OutcomeType = "affirm_alignment"
	OutcomeRecommendAdjustment OutcomeType = "recommend_adjustment"
	OutcomeEscalate            OutcomeType = "escalate"
)

var (
	ErrInvalidOutcomeType    = errors.New("outcome type is not one of the allowed values")
	ErrResolutionMismatch    = errors.New("exactly one of adjustment/inaction/escalation must be set, matching the outcome type")
	ErrBehaviorInconsistent  = errors.New("behavior flags do not match the outcome type")
	ErrMissingRecordIdentity = errors.New("record_id and timestamp are required")
)

func (o OutcomeType) Valid() bool {
	switch o {
	case OutcomeAffirmAlignment, OutcomeRecommendAdjustment, OutcomeEscalate:
		return true
	default:
		return false
	}
}

// Validate enforces the record contract: a closed outcome set, exactly one
// resolution payload keyed to the outcome, and behavior flags consistent with it.
func (r JudgmentRecord) Validate() error {
	if r.RecordID == "" || r.Timestamp == "" {
		return ErrMissingRecordIdentity
	}
	if !r.Outcome.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOutcomeType, r.Outcome.Type)
	}

	populated := 0
	if r.Adjustment != nil {
		populated++
	}
	if r.Inaction != nil {
		populated++
	}
	if r.Escalation != nil {
		populated++
	}
	if populated != 1 {
		return fmt.Errorf("%w: %d populated", ErrResolutionMismatch, populated)
	}

	switch r.Outcome.Type {
	case OutcomeRecommendAdjustment:
		if r.Adjustment == nil {
			return ErrResolutionMismatch
		}
	case OutcomeAffirmAlignment:
		if r.Inaction == nil {
			return ErrResolutionMismatch
		}
	case OutcomeEscalate:
		if r.Escalation == nil {
			return ErrResolutionMismatch
		}
	}

	if r.Behavior.Escalated != (r.Outcome.Type == OutcomeEscalate) {
		return fmt.Errorf("%w: escalated=%t for outcome %s", ErrBehaviorInconsistent, r.Behavior.Escalated, r.Outcome.Type)
	}
	if r.Behavior.Inaction != (r.Outcome.Type == OutcomeAffirmAlignment) {
		return fmt.Errorf("%w: inaction=%t for outcome %s", ErrBehaviorInconsistent, r.Behavior.Inaction, r.Outcome.Type)
	}
	if r.Behavior.DecisionLatencyMS < 0 {
		return fmt.Errorf("%w: negative decision_latency_ms", ErrBehaviorInconsistent)
	}
	return nil
}
