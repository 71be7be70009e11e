package types

// JudgmentRecord is the durable output of one judgment procedure invocation.
// Once written it is never mutated; the publisher consumes it read-only.
type JudgmentRecord struct {
	RecordID  string `yaml:"record_id" json:"record_id"`
	Timestamp string `yaml:"timestamp" json:"timestamp"`

	Authority  Authority  `yaml:"authority" json:"authority"`
	Invocation Invocation `yaml:"invocation" json:"invocation"`
	State      State      `yaml:"state" json:"state"`
	Outcome    Outcome    `yaml:"outcome" json:"outcome"`

	// Exactly one of the following is populated, keyed to Outcome.Type.
	Adjustment *Adjustment `yaml:"adjustment,omitempty" json:"adjustment,omitempty"`
	Inaction   *Inaction   `yaml:"inaction,omitempty" json:"inaction,omitempty"`
	Escalation *Escalation `yaml:"escalation,omitempty" json:"escalation,omitempty"`

	Confidence  Confidence  `yaml:"confidence" json:"confidence"`
	Constraints Constraints `yaml:"constraints" json:"constraints"`
	Compliance  Compliance  `yaml:"compliance" json:"compliance"`
	Behavior    Behavior    `yaml:"behavior" json:"behavior"`
	Audit       Audit       `yaml:"audit" json:"audit"`
}

type Authority struct {
	MandateID        string `yaml:"mandate_id" json:"mandate_id"`
	MandateVersion   string `yaml:"mandate_version" json:"mandate_version"`
	ProcedureID      string `yaml:"procedure_id" json:"procedure_id"`
	ProcedureVersion string `yaml:"procedure_version" json:"procedure_version"`
}

type Invocation struct {
	TriggerType         string `yaml:"trigger_type" json:"trigger_type"`
	TriggerDescription  string `yaml:"trigger_description" json:"trigger_description"`
	PersistenceEvidence string `yaml:"persistence_evidence" json:"persistence_evidence"`
}

type State struct {
	PortfolioSummary   PortfolioSummary   `yaml:"portfolio_summary" json:"portfolio_summary"`
	EnvironmentSummary EnvironmentSummary `yaml:"environment_summary" json:"environment_summary"`
}

type PortfolioSummary struct {
	KeyExposures      KeyExposures      `yaml:"key_exposures" json:"key_exposures"`
	LiquidityPosition LiquidityPosition `yaml:"liquidity_position" json:"liquidity_position"`
	LeverageLevel     float64           `yaml:"leverage_level" json:"leverage_level"`
}

type KeyExposures struct {
	GrossExposure float64 `yaml:"gross_exposure" json:"gross_exposure"`
}

type LiquidityPosition struct {
	BufferMonths int `yaml:"buffer_months" json:"buffer_months"`
}

type EnvironmentSummary struct {
	RegimeState      string   `yaml:"regime_state" json:"regime_state"`
	KeyUncertainties []string `yaml:"key_uncertainties" json:"key_uncertainties"`
}

type Outcome struct {
	Type        OutcomeType `yaml:"type" json:"type"`
	Description string      `yaml:"description" json:"description"`
}

type Adjustment struct {
	AdjustmentUnit            string   `yaml:"adjustment_unit" json:"adjustment_unit"`
	RecommendedChanges        []string `yaml:"recommended_changes" json:"recommended_changes"`
	MandateConstraintsChecked bool     `yaml:"mandate_constraints_checked" json:"mandate_constraints_checked"`
}

type Inaction struct {
	Justification     string   `yaml:"justification" json:"justification"`
	RisksAcknowledged []string `yaml:"risks_acknowledged" json:"risks_acknowledged"`
}

type Escalation struct {
	EscalationReason          string   `yaml:"escalation_reason" json:"escalation_reason"`
	HumanAuthorityRequired    []string `yaml:"human_authority_required" json:"human_authority_required"`
	AutomatedActionsSuspended bool     `yaml:"automated_actions_suspended" json:"automated_actions_suspended"`
}

type Confidence struct {
	Level       float64 `yaml:"level" json:"level"`
	Trend       string  `yaml:"trend" json:"trend"`
	Attribution string  `yaml:"attribution" json:"attribution"`
}

type Constraints struct {
	HardConstraintsBreached bool     `yaml:"hard_constraints_breached" json:"hard_constraints_breached"`
	ConstraintsAtRisk       []string `yaml:"constraints_at_risk" json:"constraints_at_risk"`
}

type Compliance struct {
	ProcedureFollowed bool     `yaml:"procedure_followed" json:"procedure_followed"`
	Deviations        []string `yaml:"deviations" json:"deviations"`
}

type Behavior struct {
	ToolCalls              int      `yaml:"tool_calls" json:"tool_calls"`
	ProcedureBranchesTaken []string `yaml:"procedure_branches_taken" json:"procedure_branches_taken"`
	DecisionLatencyMS      int      `yaml:"decision_latency_ms" json:"decision_latency_ms"`
	Escalated              bool     `yaml:"escalated" json:"escalated"`
	Inaction               bool     `yaml:"inaction" json:"inaction"`
}

type Audit struct {
	RetainedUntil string  `yaml:"retained_until" json:"retained_until"`
	Immutable     bool    `yaml:"immutable" json:"immutable"`
	SupersededBy  *string `yaml:"superseded_by" json:"superseded_by"`
}

// EscalationStub is the secondary artifact routed for human follow-up.
type EscalationStub struct {
	RecordID    string `yaml:"record_id" json:"record_id"`
	Timestamp   string `yaml:"timestamp" json:"timestamp"`
	MandateID   string `yaml:"mandate_id" json:"mandate_id"`
	ProcedureID string `yaml:"procedure_id" json:"procedure_id"`
	Reason      string `yaml:"reason" json:"reason"`
}
