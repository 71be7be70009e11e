package runner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/davidahmann/steward/pkg/types"
)

const strictMandate = `meta:
  mandate_id: db_pension_v1
  version: "1.0"
confidence:
  minimum_confidence_level: 0.6
leverage:
  max_gross_exposure: 1.5
liquidity:
  minimum_buffer_months: 6
`

const breachScenario = `scenario_id: rising_rates
environment:
  rate_regime: rising
  uncertainty: 0.3
portfolio:
  gross_exposure: 2.5
  liquidity_buffer_months: 0
`

const calmScenario = `scenario_id: calm
environment:
  rate_regime: stable
  uncertainty: 0.1
portfolio:
  gross_exposure: 1.0
  liquidity_buffer_months: 12
`

type fixture struct {
	mandate        string
	scenario       string
	recordsDir     string
	escalationsDir string
}

func setup(t *testing.T, mandateYAML, scenarioYAML string) fixture {
	t.Helper()
	dir := t.TempDir()

	f := fixture{
		mandate:        filepath.Join(dir, "mandate.yaml"),
		scenario:       filepath.Join(dir, "scenario.yaml"),
		recordsDir:     filepath.Join(dir, "records"),
		escalationsDir: filepath.Join(dir, "escalations"),
	}
	if err := os.WriteFile(f.mandate, []byte(mandateYAML), 0o600); err != nil {
		t.Fatalf("write mandate: %v", err)
	}
	if err := os.WriteFile(f.scenario, []byte(scenarioYAML), 0o600); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return f
}

func (f fixture) paths() Paths {
	return Paths{
		Mandate:        f.mandate,
		Scenario:       f.scenario,
		RecordsDir:     f.recordsDir,
		EscalationsDir: f.escalationsDir,
	}
}

func TestRunHardBreachEscalates(t *testing.T) {
	f := setup(t, strictMandate, breachScenario)

	record, recordPath, err := Run(f.paths())
	if err != nil {
		t.Fatalf("run loop: %v", err)
	}

	if record.Outcome.Type != types.OutcomeEscalate {
		t.Fatalf("expected escalate, got %s", record.Outcome.Type)
	}
	if !record.Constraints.HardConstraintsBreached {
		t.Fatalf("expected hard breach recorded")
	}
	if _, err := os.Stat(recordPath); err != nil {
		t.Fatalf("record file missing: %v", err)
	}

	stubs, err := filepath.Glob(filepath.Join(f.escalationsDir, "*.yaml"))
	if err != nil || len(stubs) != 1 {
		t.Fatalf("expected one escalation stub, got %v (%v)", stubs, err)
	}
	raw, err := os.ReadFile(stubs[0])
	if err != nil {
		t.Fatalf("read stub: %v", err)
	}
	var stub types.EscalationStub
	if err := yaml.Unmarshal(raw, &stub); err != nil {
		t.Fatalf("unmarshal stub: %v", err)
	}
	if stub.RecordID != record.RecordID {
		t.Fatalf("escalation stub record id %s does not match %s", stub.RecordID, record.RecordID)
	}
}

func TestRunCalmScenarioAffirms(t *testing.T) {
	f := setup(t, strictMandate, calmScenario)

	record, _, err := Run(f.paths())
	if err != nil {
		t.Fatalf("run loop: %v", err)
	}

	if record.Outcome.Type != types.OutcomeAffirmAlignment {
		t.Fatalf("expected affirm_alignment, got %s", record.Outcome.Type)
	}
	if record.Behavior.DecisionLatencyMS < 0 {
		t.Fatalf("expected non-negative measured latency")
	}

	if stubs, _ := filepath.Glob(filepath.Join(f.escalationsDir, "*.yaml")); len(stubs) != 0 {
		t.Fatalf("no escalation stub expected, got %v", stubs)
	}
}

func TestRunAppendOnlyAcrossInvocations(t *testing.T) {
	f := setup(t, strictMandate, calmScenario)

	_, first, err := Run(f.paths())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	_, second, err := Run(f.paths())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if first == second {
		t.Fatalf("consecutive runs must not collide on filenames")
	}
	for _, path := range []string{first, second} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("record %s missing after both runs: %v", path, err)
		}
	}
}

func TestRunMissingScenarioStillJudges(t *testing.T) {
	f := setup(t, strictMandate, calmScenario)
	paths := f.paths()
	paths.Scenario = filepath.Join(filepath.Dir(f.scenario), "absent_snapshot.yaml")

	record, _, err := Run(paths)
	if err != nil {
		t.Fatalf("run with missing scenario: %v", err)
	}
	if record.Outcome.Type != types.OutcomeAffirmAlignment {
		t.Fatalf("fully defaulted scenario should affirm, got %s", record.Outcome.Type)
	}
	if !strings.Contains(record.Invocation.TriggerDescription, "absent_snapshot") {
		t.Fatalf("scenario id should fall back to the file stem: %s", record.Invocation.TriggerDescription)
	}
}

func TestRunMalformedMandateWritesNothing(t *testing.T) {
	f := setup(t, "- not\n- a\n- mapping\n", calmScenario)

	if _, _, err := Run(f.paths()); err == nil {
		t.Fatalf("expected load error for malformed mandate")
	}
	if entries, _ := os.ReadDir(f.recordsDir); len(entries) != 0 {
		t.Fatalf("no record may be written on failure")
	}
}

func TestRunThresholdsShapeEvidence(t *testing.T) {
	f := setup(t, strictMandate, calmScenario)
	thresholds := filepath.Join(filepath.Dir(f.mandate), "thresholds.yaml")
	content := "persistence:\n  minimum_confirmations: 4\n  review_cycles: 3\n"
	if err := os.WriteFile(thresholds, []byte(content), 0o600); err != nil {
		t.Fatalf("write thresholds: %v", err)
	}

	paths := f.paths()
	paths.Thresholds = thresholds

	record, _, err := Run(paths)
	if err != nil {
		t.Fatalf("run loop: %v", err)
	}
	if record.Invocation.PersistenceEvidence != "4 confirmations over 3 cycles" {
		t.Fatalf("unexpected persistence evidence: %s", record.Invocation.PersistenceEvidence)
	}
}
