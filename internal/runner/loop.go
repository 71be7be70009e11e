// Package runner composes the loaders, the judgment procedure, the record
// store, and the escalation router into one synchronous invocation.
package runner

import (
	"time"

	"github.com/davidahmann/steward/internal/ledger"
	"github.com/davidahmann/steward/internal/mandate"
	"github.com/davidahmann/steward/internal/procedure"
	"github.com/davidahmann/steward/internal/scenario"
	"github.com/davidahmann/steward/pkg/types"
)

// Paths names the input documents and output directories for one loop run.
// ThresholdsPath may be empty, in which case built-in defaults apply.
type Paths struct {
	Mandate        string
	Scenario       string
	Thresholds     string
	RecordsDir     string
	EscalationsDir string
}

// Run executes one judgment loop: load inputs, judge, measure latency,
// persist, and conditionally escalate. Any failure aborts with no record
// written. Returns the finished record and its storage path.
func Run(paths Paths) (types.JudgmentRecord, string, error) {
	m, err := mandate.Load(paths.Mandate)
	if err != nil {
		return types.JudgmentRecord{}, "", err
	}

	s, err := scenario.Load(paths.Scenario)
	if err != nil {
		return types.JudgmentRecord{}, "", err
	}

	thresholds := procedure.DefaultThresholds()
	if paths.Thresholds != "" {
		thresholds, err = procedure.LoadThresholds(paths.Thresholds)
		if err != nil {
			return types.JudgmentRecord{}, "", err
		}
	}

	var proc procedure.Procedure
	start := time.Now()
	record := proc.Judge(m, s, thresholds, 0)
	record.Behavior.DecisionLatencyMS = int(time.Since(start).Milliseconds())

	recordPath, err := ledger.WriteJudgmentRecord(record, paths.RecordsDir)
	if err != nil {
		return types.JudgmentRecord{}, "", err
	}

	if record.Escalation != nil {
		if _, err := ledger.RouteEscalation(record, paths.EscalationsDir); err != nil {
			return types.JudgmentRecord{}, "", err
		}
	}

	return record, recordPath, nil
}
