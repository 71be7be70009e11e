// Package eval replays mandate/scenario pairs through the judgment procedure
// and asserts their expected outcomes.
package eval

import (
	"fmt"

	"github.com/davidahmann/steward/internal/document"
	"github.com/davidahmann/steward/internal/mandate"
	"github.com/davidahmann/steward/internal/procedure"
	"github.com/davidahmann/steward/internal/scenario"
	"github.com/davidahmann/steward/pkg/types"
)

type Case struct {
	MandatePath  string
	ScenarioPath string
	Expected     types.OutcomeType
}

// LoadCases reads an expected-outcomes document containing a `cases` list of
// {mandate, scenario, expected_outcome} entries.
func LoadCases(path string) ([]Case, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load expected outcomes: %w", err)
	}

	rawCases, _ := doc["cases"].([]any)
	cases := make([]Case, 0, len(rawCases))
	for i, raw := range rawCases {
		entry, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("expected outcomes %s: case %d is not a mapping", path, i)
		}
		cases = append(cases, Case{
			MandatePath:  document.String(entry["mandate"]),
			ScenarioPath: document.String(entry["scenario"]),
			Expected:     types.OutcomeType(document.String(entry["expected_outcome"])),
		})
	}
	return cases, nil
}

// EvaluateExpectedOutcomes runs the procedure dry (no records written) for
// every case and fails on the first mismatch, naming the offending pair.
func EvaluateExpectedOutcomes(casesPath string, thresholds procedure.Thresholds) error {
	cases, err := LoadCases(casesPath)
	if err != nil {
		return err
	}

	var proc procedure.Procedure
	for _, c := range cases {
		m, err := mandate.Load(c.MandatePath)
		if err != nil {
			return err
		}
		s, err := scenario.Load(c.ScenarioPath)
		if err != nil {
			return err
		}

		record := proc.Judge(m, s, thresholds, 0)
		if record.Outcome.Type != c.Expected {
			return fmt.Errorf(
				"expected outcome mismatch: mandate=%s, scenario=%s, expected=%s, got=%s",
				c.MandatePath, c.ScenarioPath, c.Expected, record.Outcome.Type,
			)
		}
	}
	return nil
}
