package procedure

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/davidahmann/steward/internal/document"
)

// Thresholds drive the invocation narrative (persistence evidence), not the
// decision logic itself.
type Thresholds struct {
	MinimumConfirmations int
	ReviewCycles         int
}

func DefaultThresholds() Thresholds {
	return Thresholds{MinimumConfirmations: 2, ReviewCycles: 2}
}

// LoadThresholds reads a procedure thresholds document. Absent or non-mapping
// persistence sections fall back to defaults; a missing file is an error.
func LoadThresholds(path string) (Thresholds, error) {
	// #nosec G304 -- path comes from operator-provided thresholds path.
	raw, err := os.ReadFile(path)
	if err != nil {
		return Thresholds{}, err
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Thresholds{}, err
	}

	thresholds := DefaultThresholds()
	mapping, ok := doc.(map[string]any)
	if !ok {
		return thresholds, nil
	}

	if v := document.Nested(mapping, "persistence", "minimum_confirmations"); v != nil {
		if confirmations, err := document.Int(v); err == nil {
			thresholds.MinimumConfirmations = confirmations
		} else {
			return Thresholds{}, err
		}
	}
	if v := document.Nested(mapping, "persistence", "review_cycles"); v != nil {
		if cycles, err := document.Int(v); err == nil {
			thresholds.ReviewCycles = cycles
		} else {
			return Thresholds{}, err
		}
	}
	return thresholds, nil
}
