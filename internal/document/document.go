// Package document reads loosely structured YAML inputs and coerces their
// scalar fields. Loaders build typed read-only views on top of it.
package document

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

var ErrNotMapping = errors.New("document is not a mapping")

// Load reads a YAML document into a generic mapping. A missing file is the
// caller's concern; an empty document yields an empty mapping.
func Load(path string) (map[string]any, error) {
	// #nosec G304 -- path comes from operator-provided document path.
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return map[string]any{}, nil
	}
	mapping, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotMapping, path)
	}
	return mapping, nil
}

// Nested walks nested mappings by key, returning nil when any step is absent.
func Nested(doc map[string]any, keys ...string) any {
	var current any = doc
	for _, key := range keys {
		mapping, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		value, ok := mapping[key]
		if !ok {
			return nil
		}
		current = value
	}
	return current
}

// Float coerces a scalar to float64. Numeric strings are accepted; anything
// else is a malformed-input error.
func Float(v any) (float64, error) {
	switch value := v.(type) {
	case float64:
		return value, nil
	case float32:
		return float64(value), nil
	case int:
		return float64(value), nil
	case int64:
		return float64(value), nil
	case string:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("not coercible to float: %q", value)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("not coercible to float: %v (%T)", v, v)
	}
}

// Int coerces a scalar to int, truncating fractional values.
func Int(v any) (int, error) {
	switch value := v.(type) {
	case int:
		return value, nil
	case int64:
		return int(value), nil
	case float64:
		return int(value), nil
	case string:
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("not coercible to int: %q", value)
		}
		return int(parsed), nil
	default:
		return 0, fmt.Errorf("not coercible to int: %v (%T)", v, v)
	}
}

// String renders a scalar as its string form.
func String(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", value)
	}
}
