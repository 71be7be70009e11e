// Package scenario parses portfolio/environment snapshots used as judgment input.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/davidahmann/steward/internal/document"
)

type EnvironmentState struct {
	RateRegime      string
	InflationRegime string
	// Uncertainty is carried through unclamped; the confidence evaluator
	// clamps it to [0,1], not the loader.
	Uncertainty float64
}

type PortfolioState struct {
	GrossExposure         float64
	LiquidityBufferMonths int
	FundingRatio          *float64
}

type Input struct {
	ScenarioID  string
	AsOf        string
	Environment EnvironmentState
	Portfolio   PortfolioState
}

var (
	DefaultEnvironment = EnvironmentState{
		RateRegime:      "stable",
		InflationRegime: "stable",
		Uncertainty:     0.1,
	}
	DefaultPortfolio = PortfolioState{
		GrossExposure:         1.0,
		LiquidityBufferMonths: 12,
		FundingRatio:          nil,
	}
)

const defaultAsOf = "1970-01-01T00:00:00Z"

// Load reads a scenario document, defaulting absent fields. A missing file
// yields a fully defaulted scenario; a present field that cannot be coerced
// to its declared type is a fatal error.
func Load(path string) (Input, error) {
	doc := map[string]any{}
	if _, err := os.Stat(path); err == nil {
		loaded, err := document.Load(path)
		if err != nil {
			return Input{}, fmt.Errorf("load scenario: %w", err)
		}
		doc = loaded
	} else if !errors.Is(err, os.ErrNotExist) {
		return Input{}, fmt.Errorf("load scenario: %w", err)
	}
	return FromDocument(doc, stem(path))
}

// FromDocument builds a scenario from an already parsed mapping, using
// fallbackID when the document names no scenario.
func FromDocument(doc map[string]any, fallbackID string) (Input, error) {
	input := Input{
		ScenarioID:  document.String(doc["scenario_id"]),
		AsOf:        document.String(doc["as_of"]),
		Environment: DefaultEnvironment,
		Portfolio:   DefaultPortfolio,
	}
	if input.ScenarioID == "" {
		input.ScenarioID = fallbackID
	}
	if input.AsOf == "" {
		input.AsOf = defaultAsOf
	}

	if v := document.Nested(doc, "environment", "rate_regime"); v != nil {
		input.Environment.RateRegime = document.String(v)
	}
	if v := document.Nested(doc, "environment", "inflation_regime"); v != nil {
		input.Environment.InflationRegime = document.String(v)
	}
	if v := document.Nested(doc, "environment", "uncertainty"); v != nil {
		uncertainty, err := document.Float(v)
		if err != nil {
			return Input{}, fmt.Errorf("scenario %s: uncertainty: %w", fallbackID, err)
		}
		input.Environment.Uncertainty = uncertainty
	}

	if v := document.Nested(doc, "portfolio", "gross_exposure"); v != nil {
		exposure, err := document.Float(v)
		if err != nil {
			return Input{}, fmt.Errorf("scenario %s: gross_exposure: %w", fallbackID, err)
		}
		input.Portfolio.GrossExposure = exposure
	}
	if v := document.Nested(doc, "portfolio", "liquidity_buffer_months"); v != nil {
		months, err := document.Int(v)
		if err != nil {
			return Input{}, fmt.Errorf("scenario %s: liquidity_buffer_months: %w", fallbackID, err)
		}
		input.Portfolio.LiquidityBufferMonths = months
	}
	if v := document.Nested(doc, "portfolio", "funding_ratio"); v != nil {
		ratio, err := document.Float(v)
		if err != nil {
			return Input{}, fmt.Errorf("scenario %s: funding_ratio: %w", fallbackID, err)
		}
		input.Portfolio.FundingRatio = &ratio
	}

	return input, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
