// Package mandate loads governing policy documents into a read-only typed view.
package mandate

import (
	"fmt"

	"github.com/davidahmann/steward/internal/document"
)

const defaultRetentionYears = 10

// Mandate is an immutable view over a mandate document. Absent optional
// constraints stay nil and must be treated as not applicable, never as a
// zero limit.
type Mandate struct {
	id            string
	version       string
	effectiveDate string

	minConfidenceLevel       float64
	maxGrossExposure         *float64
	minLiquidityBufferMonths *int
	minFundingRatio          *float64
	retentionYears           int

	sourcePath string
}

func (m Mandate) ID() string                  { return m.id }
func (m Mandate) Version() string             { return m.version }
func (m Mandate) EffectiveDate() string       { return m.effectiveDate }
func (m Mandate) SourcePath() string          { return m.sourcePath }
func (m Mandate) RetentionYears() int         { return m.retentionYears }
func (m Mandate) MinConfidenceLevel() float64 { return m.minConfidenceLevel }

func (m Mandate) MaxGrossExposure() *float64     { return m.maxGrossExposure }
func (m Mandate) MinLiquidityBufferMonths() *int { return m.minLiquidityBufferMonths }
func (m Mandate) MinFundingRatio() *float64      { return m.minFundingRatio }

// Load reads and coerces a mandate document. A malformed or non-mapping
// document is a fatal load error.
func Load(path string) (Mandate, error) {
	doc, err := document.Load(path)
	if err != nil {
		return Mandate{}, fmt.Errorf("load mandate: %w", err)
	}
	return FromDocument(doc, path)
}

// FromDocument builds the typed view from an already parsed mandate mapping.
// Coercion happens once here; accessors never fail afterwards.
func FromDocument(doc map[string]any, sourcePath string) (Mandate, error) {
	m := Mandate{
		id:             document.String(document.Nested(doc, "meta", "mandate_id")),
		version:        document.String(document.Nested(doc, "meta", "version")),
		effectiveDate:  document.String(document.Nested(doc, "meta", "effective_date")),
		retentionYears: defaultRetentionYears,
		sourcePath:     sourcePath,
	}

	if v := document.Nested(doc, "confidence", "minimum_confidence_level"); v != nil {
		level, err := document.Float(v)
		if err != nil {
			return Mandate{}, fmt.Errorf("mandate %s: minimum_confidence_level: %w", sourcePath, err)
		}
		m.minConfidenceLevel = level
	}

	if v := document.Nested(doc, "leverage", "max_gross_exposure"); v != nil {
		limit, err := document.Float(v)
		if err != nil {
			return Mandate{}, fmt.Errorf("mandate %s: max_gross_exposure: %w", sourcePath, err)
		}
		m.maxGrossExposure = &limit
	}

	if v := document.Nested(doc, "liquidity", "minimum_buffer_months"); v != nil {
		months, err := document.Int(v)
		if err != nil {
			return Mandate{}, fmt.Errorf("mandate %s: minimum_buffer_months: %w", sourcePath, err)
		}
		m.minLiquidityBufferMonths = &months
	}

	if v := document.Nested(doc, "risk_constraints", "funding_ratio", "minimum"); v != nil {
		ratio, err := document.Float(v)
		if err != nil {
			return Mandate{}, fmt.Errorf("mandate %s: funding_ratio.minimum: %w", sourcePath, err)
		}
		m.minFundingRatio = &ratio
	}

	if v := document.Nested(doc, "audit", "rationale_retention_years"); v != nil {
		years, err := document.Int(v)
		if err != nil {
			return Mandate{}, fmt.Errorf("mandate %s: rationale_retention_years: %w", sourcePath, err)
		}
		m.retentionYears = years
	}

	return m, nil
}
