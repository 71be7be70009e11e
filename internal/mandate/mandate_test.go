package mandate

import (
	"os"
	"path/filepath"
	"testing"
)

const fullMandate = `meta:
  mandate_id: db_pension_v1
  version: "1.0"
  effective_date: "2024-01-01"
confidence:
  minimum_confidence_level: 0.6
leverage:
  max_gross_exposure: 1.5
liquidity:
  minimum_buffer_months: 6
risk_constraints:
  funding_ratio:
    minimum: 0.95
audit:
  rationale_retention_years: 7
`

func writeMandate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mandate.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write mandate: %v", err)
	}
	return path
}

func TestLoadFullMandate(t *testing.T) {
	m, err := Load(writeMandate(t, fullMandate))
	if err != nil {
		t.Fatalf("load mandate: %v", err)
	}

	if m.ID() != "db_pension_v1" {
		t.Fatalf("expected mandate id db_pension_v1, got %s", m.ID())
	}
	if m.Version() != "1.0" {
		t.Fatalf("expected version 1.0, got %s", m.Version())
	}
	if m.MinConfidenceLevel() != 0.6 {
		t.Fatalf("expected confidence floor 0.6, got %v", m.MinConfidenceLevel())
	}
	if max := m.MaxGrossExposure(); max == nil || *max != 1.5 {
		t.Fatalf("expected max gross exposure 1.5, got %v", max)
	}
	if min := m.MinLiquidityBufferMonths(); min == nil || *min != 6 {
		t.Fatalf("expected min buffer 6, got %v", min)
	}
	if min := m.MinFundingRatio(); min == nil || *min != 0.95 {
		t.Fatalf("expected min funding ratio 0.95, got %v", min)
	}
	if m.RetentionYears() != 7 {
		t.Fatalf("expected retention 7, got %d", m.RetentionYears())
	}
}

func TestLoadMinimalMandate(t *testing.T) {
	m, err := Load(writeMandate(t, "meta:\n  mandate_id: minimal\n"))
	if err != nil {
		t.Fatalf("load mandate: %v", err)
	}

	if m.MaxGrossExposure() != nil {
		t.Fatalf("expected absent leverage constraint to stay nil")
	}
	if m.MinLiquidityBufferMonths() != nil {
		t.Fatalf("expected absent liquidity constraint to stay nil")
	}
	if m.MinFundingRatio() != nil {
		t.Fatalf("expected absent funding constraint to stay nil")
	}
	if m.MinConfidenceLevel() != 0 {
		t.Fatalf("expected confidence floor default 0, got %v", m.MinConfidenceLevel())
	}
	if m.RetentionYears() != 10 {
		t.Fatalf("expected retention default 10, got %d", m.RetentionYears())
	}
}

func TestLoadNonMappingMandate(t *testing.T) {
	if _, err := Load(writeMandate(t, "- not\n- a\n- mandate\n")); err == nil {
		t.Fatalf("expected error for non-mapping mandate")
	}
}

func TestLoadMissingMandate(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing mandate file")
	}
}

func TestLoadMandateBadCoercion(t *testing.T) {
	content := "leverage:\n  max_gross_exposure: not-a-number\n"
	if _, err := Load(writeMandate(t, content)); err == nil {
		t.Fatalf("expected coercion error for non-numeric constraint")
	}
}
