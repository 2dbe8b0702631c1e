package prompush

import (
	"testing"

	"github.com/priyam0k/claim-data-pipeline/internal/metrics"
)

func TestNewBackend_RequiresURL(t *testing.T) {
	t.Parallel()

	if _, err := NewBackend("claims_daily", ""); err == nil {
		t.Fatal("expected error for empty gateway URL")
	}
}

func TestNewBackend_DefaultsJobName(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("", "http://localhost:9091")
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	if b.jobName != "claims_etl" {
		t.Errorf("jobName = %q, want claims_etl", b.jobName)
	}
}

func TestBackend_RecordsWithoutPanic(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("claims_daily", "http://localhost:9091")
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}

	lbls := metrics.Labels{"step": "load", "status": "success"}
	b.IncCounter("claims_etl_step_total", 1, lbls)
	b.IncCounter("claims_etl_rows_total", 100, metrics.Labels{"kind": "written"})
	b.IncCounter("claims_etl_unknown_total", 1, lbls) // ignored
	b.ObserveDuration("claims_etl_step_duration_seconds", 0.25, lbls)
	b.ObserveDuration("claims_etl_other_seconds", 0.25, lbls) // ignored
}
