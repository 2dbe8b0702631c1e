// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the claims pipeline.
//
// It exposes a narrow Backend interface (counters and timings) behind a
// global, pluggable backend that defaults to a no-op implementation, so
// metric calls are always safe even when no real backend is configured. The
// shape mirrors the storage abstraction: the pipeline depends only on this
// package while concrete metric systems live in subpackages.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveDuration records a duration-style value.
	ObserveDuration(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics if the backend needs it.
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)      {}
func (nopBackend) ObserveDuration(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                              { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error { return backend.Flush() }

// RecordStep measures latency plus success/failure for one pipeline step
// (extract, transform, load).
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"job": job, "step": step, "status": status}
	backend.IncCounter("claims_etl_step_total", 1, lbls)
	backend.ObserveDuration("claims_etl_step_duration_seconds", d.Seconds(), lbls)
}

// RecordRows counts row-level outcomes, e.g. kind "extracted" or "written".
func RecordRows(job, kind string, n int64) {
	backend.IncCounter("claims_etl_rows_total", float64(n), Labels{"job": job, "kind": kind})
}
