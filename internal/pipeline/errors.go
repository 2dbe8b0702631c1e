package pipeline

import (
	"errors"

	"github.com/priyam0k/claim-data-pipeline/internal/transform"
)

// SourceError wraps any failure to locate, read, or parse the raw dataset.
type SourceError struct {
	Err error
}

func (e *SourceError) Error() string { return "source unavailable: " + e.Err.Error() }
func (e *SourceError) Unwrap() error { return e.Err }

// SinkError wraps any failure to reach or write the destination table.
type SinkError struct {
	Err error
}

func (e *SinkError) Error() string { return "sink unavailable: " + e.Err.Error() }
func (e *SinkError) Unwrap() error { return e.Err }

// Process exit codes. Each fatal error kind gets its own status so the
// scheduler invoking the run can distinguish them without parsing logs.
const (
	ExitOK               = 0
	ExitUsage            = 1
	ExitSource           = 2
	ExitSchema           = 3
	ExitInsufficientData = 4
	ExitTransform        = 5
	ExitSink             = 6
)

// ExitCode maps a run error to its process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var (
		srcErr    *SourceError
		schemaErr *transform.SchemaError
		dataErr   *transform.InsufficientDataError
		tfErr     *transform.TransformError
		sinkErr   *SinkError
	)
	switch {
	case errors.As(err, &srcErr):
		return ExitSource
	case errors.As(err, &schemaErr):
		return ExitSchema
	case errors.As(err, &dataErr):
		return ExitInsufficientData
	case errors.As(err, &tfErr):
		return ExitTransform
	case errors.As(err, &sinkErr):
		return ExitSink
	default:
		return ExitUsage
	}
}
