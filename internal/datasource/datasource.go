// Package datasource abstracts where the raw claims dataset comes from.
package datasource

import (
	"context"
	"io"
)

// Source hands back a stream over one raw claims extract. The pipeline reads
// it exactly once per run and closes it; a Source carries no state between
// runs.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
