// Package file reads the claims extract from local disk, the delivery path
// for batch drops landed by the upstream export job.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Local is a datasource.Source over a single file path.
type Local struct{ path string }

// NewLocal returns a Local bound to the given extract path.
func NewLocal(path string) *Local { return &Local{path: path} }

// Open opens the claims extract for reading. A context already canceled at
// call time returns ctx.Err() before the filesystem is touched. Open errors
// carry the path and keep the cause unwrappable, so callers can still test
// errors.Is(err, os.ErrNotExist) when the drop has not landed yet.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}
