// Package storage contains storage-agnostic contracts for the destination
// table. Concrete backends (postgres, sqlite, mysql, mssql) register
// themselves with the factory at init time, so the rest of the application
// never imports a database driver directly.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Column describes one destination column. Kind is backend-neutral and maps
// to a concrete SQL type inside each backend.
type Column struct {
	Name string
	Kind Kind
}

// Kind is the backend-neutral column type.
type Kind string

const (
	KindText    Kind = "text"
	KindReal    Kind = "real"
	KindInteger Kind = "integer"
)

// Config selects and configures a storage backend.
type Config struct {
	// Kind selects the backend implementation: "postgres", "sqlite",
	// "mysql", or "mssql".
	Kind string

	// DSN is the backend connection string.
	DSN string

	// Table is the destination table name.
	Table string
}

// Repository is the write side of the destination store. Replace swaps the
// full contents of the destination table for the provided rows: after a
// successful call the table holds exactly rows; after a failed call the
// previous contents are still intact.
type Repository interface {
	Replace(ctx context.Context, columns []Column, rows [][]any) (int64, error)
	Close() error
}

// Factory constructs a Repository for one backend kind.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs a Factory for the given kind. It is called from backend
// packages' init() functions.
func Register(kind string, fn Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = fn
}

// New opens a Repository for cfg.Kind. Unknown kinds list the registered
// backends in the error, since a missing blank import is the usual cause.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	fn, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown storage kind %q (registered: %v)", cfg.Kind, registered())
	}
	return fn(ctx, cfg)
}

func registered() []string {
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
