// Package sqlite implements the destination table on SQLite via
// database/sql. SQLite has no bulk-load API like Postgres COPY; batched
// INSERTs inside the swap transaction keep performance acceptable for the
// dataset sizes this pipeline holds in memory anyway.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // cgo-free driver, registers as "sqlite"

	"github.com/priyam0k/claim-data-pipeline/internal/storage"
)

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, cfg)
	})
}

// Repository is a SQLite-backed storage.Repository.
type Repository struct {
	db    *sql.DB
	table string
}

// NewRepository opens a SQLite handle for cfg.DSN, e.g. "claims.db" or
// "file:claims.db?cache=shared". A short ping fails fast on invalid DSNs.
func NewRepository(ctx context.Context, cfg storage.Config) (*Repository, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("sqlite: DSN must not be empty")
	}
	if strings.TrimSpace(cfg.Table) == "" {
		return nil, fmt.Errorf("sqlite: table must not be empty")
	}

	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	return &Repository{db: db, table: cfg.Table}, nil
}

// Close closes the database handle.
func (r *Repository) Close() error { return r.db.Close() }

func sqlType(k storage.Kind) string {
	switch k {
	case storage.KindReal:
		return "REAL"
	case storage.KindInteger:
		return "INTEGER"
	default:
		return "TEXT"
	}
}

func quote(name string) string { return `"` + strings.ReplaceAll(name, `"`, `""`) + `"` }

// Replace builds a staging table, fills it with a prepared INSERT per row,
// then drops the destination and renames the staging table over it, all in
// one transaction. A rollback leaves the previous destination intact.
func (r *Repository) Replace(ctx context.Context, columns []storage.Column, rows [][]any) (int64, error) {
	staging := r.table + "_staging"

	defs := make([]string, len(columns))
	names := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = quote(c.Name) + " " + sqlType(c.Kind)
		names[i] = quote(c.Name)
		placeholders[i] = "?"
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quote(staging)); err != nil {
		return 0, fmt.Errorf("sqlite: drop staging: %w", err)
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", quote(staging), strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return 0, fmt.Errorf("sqlite: create staging: %w", err)
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(staging), strings.Join(names, ", "), strings.Join(placeholders, ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, row := range rows {
		if len(row) != len(columns) {
			return 0, fmt.Errorf("sqlite: row length %d != columns length %d", len(row), len(columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return 0, fmt.Errorf("sqlite: insert: %w", err)
		}
		inserted++
	}

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quote(r.table)); err != nil {
		return 0, fmt.Errorf("sqlite: drop destination: %w", err)
	}
	rename := fmt.Sprintf("ALTER TABLE %s RENAME TO %s", quote(staging), quote(r.table))
	if _, err := tx.ExecContext(ctx, rename); err != nil {
		return 0, fmt.Errorf("sqlite: swap staging: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: commit: %w", err)
	}
	return inserted, nil
}
