// Package mysql implements the destination table on MySQL/MariaDB via
// database/sql. MySQL DDL commits implicitly, so the transactional
// drop-and-rename used by the postgres and sqlite backends is not available;
// instead the staging table is filled inside a transaction and the final
// swap relies on RENAME TABLE, which MySQL executes atomically.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // registers as "mysql"

	"github.com/priyam0k/claim-data-pipeline/internal/storage"
)

func init() {
	storage.Register("mysql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, cfg)
	})
}

// Repository is a MySQL-backed storage.Repository.
type Repository struct {
	db    *sql.DB
	table string
}

// NewRepository opens a MySQL handle for cfg.DSN
// (e.g. "user:pass@tcp(host:3306)/claims") and pings it.
func NewRepository(ctx context.Context, cfg storage.Config) (*Repository, error) {
	if strings.TrimSpace(cfg.Table) == "" {
		return nil, fmt.Errorf("mysql: table must not be empty")
	}
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("mysql: open: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql: ping: %w", err)
	}
	return &Repository{db: db, table: cfg.Table}, nil
}

// Close closes the database handle.
func (r *Repository) Close() error { return r.db.Close() }

func sqlType(k storage.Kind) string {
	switch k {
	case storage.KindReal:
		return "DOUBLE"
	case storage.KindInteger:
		return "INT"
	default:
		return "TEXT"
	}
}

func quote(name string) string { return "`" + strings.ReplaceAll(name, "`", "``") + "`" }

// Replace stages rows into <table>_staging and swaps it over the destination
// with RENAME TABLE. If the load fails, the staging table is dropped and the
// destination is never touched; the swap itself is a single atomic rename.
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

	if _, err := r.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+quote(staging)); err != nil {
		return 0, fmt.Errorf("mysql: drop staging: %w", err)
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", quote(staging), strings.Join(defs, ", "))
	if _, err := r.db.ExecContext(ctx, create); err != nil {
		return 0, fmt.Errorf("mysql: create staging: %w", err)
	}
	cleanup := func() { _, _ = r.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+quote(staging)) }

	inserted, err := r.loadStaging(ctx, staging, names, placeholders, columns, rows)
	if err != nil {
		cleanup()
		return 0, err
	}

	// Atomic swap. The destination may not exist on the first run.
	var exists int
	err = r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?",
		r.table).Scan(&exists)
	if err != nil {
		cleanup()
		return 0, fmt.Errorf("mysql: check destination: %w", err)
	}
	if exists > 0 {
		old := r.table + "_old"
		_, _ = r.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+quote(old))
		swap := fmt.Sprintf("RENAME TABLE %s TO %s, %s TO %s",
			quote(r.table), quote(old), quote(staging), quote(r.table))
		if _, err := r.db.ExecContext(ctx, swap); err != nil {
			cleanup()
			return 0, fmt.Errorf("mysql: swap staging: %w", err)
		}
		_, _ = r.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+quote(old))
	} else {
		swap := fmt.Sprintf("RENAME TABLE %s TO %s", quote(staging), quote(r.table))
		if _, err := r.db.ExecContext(ctx, swap); err != nil {
			cleanup()
			return 0, fmt.Errorf("mysql: swap staging: %w", err)
		}
	}
	return inserted, nil
}

func (r *Repository) loadStaging(ctx context.Context, staging string, names, placeholders []string, columns []storage.Column, rows [][]any) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("mysql: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(staging), strings.Join(names, ", "), strings.Join(placeholders, ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return 0, fmt.Errorf("mysql: prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, row := range rows {
		if len(row) != len(columns) {
			return 0, fmt.Errorf("mysql: row length %d != columns length %d", len(row), len(columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return 0, fmt.Errorf("mysql: insert: %w", err)
		}
		inserted++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("mysql: commit staging load: %w", err)
	}
	return inserted, nil
}
