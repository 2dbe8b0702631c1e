// Package postgres implements the destination table on Postgres using pgx
// v5. Replace stages the rows with COPY into a freshly created staging table
// and swaps it for the destination inside one transaction, so a concurrent
// reader sees either the old table or the new one, never a mixture.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/priyam0k/claim-data-pipeline/internal/storage"
)

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, cfg)
	})
}

// Repository is a Postgres-backed storage.Repository.
type Repository struct {
	pool  *pgxpool.Pool
	table string
}

// NewRepository opens a pgx pool for cfg.DSN and pings it to fail fast on a
// bad DSN or unreachable server.
func NewRepository(ctx context.Context, cfg storage.Config) (*Repository, error) {
	if strings.TrimSpace(cfg.Table) == "" {
		return nil, fmt.Errorf("postgres: table must not be empty")
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &Repository{pool: pool, table: cfg.Table}, nil
}

// Close releases the connection pool.
func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

func sqlType(k storage.Kind) string {
	switch k {
	case storage.KindReal:
		return "double precision"
	case storage.KindInteger:
		return "integer"
	default:
		return "text"
	}
}

// Replace loads rows into a staging table via COPY, then drops the old
// destination and renames the staging table over it. Both DDL statements run
// in the same transaction as the COPY; a failure anywhere rolls back and
// leaves the previous destination contents untouched.
func (r *Repository) Replace(ctx context.Context, columns []storage.Column, rows [][]any) (int64, error) {
	staging := r.table + "_staging"

	defs := make([]string, len(columns))
	names := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = pgx.Identifier{c.Name}.Sanitize() + " " + sqlType(c.Kind)
		names[i] = c.Name
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("postgres: acquire: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS "+pgx.Identifier{staging}.Sanitize()); err != nil {
		return 0, fmt.Errorf("postgres: drop staging: %w", err)
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", pgx.Identifier{staging}.Sanitize(), strings.Join(defs, ", "))
	if _, err := tx.Exec(ctx, create); err != nil {
		return 0, fmt.Errorf("postgres: create staging: %w", err)
	}

	inserted, err := tx.CopyFrom(ctx, pgx.Identifier{staging}, names, pgx.CopyFromRows(rows))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Detail != "" {
			return 0, fmt.Errorf("postgres: copy into staging: %s (%s)", pgErr.Detail, pgErr.SQLState())
		}
		return 0, fmt.Errorf("postgres: copy into staging: %w", err)
	}

	if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS "+pgx.Identifier{r.table}.Sanitize()); err != nil {
		return 0, fmt.Errorf("postgres: drop destination: %w", err)
	}
	rename := fmt.Sprintf("ALTER TABLE %s RENAME TO %s",
		pgx.Identifier{staging}.Sanitize(), pgx.Identifier{r.table}.Sanitize())
	if _, err := tx.Exec(ctx, rename); err != nil {
		return 0, fmt.Errorf("postgres: swap staging: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("postgres: commit: %w", err)
	}
	return inserted, nil
}
