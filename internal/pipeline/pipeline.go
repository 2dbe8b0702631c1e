// Package pipeline wires the claims ETL end-to-end: extract the raw CSV into
// memory, run the fixed transform chain, and replace the destination table.
// The run is single-threaded and all-or-nothing; every failure aborts with a
// typed error that maps to a distinct exit code.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/zeebo/xxh3"

	"github.com/priyam0k/claim-data-pipeline/internal/config"
	"github.com/priyam0k/claim-data-pipeline/internal/datasource"
	"github.com/priyam0k/claim-data-pipeline/internal/datasource/file"
	"github.com/priyam0k/claim-data-pipeline/internal/metrics"
	csvparser "github.com/priyam0k/claim-data-pipeline/internal/parser/csv"
	"github.com/priyam0k/claim-data-pipeline/internal/storage"
	"github.com/priyam0k/claim-data-pipeline/internal/transform"
	"github.com/priyam0k/claim-data-pipeline/pkg/records"
)

// Summary reports what a successful run did.
type Summary struct {
	RowsIn      int64
	RowsWritten int64
	Fingerprint uint64 // xxh3 of the raw source bytes
}

// Function variables introduce test seams; tests can swap the source opener
// without touching the filesystem.
var openSourceFn = openSource

func openSource(ctx context.Context, spec config.Source) (io.ReadCloser, error) {
	var src datasource.Source
	switch spec.Kind {
	case "file":
		src = file.NewLocal(spec.File.Path)
	default:
		return nil, fmt.Errorf("unsupported source kind %q", spec.Kind)
	}
	return src.Open(ctx)
}

// Run executes extract → transform → load against the provided repository.
// The whole dataset is held in memory; this bounds input size to available
// memory by design.
func Run(ctx context.Context, spec config.Pipeline, repo storage.Repository) (Summary, error) {
	var sum Summary

	start := time.Now()
	raw, err := extract(ctx, spec)
	metrics.RecordStep(spec.Job, "extract", err, time.Since(start))
	if err != nil {
		return sum, &SourceError{Err: err}
	}
	sum.RowsIn = int64(len(raw.table.Rows))
	sum.Fingerprint = raw.fingerprint
	metrics.RecordRows(spec.Job, "extracted", sum.RowsIn)
	log.Printf("extracted %s rows (%s, source fingerprint %016x)",
		humanize.Comma(sum.RowsIn), humanize.Bytes(raw.size), raw.fingerprint)

	start = time.Now()
	clean, err := transform.Apply(raw.table)
	metrics.RecordStep(spec.Job, "transform", err, time.Since(start))
	if err != nil {
		return sum, err
	}
	log.Printf("transformed %s rows, %d columns", humanize.Comma(int64(len(clean.Rows))), len(clean.Columns))

	start = time.Now()
	written, err := load(ctx, clean, repo)
	metrics.RecordStep(spec.Job, "load", err, time.Since(start))
	if err != nil {
		return sum, &SinkError{Err: err}
	}
	sum.RowsWritten = written
	metrics.RecordRows(spec.Job, "written", written)
	log.Printf("replaced table %s with %s rows", spec.Storage.DB.Table, humanize.Comma(written))

	return sum, nil
}

type rawSource struct {
	table       *records.Table
	fingerprint uint64
	size        uint64
}

// extract reads the whole source into memory, fingerprints the raw bytes for
// run identity, and parses them into a table.
func extract(ctx context.Context, spec config.Pipeline) (rawSource, error) {
	rc, err := openSourceFn(ctx, spec.Source)
	if err != nil {
		return rawSource{}, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return rawSource{}, fmt.Errorf("read source: %w", err)
	}

	p := csvparser.NewParser(csvparser.Options{
		Comma:     spec.Parser.Options.Rune("comma", ','),
		TrimSpace: spec.Parser.Options.Bool("trim_space", true),
	})
	table, err := p.Parse(bytes.NewReader(data))
	if err != nil {
		return rawSource{}, err
	}
	return rawSource{table: table, fingerprint: xxh3.Hash(data), size: uint64(len(data))}, nil
}

// load infers the destination schema from the transformed table and replaces
// the destination contents wholesale.
func load(ctx context.Context, t *records.Table, repo storage.Repository) (int64, error) {
	cols := storage.InferColumns(t)
	rows := storage.RowsFor(t, cols)
	return repo.Replace(ctx, cols, rows)
}
