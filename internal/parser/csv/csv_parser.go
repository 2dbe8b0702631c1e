// Package csv parses the raw claims CSV into an in-memory table. Parsing is
// strict: the claims pipeline guarantees that every source row reaches the
// destination, so a malformed row or a row with the wrong field count is a
// fatal error rather than a soft skip.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/priyam0k/claim-data-pipeline/pkg/records"
)

// Options configures the CSV parser. All fields are optional; sensible
// defaults are applied when a field is zero.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each field value.
	TrimSpace bool
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// Parse consumes CSV records from r and returns the parsed table. The first
// row is the header; its names are kept verbatim (normalization is a
// transform step, not a parse concern). Empty cells become nil so that
// "missing" is a single representation throughout the pipeline.
func (p *Parser) Parse(r io.Reader) (*records.Table, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	columns := make([]string, len(header))
	for i, col := range header {
		c := strings.TrimSpace(col)
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		columns[i] = c
	}

	var rows []records.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", line, err)
		}
		if len(row) != len(columns) {
			return nil, fmt.Errorf("csv row %d: expected %d fields, got %d", line, len(columns), len(row))
		}

		rec := make(records.Record, len(row))
		for i, val := range row {
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			rec[columns[i]] = emptyToNil(val)
		}
		rows = append(rows, rec)
	}

	return records.NewTable(columns, rows), nil
}

// emptyToNil converts an empty string to nil; all other values pass through.
func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
