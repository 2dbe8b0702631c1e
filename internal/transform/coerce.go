package transform

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/priyam0k/claim-data-pipeline/pkg/records"
)

// cell is the explicit parse result for a notionally numeric column: either
// a value or missing. Making the "became missing" transition a concrete
// value keeps coercion a testable step instead of a side effect of a cast.
type cell struct {
	val float64
	ok  bool
}

// parseCell reads one raw cell. nil and unparsable strings are missing;
// already-coerced numeric values pass through, which is what makes the
// coerce and impute steps idempotent. ParseFloat accepts "NaN" and "Inf",
// which some exporters emit as missing-value placeholders, so non-finite
// values count as missing too and can never reach a median or the
// destination table.
func parseCell(v any) cell {
	switch x := v.(type) {
	case nil:
		return cell{}
	case float64:
		return finite(x)
	case int:
		return cell{val: float64(x), ok: true}
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return cell{}
		}
		return finite(f)
	default:
		return cell{}
	}
}

func finite(f float64) cell {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return cell{}
	}
	return cell{val: f, ok: true}
}

// median returns the median of vals. vals must be non-empty; the mean of the
// two middle values is used for even lengths.
func median(vals []float64) float64 {
	s := make([]float64, len(vals))
	copy(s, vals)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 0 {
		return (s[mid-1] + s[mid]) / 2
	}
	return s[mid]
}

// fillColumnMedian parses every cell of col, computes the median over the
// parseable values, and writes the column back fully numeric with the median
// in every missing position. A column with no parseable value at all is an
// InsufficientDataError.
func fillColumnMedian(t *records.Table, col string) error {
	if !t.HasColumn(col) {
		return &SchemaError{Column: col, Reason: "required column is absent"}
	}

	cells := make([]cell, len(t.Rows))
	var present []float64
	for i, rec := range t.Rows {
		cells[i] = parseCell(rec[col])
		if cells[i].ok {
			present = append(present, cells[i].val)
		}
	}
	if len(present) == 0 {
		return &InsufficientDataError{Column: col}
	}

	m := median(present)
	for i, rec := range t.Rows {
		if cells[i].ok {
			rec[col] = cells[i].val
		} else {
			rec[col] = m
		}
	}
	return nil
}

// CoerceNumeric converts every value of Column to a number. Values that fail
// conversion become missing rather than failing the row, then every missing
// position is filled with the column median.
type CoerceNumeric struct {
	Column string
}

func (c CoerceNumeric) Name() string { return "coerce_" + c.Column }

func (c CoerceNumeric) Apply(t *records.Table) error {
	return fillColumnMedian(t, c.Column)
}

// ImputeMedian fills missing values of Column with the column median. The
// column is expected to be numeric-or-empty in the source; any stray
// non-numeric value is treated the same as missing.
type ImputeMedian struct {
	Column string
}

func (s ImputeMedian) Name() string { return "impute_" + s.Column }

func (s ImputeMedian) Apply(t *records.Table) error {
	return fillColumnMedian(t, s.Column)
}
