// Package records defines the in-memory tabular model shared by every stage
// of the claims pipeline. A Record is a single row keyed by column name; a
// Table couples the rows with an ordered header so that column order survives
// from the source CSV through to the destination table.
package records

// Record is one row. Values are either string (as parsed), float64 (after
// numeric coercion), int (derived indicators), or nil for a missing cell.
type Record map[string]any

// Clone returns a shallow-keyed copy of the record. Cell values are
// immutable scalars, so copying the map is a full copy in practice.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered sequence of records sharing one header.
type Table struct {
	// Columns is the header in display order. Every Record key is expected
	// to appear here; transforms that add derived columns must append to it.
	Columns []string

	// Rows holds the records in source order.
	Rows []Record
}

// NewTable constructs a Table from a header and pre-built rows.
func NewTable(columns []string, rows []Record) *Table {
	return &Table{Columns: columns, Rows: rows}
}

// Clone deep-copies the table. Transforms operate on a clone so the caller's
// input is never mutated.
func (t *Table) Clone() *Table {
	cols := make([]string, len(t.Columns))
	copy(cols, t.Columns)
	rows := make([]Record, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = r.Clone()
	}
	return &Table{Columns: cols, Rows: rows}
}

// HasColumn reports whether name is present in the header.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends name to the header unless it is already present. Cell
// values are set by the caller; AddColumn only maintains header order.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}
