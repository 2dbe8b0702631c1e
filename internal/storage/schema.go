package storage

import "github.com/priyam0k/claim-data-pipeline/pkg/records"

// InferColumns derives the destination schema from a transformed table.
// A column whose every present value is float64 becomes real, int becomes
// integer, anything else text. Column order follows the table header.
func InferColumns(t *records.Table) []Column {
	cols := make([]Column, len(t.Columns))
	for i, name := range t.Columns {
		cols[i] = Column{Name: name, Kind: inferKind(t, name)}
	}
	return cols
}

func inferKind(t *records.Table, name string) Kind {
	kind := Kind("")
	for _, rec := range t.Rows {
		v := rec[name]
		if v == nil {
			continue
		}
		var k Kind
		switch v.(type) {
		case float64:
			k = KindReal
		case int, int64:
			k = KindInteger
		default:
			return KindText
		}
		switch {
		case kind == "":
			kind = k
		case kind != k:
			// mixed int/float settles on real
			kind = KindReal
		}
	}
	if kind == "" {
		return KindText
	}
	return kind
}

// RowsFor flattens the table into positional rows aligned with columns,
// ready for a Repository.Replace call.
func RowsFor(t *records.Table, columns []Column) [][]any {
	rows := make([][]any, len(t.Rows))
	for i, rec := range t.Rows {
		row := make([]any, len(columns))
		for j, c := range columns {
			row[j] = rec[c.Name]
		}
		rows[i] = row
	}
	return rows
}
