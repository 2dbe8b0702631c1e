package transform

import "fmt"

// SchemaError reports a structural problem with the table, such as two
// distinct source columns normalizing to the same name.
type SchemaError struct {
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error on column %q: %s", e.Column, e.Reason)
}

// InsufficientDataError reports a column whose median is undefined because
// no value in it could be read as a number.
type InsufficientDataError struct {
	Column string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("column %q has no numeric values; median is undefined", e.Column)
}

// TransformError reports a derived-feature computation that met an input it
// cannot resolve under the documented policy.
type TransformError struct {
	Column string
	Row    int
	Reason string
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("row %d, column %q: %s", e.Row, e.Column, e.Reason)
}
