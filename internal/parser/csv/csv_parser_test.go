package csv

import (
	"reflect"
	"strings"
	"testing"

	"github.com/priyam0k/claim-data-pipeline/pkg/records"
)

func parse(t *testing.T, input string, opt Options) *records.Table {
	t.Helper()
	tbl, err := NewParser(opt).Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return tbl
}

func TestParse_HeaderAndRows(t *testing.T) {
	t.Parallel()

	tbl := parse(t, "ID,AGE\n1,25\n2,40\n", Options{})
	if !reflect.DeepEqual(tbl.Columns, []string{"ID", "AGE"}) {
		t.Errorf("Columns = %v", tbl.Columns)
	}
	want := []records.Record{
		{"ID": "1", "AGE": "25"},
		{"ID": "2", "AGE": "40"},
	}
	if !reflect.DeepEqual(tbl.Rows, want) {
		t.Errorf("Rows = %v, want %v", tbl.Rows, want)
	}
}

func TestParse_EmptyCellBecomesNil(t *testing.T) {
	t.Parallel()

	tbl := parse(t, "id,credit_score\n1,\n", Options{})
	if v := tbl.Rows[0]["credit_score"]; v != nil {
		t.Errorf("empty cell = %#v, want nil", v)
	}
}

func TestParse_StripsBOM(t *testing.T) {
	t.Parallel()

	tbl := parse(t, "\uFEFFid,age\n1,25\n", Options{})
	if tbl.Columns[0] != "id" {
		t.Errorf("first column = %q, want %q", tbl.Columns[0], "id")
	}
}

func TestParse_TrimSpace(t *testing.T) {
	t.Parallel()

	tbl := parse(t, "id,age\n 1 , 25 \n", Options{TrimSpace: true})
	want := records.Record{"id": "1", "age": "25"}
	if !reflect.DeepEqual(tbl.Rows[0], want) {
		t.Errorf("row = %v, want %v", tbl.Rows[0], want)
	}
}

func TestParse_CustomDelimiter(t *testing.T) {
	t.Parallel()

	tbl := parse(t, "id;age\n1;25\n", Options{Comma: ';'})
	if got := tbl.Rows[0]["age"]; got != "25" {
		t.Errorf("age = %v, want 25", got)
	}
}

func TestParse_WrongFieldCountFails(t *testing.T) {
	t.Parallel()

	_, err := NewParser(Options{}).Parse(strings.NewReader("id,age\n1,25,extra\n"))
	if err == nil {
		t.Fatal("expected error for row with wrong field count")
	}
}

func TestParse_MissingHeaderFails(t *testing.T) {
	t.Parallel()

	_, err := NewParser(Options{}).Parse(strings.NewReader(""))
	if err == nil {
		t.Fatal("expected error for empty input")
	}
}
