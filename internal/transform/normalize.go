package transform

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	texttransform "golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/priyam0k/claim-data-pipeline/pkg/records"
)

// NormalizeColumns rewrites every column name to lower-case with separators
// replaced by underscores. Diacritics are folded to their ASCII base letters
// first, so headers exported from spreadsheets in other locales normalize the
// same way everywhere. Two distinct source names mapping to the same
// normalized name is a SchemaError.
type NormalizeColumns struct{}

func (NormalizeColumns) Name() string { return "normalize_columns" }

// foldMarks decomposes to NFKD, strips combining marks, and recomposes.
var foldMarks = texttransform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName maps one raw header cell to its canonical column name.
func NormalizeName(name string) string {
	s := strings.TrimSpace(name)
	if folded, _, err := texttransform.String(foldMarks, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		switch {
		case r == ' ' || r == '-' || r == '.':
			return '_'
		default:
			return r
		}
	}, s)
	return s
}

func (n NormalizeColumns) Apply(t *records.Table) error {
	renamed := make(map[string]string, len(t.Columns))
	seen := make(map[string]string, len(t.Columns))
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		canon := NormalizeName(c)
		if prev, dup := seen[canon]; dup {
			return &SchemaError{
				Column: c,
				Reason: "normalizes to " + canon + ", which collides with column " + prev,
			}
		}
		seen[canon] = c
		renamed[c] = canon
		cols[i] = canon
	}
	t.Columns = cols

	for _, rec := range t.Rows {
		for old, canon := range renamed {
			if old == canon {
				continue
			}
			if v, ok := rec[old]; ok {
				rec[canon] = v
				delete(rec, old)
			}
		}
	}
	return nil
}
