package transform

import "github.com/priyam0k/claim-data-pipeline/pkg/records"

// Column names produced by the feature steps.
const (
	ColAge              = "age"
	ColPastAccidents    = "past_accidents"
	ColAgeGroup         = "age_group"
	ColHadPastAccidents = "had_past_accidents"
)

// ageBuckets partitions the age axis by exclusive upper bounds; the first
// bucket is open-ended below and topBucket catches everything at or above
// the last bound, so every age lands in exactly one bucket. Boundary rule:
// an age equal to a bucket's first year belongs to that bucket (25 →
// "16-25", 26 → "26-40", 66 → "66+").
var ageBuckets = []struct {
	upper float64
	label string
}{
	{upper: 26, label: "16-25"},
	{upper: 41, label: "26-40"},
	{upper: 66, label: "41-65"},
}

const topBucket = "66+"

func bucketFor(age float64) string {
	for _, b := range ageBuckets {
		if age < b.upper {
			return b.label
		}
	}
	return topBucket
}

// DeriveAgeGroup assigns every row an age_group label from the fixed
// partition above. It runs after CoerceNumeric{age}, so the age column is
// fully numeric; a non-numeric age at this point is a TransformError.
type DeriveAgeGroup struct{}

func (DeriveAgeGroup) Name() string { return "derive_age_group" }

func (DeriveAgeGroup) Apply(t *records.Table) error {
	if !t.HasColumn(ColAge) {
		return &SchemaError{Column: ColAge, Reason: "required column is absent"}
	}
	for i, rec := range t.Rows {
		c := parseCell(rec[ColAge])
		if !c.ok {
			return &TransformError{Column: ColAge, Row: i, Reason: "age is not numeric"}
		}
		rec[ColAgeGroup] = bucketFor(c.val)
	}
	t.AddColumn(ColAgeGroup)
	return nil
}

// DeriveHadPastAccidents sets had_past_accidents to 1 when past_accidents is
// greater than zero and 0 otherwise. The parsed count is written back over
// the raw cell, so past_accidents reaches the destination as a numeric
// column rather than the source's string form.
//
// Policy: the source dataset always carries past_accidents, so a missing or
// non-numeric value is treated as corrupt input and fails the run rather
// than being silently read as "no known accidents".
type DeriveHadPastAccidents struct{}

func (DeriveHadPastAccidents) Name() string { return "derive_had_past_accidents" }

func (DeriveHadPastAccidents) Apply(t *records.Table) error {
	if !t.HasColumn(ColPastAccidents) {
		return &SchemaError{Column: ColPastAccidents, Reason: "required column is absent"}
	}
	for i, rec := range t.Rows {
		c := parseCell(rec[ColPastAccidents])
		if !c.ok {
			return &TransformError{Column: ColPastAccidents, Row: i, Reason: "past_accidents is missing or not numeric"}
		}
		rec[ColPastAccidents] = c.val
		if c.val > 0 {
			rec[ColHadPastAccidents] = 1
		} else {
			rec[ColHadPastAccidents] = 0
		}
	}
	t.AddColumn(ColHadPastAccidents)
	return nil
}
