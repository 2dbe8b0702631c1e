package transform

import (
	"errors"
	"testing"

	"github.com/priyam0k/claim-data-pipeline/pkg/records"
)

func TestBucketFor_BoundaryRule(t *testing.T) {
	t.Parallel()

	// Lower bounds are closed: an age equal to a bucket's first year stays
	// in that bucket.
	cases := []struct {
		age  float64
		want string
	}{
		{0, "16-25"},
		{16, "16-25"},
		{25, "16-25"},
		{25.9, "16-25"},
		{26, "26-40"},
		{40, "26-40"},
		{41, "41-65"},
		{65, "41-65"},
		{66, "66+"},
		{100, "66+"},
		{130, "66+"},
	}
	for _, tc := range cases {
		if got := bucketFor(tc.age); got != tc.want {
			t.Errorf("bucketFor(%v) = %q, want %q", tc.age, got, tc.want)
		}
	}
}

func TestBucketFor_TotalAndNonOverlapping(t *testing.T) {
	t.Parallel()

	// Every integer age in a realistic range must land in exactly one
	// bucket, and the assignment must be monotonic over the partition.
	labels := []string{"16-25", "26-40", "41-65", "66+"}
	rank := func(label string) int {
		for i, l := range labels {
			if l == label {
				return i
			}
		}
		return -1
	}
	prev := 0
	for age := 0; age <= 100; age++ {
		got := bucketFor(float64(age))
		r := rank(got)
		if r < 0 {
			t.Fatalf("age %d: unknown bucket %q", age, got)
		}
		if r < prev {
			t.Fatalf("age %d: bucket order regressed to %q", age, got)
		}
		prev = r
	}
}

func TestDeriveAgeGroup_AddsColumn(t *testing.T) {
	t.Parallel()

	tbl := records.NewTable([]string{"age"}, []records.Record{
		{"age": 22.0},
		{"age": 67.0},
	})
	if err := (DeriveAgeGroup{}).Apply(tbl); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !tbl.HasColumn(ColAgeGroup) {
		t.Fatal("age_group column not added to header")
	}
	if tbl.Rows[0][ColAgeGroup] != "16-25" || tbl.Rows[1][ColAgeGroup] != "66+" {
		t.Errorf("groups = %v, %v", tbl.Rows[0][ColAgeGroup], tbl.Rows[1][ColAgeGroup])
	}
}

func TestDeriveAgeGroup_NonNumericAgeIsTransformError(t *testing.T) {
	t.Parallel()

	tbl := records.NewTable([]string{"age"}, []records.Record{{"age": "old"}})
	err := (DeriveAgeGroup{}).Apply(tbl)
	var te *TransformError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want TransformError", err)
	}
}

func TestDeriveHadPastAccidents(t *testing.T) {
	t.Parallel()

	tbl := records.NewTable([]string{"past_accidents"}, []records.Record{
		{"past_accidents": "0"},
		{"past_accidents": "1"},
		{"past_accidents": "3"},
		{"past_accidents": 2.0},
	})
	if err := (DeriveHadPastAccidents{}).Apply(tbl); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := []int{0, 1, 1, 1}
	for i, w := range want {
		if got := tbl.Rows[i][ColHadPastAccidents]; got != w {
			t.Errorf("row %d: had_past_accidents = %v, want %d", i, got, w)
		}
	}

	// The raw count is coerced in place so it lands numeric downstream.
	wantCounts := []float64{0, 1, 3, 2}
	for i, w := range wantCounts {
		if got := tbl.Rows[i][ColPastAccidents]; got != w {
			t.Errorf("row %d: past_accidents = %v (%T), want %v", i, got, got, w)
		}
	}
}

func TestDeriveHadPastAccidents_MissingIsTransformError(t *testing.T) {
	t.Parallel()

	tbl := records.NewTable([]string{"past_accidents"}, []records.Record{
		{"past_accidents": nil},
	})
	err := (DeriveHadPastAccidents{}).Apply(tbl)
	var te *TransformError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want TransformError", err)
	}
	if te.Column != ColPastAccidents {
		t.Errorf("Column = %q, want %q", te.Column, ColPastAccidents)
	}
}
