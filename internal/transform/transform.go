// Package transform implements the cleaning and enrichment stage of the
// claims pipeline: column-name normalization, numeric coercion with median
// fallback, median imputation, and derived-feature computation. Every step is
// deterministic and idempotent; any step failure aborts the whole run.
package transform

import "github.com/priyam0k/claim-data-pipeline/pkg/records"

// Step is a single named transformation applied to the table in place.
type Step interface {
	Name() string
	Apply(t *records.Table) error
}

// Chain is an ordered list of steps. Apply runs them in order and stops at
// the first error.
type Chain []Step

func (c Chain) Apply(t *records.Table) error {
	for _, s := range c {
		if err := s.Apply(t); err != nil {
			return err
		}
	}
	return nil
}

// Claims is the fixed step order for the claims dataset. The three median
// fills are independent column-local passes; only the derived features
// depend on earlier steps (age_group needs a fully numeric age column).
func Claims() Chain {
	return Chain{
		NormalizeColumns{},
		CoerceNumeric{Column: "age"},
		ImputeMedian{Column: "credit_score"},
		ImputeMedian{Column: "annual_mileage"},
		DeriveAgeGroup{},
		DeriveHadPastAccidents{},
	}
}

// Apply runs the claims chain against a copy of in and returns the
// transformed table. The input is never mutated.
func Apply(in *records.Table) (*records.Table, error) {
	out := in.Clone()
	if err := Claims().Apply(out); err != nil {
		return nil, err
	}
	return out, nil
}
