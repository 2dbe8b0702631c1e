// Package config defines the JSON-serializable configuration model for the
// claims pipeline. It is intentionally small and explicit so a run can be
// described fully by one file under configs/ and passed through the program
// without additional glue code. Decoding is performed by the standard
// library, with a light Options helper for typed access to free-form blocks.
package config

import "encoding/json"

// Pipeline describes one full run. It is the top-level object decoded from a
// pipeline file (e.g., configs/claims.json).
type Pipeline struct {
	// Job names the run for logs and metrics labeling.
	Job string `json:"job"`

	// Source describes where the raw dataset comes from.
	Source Source `json:"source"`

	// Parser configures how raw bytes are turned into the in-memory table.
	Parser Parser `json:"parser"`

	// Storage describes the destination table.
	Storage Storage `json:"storage"`
}

// Source identifies the data source. Additional kinds can be added over time.
type Source struct {
	// Kind selects the source implementation. Current value: "file".
	Kind string `json:"kind"`

	// File carries options for the "file" source kind.
	File SourceFile `json:"file"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	// Path is the local filesystem path to the input CSV.
	Path string `json:"path"`
}

// Parser selects how to parse the raw source.
type Parser struct {
	// Kind selects the parser implementation. Current value: "csv".
	Kind string `json:"kind"`

	// Options is a free-form map interpreted by the parser implementation.
	// For CSV the recognized keys are: comma (string), trim_space (bool).
	Options Options `json:"options"`
}

// Storage selects and configures the destination store.
type Storage struct {
	// Kind selects the backend: "postgres", "sqlite", "mysql", or "mssql".
	Kind string `json:"kind"`

	// DB configures the selected backend.
	DB DBConfig `json:"db"`
}

// DBConfig configures the destination connection and table.
type DBConfig struct {
	// DSN is the backend connection string. It may be left empty in the
	// file and supplied via the CLAIMS_DB_DSN environment variable so
	// credentials stay out of checked-in configs.
	DSN string `json:"dsn"`

	// Table is the destination table name, replaced wholesale on each run.
	Table string `json:"table"`
}

// Options fetches typed values from arbitrary JSON maps without a
// third-party configuration library. It performs only minimal type coercion
// and returns the provided default when a key is absent or mistyped.
type Options map[string]any

// String returns the string value for key or def.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def. Useful for
// single-character parser settings such as the CSV delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// UnmarshalJSON decodes a missing or null "options" object to a non-nil,
// empty Options map, removing nil checks at call sites.
func (o *Options) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	var tmp map[string]any
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
