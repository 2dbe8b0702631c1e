package config

import "testing"

func validPipeline() Pipeline {
	return Pipeline{
		Job:    "claims_daily",
		Source: Source{Kind: "file", File: SourceFile{Path: "data/claims.csv"}},
		Parser: Parser{Kind: "csv", Options: Options{}},
		Storage: Storage{
			Kind: "postgres",
			DB:   DBConfig{DSN: "postgresql://localhost/claims", Table: "clean_claims"},
		},
	}
}

func errorPaths(issues []Issue) map[string]bool {
	paths := map[string]bool{}
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			paths[iss.Path] = true
		}
	}
	return paths
}

func TestValidatePipeline_Valid(t *testing.T) {
	t.Parallel()

	if issues := ValidatePipeline(validPipeline()); len(issues) != 0 {
		t.Errorf("unexpected issues: %v", issues)
	}
}

func TestValidatePipeline_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		mutate   func(*Pipeline)
		wantPath string
	}{
		{"empty job", func(p *Pipeline) { p.Job = "" }, "job"},
		{"missing source kind", func(p *Pipeline) { p.Source.Kind = "" }, "source.kind"},
		{"unsupported source kind", func(p *Pipeline) { p.Source.Kind = "http" }, "source.kind"},
		{"missing file path", func(p *Pipeline) { p.Source.File.Path = "" }, "source.file.path"},
		{"unsupported parser", func(p *Pipeline) { p.Parser.Kind = "xml" }, "parser.kind"},
		{"multichar comma", func(p *Pipeline) { p.Parser.Options = Options{"comma": "ab"} }, "parser.options.comma"},
		{"unknown storage kind", func(p *Pipeline) { p.Storage.Kind = "oracle" }, "storage.kind"},
		{"missing table", func(p *Pipeline) { p.Storage.DB.Table = "" }, "storage.db.table"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := validPipeline()
			tc.mutate(&p)
			paths := errorPaths(ValidatePipeline(p))
			if !paths[tc.wantPath] {
				t.Errorf("no error issue at %q (got %v)", tc.wantPath, paths)
			}
		})
	}
}

func TestValidatePipeline_EmptyDSNIsWarning(t *testing.T) {
	t.Parallel()

	p := validPipeline()
	p.Storage.DB.DSN = ""
	issues := ValidatePipeline(p)
	if len(issues) != 1 {
		t.Fatalf("issues = %v, want exactly one warning", issues)
	}
	if issues[0].Severity != SeverityWarning || issues[0].Path != "storage.db.dsn" {
		t.Errorf("issue = %+v", issues[0])
	}
}
