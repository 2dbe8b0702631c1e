// Package main is the entry point for the claims-etl binary. It loads the
// pipeline config, optionally initializes a metrics backend, executes the
// batch run, and maps the outcome onto distinct exit codes so the invoking
// scheduler can tell the failure kinds apart.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/priyam0k/claim-data-pipeline/internal/config"
	"github.com/priyam0k/claim-data-pipeline/internal/metrics"
	"github.com/priyam0k/claim-data-pipeline/internal/metrics/prompush"
	"github.com/priyam0k/claim-data-pipeline/internal/pipeline"
	"github.com/priyam0k/claim-data-pipeline/internal/storage"

	// register all storage backends with the factory.
	_ "github.com/priyam0k/claim-data-pipeline/internal/storage/all"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		cfgPath        string
		metricsBackend string
		pushGatewayURL string
		validate       bool
	)

	flag.StringVar(&cfgPath, "config", "configs/claims.json", "pipeline config JSON path")
	flag.StringVar(&metricsBackend, "metrics-backend", "none", "metrics backend to use (pushgateway, none)")
	flag.StringVar(&pushGatewayURL, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")
	flag.Parse()

	f, err := os.Open(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open config: %v\n", err)
		return pipeline.ExitUsage
	}
	var spec config.Pipeline
	err = json.NewDecoder(f).Decode(&spec)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode config: %v\n", err)
		return pipeline.ExitUsage
	}

	// Credentials stay out of the config file; the env wins when set.
	if dsn := os.Getenv("CLAIMS_DB_DSN"); dsn != "" {
		spec.Storage.DB.DSN = dsn
	}

	issues := config.ValidatePipeline(spec)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		log.Printf("configuration is invalid: %v", cfgPath)
		return pipeline.ExitUsage
	}
	if validate {
		log.Printf("configuration is valid: %v", cfgPath)
		return pipeline.ExitOK
	}

	setupMetrics(metricsBackend, pushGatewayURL, spec.Job, *verbose)
	defer func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}()

	ctx := context.Background()
	start := time.Now()

	repo, err := storage.New(ctx, storage.Config{
		Kind:  spec.Storage.Kind,
		DSN:   spec.Storage.DB.DSN,
		Table: spec.Storage.DB.Table,
	})
	if err != nil {
		err = &pipeline.SinkError{Err: err}
		log.Printf("%v", err)
		return pipeline.ExitCode(err)
	}
	defer repo.Close()

	sum, err := pipeline.Run(ctx, spec, repo)
	if err != nil {
		log.Printf("run failed: %v", err)
		return pipeline.ExitCode(err)
	}

	if *verbose {
		log.Printf("completed in %s (rows in=%d written=%d)",
			time.Since(start).Truncate(time.Millisecond), sum.RowsIn, sum.RowsWritten)
	}
	return pipeline.ExitOK
}

// setupMetrics installs the selected metrics backend; the nop backend stays
// in place when metrics are disabled or initialization fails.
func setupMetrics(backend, gatewayURL, job string, verbose bool) {
	if backend == "" {
		backend = os.Getenv("METRICS_BACKEND")
	}
	switch backend {
	case "pushgateway":
		if gatewayURL == "" {
			gatewayURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gatewayURL == "" {
			gatewayURL = "http://localhost:9091"
		}
		jobName := job
		if jobName == "" {
			jobName = "claims_etl"
		}
		b, err := prompush.NewBackend(jobName, gatewayURL)
		if err != nil {
			log.Printf("metrics: failed to init pushgateway backend: %v; using nop", err)
			return
		}
		log.Printf("metrics: url=%v backend=%v job=%v", gatewayURL, backend, jobName)
		metrics.SetBackend(b)

	case "", "none":
		if verbose {
			log.Printf("metrics: disabled (backend=%q)", backend)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backend)
	}
}
