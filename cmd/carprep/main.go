// Command carprep prepares the used-car listings and CO2 emission reference
// data for reporting: it cleans both inputs, joins them on a coarse model
// key, derives feature columns and writes the KPI summary tables.
//
// Usage:
//
//	carprep -config configs/pipeline.yaml -stage all -v
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/config"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/metrics"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/metrics/datadog"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/metrics/prompush"
	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/storage"

	// register all storage backends with the storage factory.
	_ "github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/storage/all"
)

const (
	defaultPushgatewayURL = "http://localhost:9091"
	defaultDatadogAddr    = "127.0.0.1:8125"
)

func main() {
	var (
		cfgPath           string
		stage             string
		metricsBackendFlg string
		pushGatewayURLFlg string
		validate          bool
	)

	flag.StringVar(&cfgPath, "config", "configs/pipeline.yaml", "pipeline config path (.yaml, .yml or .json); empty uses defaults")
	flag.StringVar(&stage, "stage", stageAll, "stage to run: clean, merge, kpi or all")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "", "metrics backend override (none, pushgateway, datadog)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL override")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fatalf("load .env: %v", err)
	}

	p, err := config.Load(cfgPath)
	if err != nil {
		fatalf("%v", err)
	}
	if metricsBackendFlg != "" {
		p.Metrics.Backend = metricsBackendFlg
	}
	if pushGatewayURLFlg != "" {
		p.Metrics.PushgatewayURL = pushGatewayURLFlg
	}

	issues := config.ValidatePipeline(*p)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		log.Printf("Configuration is invalid: %v", cfgPath)
		os.Exit(1)
	}
	if validate {
		log.Printf("Configuration is valid: %v", cfgPath)
		os.Exit(0)
	}

	runID := uuid.NewString()
	log.Printf("run: id=%s job=%s stage=%s config=%s", runID, p.Job, stage, cfgPath)

	if *verbose {
		log.Printf("storage: output=%s kinds=%v", p.Output.Kind, storage.ListKinds())
	}

	if flush := setupMetrics(p.Job, p.Metrics, runID, *verbose); flush != nil {
		defer flush()
	}

	start := time.Now()
	r := &runner{p: *p, verbose: *verbose, now: time.Now}
	if err := r.run(context.Background(), stage); err != nil {
		// Flush before exiting so the failed stage is still reported.
		_ = metrics.Flush()
		fatalf("%v", err)
	}
	log.Printf("run: id=%s completed in %s", runID, time.Since(start).Truncate(time.Millisecond))
}

// setupMetrics installs the configured backend and returns a function that
// flushes it, or nil when metrics are disabled.
func setupMetrics(job string, m config.Metrics, runID string, verbose bool) func() {
	var (
		b   metrics.Backend
		err error
	)
	switch m.Backend {
	case "pushgateway":
		url := m.PushgatewayURL
		if url == "" {
			url = defaultPushgatewayURL
		}
		b, err = prompush.NewBackend(job, url, runID)
		if err == nil {
			log.Printf("metrics: backend=pushgateway url=%s job_name=%s", url, job)
		}
	case "datadog":
		addr := m.DatadogAddr
		if addr == "" {
			addr = defaultDatadogAddr
		}
		b, err = datadog.NewBackend(datadog.Config{
			Addr:       addr,
			Namespace:  m.Namespace,
			GlobalTags: []string{"job:" + job, "run_id:" + runID},
		})
		if err == nil {
			log.Printf("metrics: backend=datadog addr=%s namespace=%s", addr, m.Namespace)
		}
	case "", "none":
		if verbose {
			log.Printf("metrics: disabled (backend=%q)", m.Backend)
		}
		return nil
	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", m.Backend)
		return nil
	}
	if err != nil {
		log.Printf("metrics: failed to init %s backend: %v; using nop", m.Backend, err)
		return nil
	}
	metrics.SetBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
