// Package metrics records run-level counters and timings for the pipeline
// through a pluggable global backend. The default backend is a no-op, so
// instrumentation is always safe to call; cmd/carprep installs a Pushgateway
// or DogStatsD backend when configured.
package metrics

import "time"

// Metric names understood by every backend.
const (
	StageTotal           = "carprep_stage_total"
	StageDurationSeconds = "carprep_stage_duration_seconds"
	RowsTotal            = "carprep_rows_total"
	MatchRatePercent     = "carprep_match_rate_percent"
)

// Row kinds passed to RecordRow.
const (
	KindListingsRead        = "listings_read"
	KindListingsKept        = "listings_kept"
	KindEmissionsRead       = "emissions_read"
	KindEmissionsKept       = "emissions_kept"
	KindEmissionsDuplicates = "emissions_duplicates"
	KindParseErrors         = "parse_errors"
	KindMerged              = "merged"
	KindMatched             = "matched"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a duration-style sample.
	ObserveHistogram(name string, value float64, labels Labels)
	// SetGauge sets a point-in-time value.
	SetGauge(name string, value float64, labels Labels)
	// Flush pushes buffered metrics, if the backend needs it.
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)       {}
func (nopBackend) ObserveHistogram(string, float64, Labels) {}
func (nopBackend) SetGauge(string, float64, Labels)         {}
func (nopBackend) Flush() error                             { return nil }

var backend Backend = nopBackend{}

// SetBackend installs b. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Reset restores the no-op backend.
func Reset() { backend = nopBackend{} }

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep counts one stage execution and observes its duration.
func RecordStep(job, stage string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"job": job, "stage": stage, "status": status}
	backend.IncCounter(StageTotal, 1, lbls)
	backend.ObserveHistogram(StageDurationSeconds, d.Seconds(), lbls)
}

// RecordRow adds delta rows of kind. Non-positive deltas are ignored.
func RecordRow(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(RowsTotal, float64(delta), Labels{"job": job, "kind": kind})
}

// RecordMatchRate publishes the share of merged rows with emission data.
func RecordMatchRate(job string, pct float64) {
	backend.SetGauge(MatchRatePercent, pct, Labels{"job": job})
}
