// Package metrics exposes Prometheus counters/histograms for the sync
// and staging engines, built with promauto the way the teacher's
// collector wires its own HTTP/DB metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder records sync and staging engine operations as Prometheus
// metrics. A nil *Recorder is valid and records nothing, so callers in
// tests and one-shot CLI commands need not construct a registry.
type Recorder struct {
	syncOperations  *prometheus.CounterVec
	syncDuration    *prometheus.HistogramVec
	stagingRecords  *prometheus.CounterVec
	stagingBatches  *prometheus.CounterVec
	stagingFlushes  prometheus.Counter
	stagingCommits  *prometheus.CounterVec
}

// NewRecorder registers this package's metrics against reg. Passing
// prometheus.NewRegistry() isolates metrics for a single test or
// invocation; passing prometheus.DefaultRegisterer matches the
// teacher's process-wide default.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		syncOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "schemakit_sync_operations_total",
			Help: "Total number of sync engine row operations by entity kind and change type.",
		}, []string{"entity", "change"}),

		syncDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "schemakit_sync_duration_seconds",
			Help:    "Duration of a full workspace sync run.",
			Buckets: prometheus.DefBuckets,
		}, []string{"target"}),

		stagingRecords: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "schemakit_staging_records_total",
			Help: "Total number of records ingested into staging tables, by outcome.",
		}, []string{"outcome"}),

		stagingBatches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "schemakit_staging_batches_total",
			Help: "Total number of staging ingestion batches, by terminal status.",
		}, []string{"status"}),

		stagingFlushes: factory.NewCounter(prometheus.CounterOpts{
			Name: "schemakit_staging_flushes_total",
			Help: "Total number of Arrow record batches flushed to Parquet data files.",
		}),

		stagingCommits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "schemakit_staging_commits_total",
			Help: "Total number of Iceberg fast-append commits, by outcome.",
		}, []string{"outcome"}),
	}
}

// RecordSync records one entity-kind change during a sync run.
func (r *Recorder) RecordSync(entity, change string) {
	if r == nil {
		return
	}
	r.syncOperations.WithLabelValues(entity, change).Inc()
}

// ObserveSyncDuration records the wall-clock time of a full sync run
// against the given target backend ("postgres" or "trino").
func (r *Recorder) ObserveSyncDuration(target string, d time.Duration) {
	if r == nil {
		return
	}
	r.syncDuration.WithLabelValues(target).Observe(d.Seconds())
}

// RecordStagingRecords increments the ingested/skipped/errored record
// counters for a batch.
func (r *Recorder) RecordStagingRecords(outcome string, n int64) {
	if r == nil {
		return
	}
	r.stagingRecords.WithLabelValues(outcome).Add(float64(n))
}

// RecordStagingBatch records a batch reaching a terminal status
// ("completed" or "failed").
func (r *Recorder) RecordStagingBatch(status string) {
	if r == nil {
		return
	}
	r.stagingBatches.WithLabelValues(status).Inc()
}

// RecordStagingFlush records one Arrow record batch flushed to a
// Parquet data file.
func (r *Recorder) RecordStagingFlush() {
	if r == nil {
		return
	}
	r.stagingFlushes.Inc()
}

// RecordStagingCommit records one fast-append commit attempt.
func (r *Recorder) RecordStagingCommit(outcome string) {
	if r == nil {
		return
	}
	r.stagingCommits.WithLabelValues(outcome).Inc()
}
