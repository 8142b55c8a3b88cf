package metrics

import (
	"time"

	"demystify-mtg/demystify/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// BatchMetrics tracks corpus batch runs.
//
// Metrics:
//   - demystify_parser_batch_runs_total: Completed runs by status
//   - demystify_parser_batch_run_duration_seconds: Wall time per run
//   - demystify_parser_batch_clauses_in_flight: Clauses currently being parsed
//   - demystify_parser_corpus_reloads_total: Watch-triggered reloads by outcome
type BatchMetrics struct {
	runsTotal *prometheus.CounterVec

	runDuration prometheus.Histogram

	clausesInFlight prometheus.Gauge

	reloadsTotal *prometheus.CounterVec
}

// NewBatchMetrics creates and registers batch metrics with the provided registry.
func NewBatchMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *BatchMetrics {
	bm := &BatchMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "batch_runs_total",
				Help:      "Total number of corpus batch runs",
			},
			[]string{"status"},
		),

		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "batch_run_duration_seconds",
				Help:      "Duration of a corpus batch run in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4min
			},
		),

		clausesInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "batch_clauses_in_flight",
				Help:      "Number of clauses currently being parsed",
			},
		),

		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "corpus_reloads_total",
				Help:      "Total number of corpus reloads triggered by file changes",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(
		bm.runsTotal,
		bm.runDuration,
		bm.clausesInFlight,
		bm.reloadsTotal,
	)

	return bm
}

// RecordRun records a finished run. Status is "ok", "failed" or "canceled".
func (bm *BatchMetrics) RecordRun(status string, duration time.Duration) {
	bm.runsTotal.WithLabelValues(status).Inc()
	bm.runDuration.Observe(duration.Seconds())
}

// ClauseStarted increments the in-flight gauge.
func (bm *BatchMetrics) ClauseStarted() {
	bm.clausesInFlight.Inc()
}

// ClauseFinished decrements the in-flight gauge.
func (bm *BatchMetrics) ClauseFinished() {
	bm.clausesInFlight.Dec()
}

// RecordReload records a watch-triggered corpus reload.
func (bm *BatchMetrics) RecordReload(outcome string) {
	bm.reloadsTotal.WithLabelValues(outcome).Inc()
}
