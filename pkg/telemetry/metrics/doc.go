// Package metrics provides Prometheus metrics collection for demystify.
//
// # Metrics Categories
//
//   - Parse Metrics: Parse count by outcome, branch and form; parse duration;
//     syntax errors by expected alternative
//   - Batch Metrics: Run count and duration, clauses in flight, watch reloads
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	collector.RecordParse(metrics.OutcomeOK, "event", "enter", 40*time.Microsecond)
//	collector.RecordSyntaxError("in")
//
//	http.Handle("/metrics", collector.Handler())
//
// A nil *Collector records nothing, and neither does one whose config has
// Enabled set to false.
//
// # Cardinality
//
// Branch, form and outcome come from fixed sets. The "expected" label on
// syntax errors is bounded by a CardinalityLimiter; values beyond the limit
// are recorded as "other".
package metrics
