// Package telemetry groups the observability packages used by demystify.
//
// # Components
//
//   - logging: Structured logging on log/slog with run, card and clause fields
//   - metrics: Prometheus counters and histograms for parse outcomes and batch runs
//   - tracing: OpenTelemetry spans for batch runs and clause parses
//   - health: Liveness and readiness endpoints served next to the metrics
//
// The trigger parser itself never logs or records metrics; the batch runner
// and the CLI wire telemetry around it.
package telemetry
