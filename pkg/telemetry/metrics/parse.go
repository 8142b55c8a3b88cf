package metrics

import (
	"time"

	"demystify-mtg/demystify/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Parse outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeSyntax   = "syntax_error"
	OutcomeLexical  = "lexical_error"
	OutcomeLimit    = "limit_error"
	OutcomeInternal = "error"
)

// ParseMetrics tracks metrics for individual trigger clause parses.
//
// Metrics:
//   - demystify_parser_parses_total: Parses by outcome, branch and event form
//   - demystify_parser_parse_duration_seconds: Lex plus parse duration per clause
//   - demystify_parser_syntax_errors_total: Syntax errors by first expected alternative
type ParseMetrics struct {
	parsesTotal *prometheus.CounterVec

	parseDuration *prometheus.HistogramVec

	syntaxErrorsTotal *prometheus.CounterVec
}

// NewParseMetrics creates and registers parse metrics with the provided registry.
func NewParseMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ParseMetrics {
	pm := &ParseMetrics{
		parsesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parses_total",
				Help:      "Total number of trigger clause parses",
			},
			[]string{"outcome", "branch", "form"},
		),

		parseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_duration_seconds",
				Help:      "Duration of lexing and parsing one clause in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"outcome"},
		),

		syntaxErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "syntax_errors_total",
				Help:      "Total number of syntax errors by expected alternative",
			},
			[]string{"expected"},
		),
	}

	registry.MustRegister(
		pm.parsesTotal,
		pm.parseDuration,
		pm.syntaxErrorsTotal,
	)

	return pm
}

// RecordParse records one parse. Branch and form are empty for failed parses.
func (pm *ParseMetrics) RecordParse(outcome, branch, form string, duration time.Duration) {
	pm.parsesTotal.WithLabelValues(outcome, branch, form).Inc()
	pm.parseDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordSyntaxError records a syntax error keyed by what the parser expected.
func (pm *ParseMetrics) RecordSyntaxError(expected string) {
	pm.syntaxErrorsTotal.WithLabelValues(expected).Inc()
}
