package metrics

import (
	"sync"
	"time"

	"demystify-mtg/demystify/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns the Prometheus metrics for parsing and batch runs.
// A nil *Collector is valid and records nothing, so callers can pass nil
// when metrics are disabled.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	parseMetrics *ParseMetrics
	batchMetrics *BatchMetrics

	// Bounds the "expected" label on syntax errors.
	cardinalityLimiter *CardinalityLimiter
}

// maxExpectedLabels bounds the distinct "expected" label values.
const maxExpectedLabels = 64

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a fresh
// registry is created.
//
// Example:
//
//	cfg := &config.Default().Telemetry.Metrics
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = append([]float64(nil), config.DefaultDurationBuckets...)
	}

	c := &Collector{
		config:             cfg,
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(maxExpectedLabels),
	}

	c.parseMetrics = NewParseMetrics(cfg, registry)
	c.batchMetrics = NewBatchMetrics(cfg, registry)

	return c
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordParse records a completed clause parse.
//
// Parameters:
//   - outcome: One of the Outcome constants
//   - branch: "event" or "condition", empty on failure
//   - form: "enter", "leave", "phase", "has" or "counters", empty on failure
//   - duration: Lex plus parse time
func (c *Collector) RecordParse(outcome, branch, form string, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.parseMetrics.RecordParse(outcome, branch, form, duration)
}

// RecordSyntaxError records a syntax error keyed by the first alternative
// the parser expected. Past the cardinality limit new values are counted
// as "other".
func (c *Collector) RecordSyntaxError(expected string) {
	if !c.enabled() {
		return
	}
	if !c.cardinalityLimiter.Allow(expected) {
		expected = "other"
	}
	c.parseMetrics.RecordSyntaxError(expected)
}

// RecordRun records a finished batch run.
func (c *Collector) RecordRun(status string, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.batchMetrics.RecordRun(status, duration)
}

// ClauseStarted marks a clause as being parsed by a batch worker.
func (c *Collector) ClauseStarted() {
	if !c.enabled() {
		return
	}
	c.batchMetrics.ClauseStarted()
}

// ClauseFinished marks a batch worker as done with a clause.
func (c *Collector) ClauseFinished() {
	if !c.enabled() {
		return
	}
	c.batchMetrics.ClauseFinished()
}

// RecordReload records a corpus reload triggered by the watcher.
func (c *Collector) RecordReload(outcome string) {
	if !c.enabled() {
		return
	}
	c.batchMetrics.RecordReload(outcome)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow returns true if the label set is already tracked or there is room
// to track it.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
