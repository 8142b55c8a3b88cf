package config

import "time"

// Config is the root configuration structure for demystify.
// It contains the parser limits, batch worker settings, results storage,
// corpus watching and telemetry sections.
type Config struct {
	// Parser contains trigger clause parser settings such as the token
	// limit and strict end-of-clause handling.
	Parser ParserConfig `yaml:"parser" toml:"parser"`

	// Batch contains configuration for parsing a whole card corpus.
	Batch BatchConfig `yaml:"batch" toml:"batch"`

	// Storage contains configuration for persisting batch results.
	Storage StorageConfig `yaml:"storage" toml:"storage"`

	// Watch contains configuration for re-running a batch when the corpus
	// file changes.
	Watch WatchConfig `yaml:"watch" toml:"watch"`

	// Telemetry contains configuration for logging, metrics and tracing.
	Telemetry TelemetryConfig `yaml:"telemetry" toml:"telemetry"`
}

// ParserConfig contains configuration for the trigger clause parser.
type ParserConfig struct {
	// MaxTokens is the maximum number of tokens accepted in one clause.
	// A negative value disables the limit.
	// Default: 256
	MaxTokens int `yaml:"max_tokens" toml:"max_tokens"`

	// Strict rejects trailing punctuation after a complete trigger.
	// Default: false
	Strict bool `yaml:"strict" toml:"strict"`
}

// TokenLimit returns the token limit in the form the parser expects,
// where 0 means unlimited.
func (c ParserConfig) TokenLimit() int {
	if c.MaxTokens < 0 {
		return 0
	}
	return c.MaxTokens
}

// BatchConfig contains configuration for corpus batch runs.
type BatchConfig struct {
	// Workers is the number of concurrent parse workers.
	// Default: 4
	Workers int `yaml:"workers" toml:"workers"`

	// FailFast stops the run at the first clause that fails to parse.
	// Default: false
	FailFast bool `yaml:"fail_fast" toml:"fail_fast"`
}

// StorageConfig contains configuration for the SQLite results store.
type StorageConfig struct {
	// Enabled controls whether batch runs are persisted.
	// Default: false
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// Path is the SQLite database file path.
	// Default: "demystify.db"
	Path string `yaml:"path" toml:"path"`

	// BusyTimeout is how long SQLite waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout" toml:"busy_timeout"`
}

// WatchConfig contains configuration for corpus file watching.
type WatchConfig struct {
	// Debounce is the quiet period after a file change before the batch
	// is re-run. Editors often write a file several times in a row.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce" toml:"debounce"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging" toml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics" toml:"metrics"`

	// Tracing contains OpenTelemetry tracing configuration.
	Tracing TracingConfig `yaml:"tracing" toml:"tracing"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level" toml:"level"`

	// Format is the log output format.
	// Options: "json", "text", "console"
	// Default: "console"
	Format string `yaml:"format" toml:"format"`

	// AddSource includes the source file and line in each record.
	// Default: false
	AddSource bool `yaml:"add_source" toml:"add_source"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: false
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// ListenAddress is the address the metrics endpoint is served on
	// during batch runs. Empty means the endpoint is not served.
	// Format: "host:port"
	ListenAddress string `yaml:"listen_address" toml:"listen_address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path" toml:"path"`

	// Namespace is the metric name prefix.
	// Default: "demystify"
	Namespace string `yaml:"namespace" toml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "parser"
	Subsystem string `yaml:"subsystem" toml:"subsystem"`

	// DurationBuckets defines histogram buckets for clause parse duration (seconds).
	// Default: [0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01]
	DurationBuckets []float64 `yaml:"duration_buckets" toml:"duration_buckets"`
}

// TracingConfig contains OpenTelemetry tracing configuration. Batch runs
// and clause parses are recorded as spans.
type TracingConfig struct {
	// Enabled controls whether spans are exported.
	// Default: false
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler" toml:"sampler"`

	// SampleRatio is the fraction of runs to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio" toml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint" toml:"endpoint"`

	// Insecure disables TLS for the collector connection.
	// Default: false
	Insecure bool `yaml:"insecure" toml:"insecure"`

	// Timeout bounds each export.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout" toml:"timeout"`

	// ServiceName is the service name in traces.
	// Default: "demystify"
	ServiceName string `yaml:"service_name" toml:"service_name"`
}
