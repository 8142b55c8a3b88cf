package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances in tests.
// It starts with default values and allows selective overrides.
type ConfigBuilder struct {
	cfg Config
}

// NewTestConfig creates a new ConfigBuilder with valid defaults.
func NewTestConfig() *ConfigBuilder {
	var cfg Config
	ApplyDefaults(&cfg)
	return &ConfigBuilder{cfg: cfg}
}

// Build returns the built Config instance.
func (b *ConfigBuilder) Build() *Config {
	return &b.cfg
}

func (b *ConfigBuilder) WithMaxTokens(n int) *ConfigBuilder {
	b.cfg.Parser.MaxTokens = n
	return b
}

func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Batch.Workers = n
	return b
}

func (b *ConfigBuilder) WithStorage(path string) *ConfigBuilder {
	b.cfg.Storage.Enabled = true
	b.cfg.Storage.Path = path
	return b
}

func (b *ConfigBuilder) WithDebounce(d time.Duration) *ConfigBuilder {
	b.cfg.Watch.Debounce = d
	return b
}

func (b *ConfigBuilder) WithLogging(level, format string) *ConfigBuilder {
	b.cfg.Telemetry.Logging.Level = level
	b.cfg.Telemetry.Logging.Format = format
	return b
}

func (b *ConfigBuilder) WithMetrics(addr string) *ConfigBuilder {
	b.cfg.Telemetry.Metrics.Enabled = true
	b.cfg.Telemetry.Metrics.ListenAddress = addr
	return b
}

func (b *ConfigBuilder) WithTracing(endpoint, sampler string, ratio float64) *ConfigBuilder {
	b.cfg.Telemetry.Tracing.Enabled = true
	b.cfg.Telemetry.Tracing.Endpoint = endpoint
	b.cfg.Telemetry.Tracing.Sampler = sampler
	b.cfg.Telemetry.Tracing.SampleRatio = ratio
	return b
}
