package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demystify.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestApplyDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Parser.MaxTokens != DefaultMaxTokens {
		t.Errorf("MaxTokens = %d, want %d", cfg.Parser.MaxTokens, DefaultMaxTokens)
	}
	if cfg.Batch.Workers != DefaultWorkers {
		t.Errorf("Workers = %d, want %d", cfg.Batch.Workers, DefaultWorkers)
	}
	if cfg.Storage.Path != DefaultStoragePath {
		t.Errorf("Storage.Path = %q, want %q", cfg.Storage.Path, DefaultStoragePath)
	}
	if cfg.Watch.Debounce != DefaultWatchDebounce {
		t.Errorf("Debounce = %v, want %v", cfg.Watch.Debounce, DefaultWatchDebounce)
	}
	if cfg.Telemetry.Metrics.Namespace != "demystify" {
		t.Errorf("Namespace = %q", cfg.Telemetry.Metrics.Namespace)
	}
	if cfg.Telemetry.Tracing.Sampler != DefaultTracingSampler || cfg.Telemetry.Tracing.ServiceName != "demystify" {
		t.Errorf("Tracing = %+v", cfg.Telemetry.Tracing)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	cfg := NewTestConfig().WithWorkers(2).Build()
	ApplyDefaults(cfg)
	ApplyDefaults(cfg)

	if cfg.Batch.Workers != 2 {
		t.Errorf("Workers = %d, want explicit value 2 kept", cfg.Batch.Workers)
	}
	if len(cfg.Telemetry.Metrics.DurationBuckets) != len(DefaultDurationBuckets) {
		t.Errorf("DurationBuckets has %d entries", len(cfg.Telemetry.Metrics.DurationBuckets))
	}
}

func TestTokenLimit(t *testing.T) {
	tests := []struct {
		maxTokens int
		want      int
	}{
		{256, 256},
		{10, 10},
		{-1, 0},
	}
	for _, tt := range tests {
		got := ParserConfig{MaxTokens: tt.maxTokens}.TokenLimit()
		if got != tt.want {
			t.Errorf("TokenLimit(%d) = %d, want %d", tt.maxTokens, got, tt.want)
		}
	}
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
parser:
  max_tokens: 64
  strict: true
batch:
  workers: 8
  fail_fast: true
storage:
  enabled: true
  path: "./runs.db"
watch:
  debounce: "250ms"
telemetry:
  logging:
    level: "debug"
    format: "json"
  metrics:
    enabled: true
    listen_address: "127.0.0.1:9090"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Parser.MaxTokens != 64 || !cfg.Parser.Strict {
		t.Errorf("Parser = %+v", cfg.Parser)
	}
	if cfg.Batch.Workers != 8 || !cfg.Batch.FailFast {
		t.Errorf("Batch = %+v", cfg.Batch)
	}
	if !cfg.Storage.Enabled || cfg.Storage.Path != "./runs.db" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if cfg.Storage.BusyTimeout != DefaultStorageBusyTimeout {
		t.Errorf("BusyTimeout = %v, want default", cfg.Storage.BusyTimeout)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("Debounce = %v", cfg.Watch.Debounce)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("Level = %q", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Metrics.ListenAddress != "127.0.0.1:9090" {
		t.Errorf("ListenAddress = %q", cfg.Telemetry.Metrics.ListenAddress)
	}
}

func TestLoadConfig_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demystify.toml")
	content := `
[parser]
max_tokens = 32

[batch]
workers = 3

[watch]
debounce = "2s"

[telemetry.tracing]
sampler = "ratio"
sample_ratio = 0.25
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Parser.MaxTokens != 32 || cfg.Batch.Workers != 3 {
		t.Errorf("Parser = %+v, Batch = %+v", cfg.Parser, cfg.Batch)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("Debounce = %v", cfg.Watch.Debounce)
	}
	if cfg.Telemetry.Tracing.SampleRatio != 0.25 || cfg.Telemetry.Tracing.Sampler != "ratio" {
		t.Errorf("Tracing = %+v", cfg.Telemetry.Tracing)
	}
	if cfg.Storage.Path != DefaultStoragePath {
		t.Errorf("Storage.Path = %q, want default", cfg.Storage.Path)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist, got %v", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfig(t, "parser: [unclosed")
		_, err := LoadConfig(path)
		if err == nil || !strings.Contains(err.Error(), "failed to parse") {
			t.Errorf("expected parse error, got %v", err)
		}
	})

	t.Run("invalid toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte("[parser\nmax_tokens = "), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadConfig(path)
		if err == nil || !strings.Contains(err.Error(), "failed to parse") {
			t.Errorf("expected parse error, got %v", err)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		path := writeConfig(t, "batch:\n  workers: -3\n")
		_, err := LoadConfig(path)
		var verr ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if verr.Errors[0].Field != "batch.workers" {
			t.Errorf("Field = %q, want batch.workers", verr.Errors[0].Field)
		}
	})
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "batch:\n  workers: 2\n")

	t.Setenv("DEMYSTIFY_BATCH_WORKERS", "6")
	t.Setenv("DEMYSTIFY_PARSER_STRICT", "true")
	t.Setenv("DEMYSTIFY_STORAGE_PATH", "/tmp/env.db")
	t.Setenv("DEMYSTIFY_WATCH_DEBOUNCE", "1s")
	t.Setenv("DEMYSTIFY_TELEMETRY_LOGGING_LEVEL", "warn")
	t.Setenv("DEMYSTIFY_PARSER_MAX_TOKENS", "not-a-number")
	t.Setenv("DEMYSTIFY_TELEMETRY_TRACING_ENABLED", "true")
	t.Setenv("DEMYSTIFY_TELEMETRY_TRACING_ENDPOINT", "collector:4317")
	t.Setenv("DEMYSTIFY_TELEMETRY_TRACING_SAMPLE_RATIO", "0.5")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() error = %v", err)
	}

	if cfg.Batch.Workers != 6 {
		t.Errorf("Workers = %d, want env override 6", cfg.Batch.Workers)
	}
	if !cfg.Parser.Strict {
		t.Error("Strict should be overridden to true")
	}
	if cfg.Parser.MaxTokens != DefaultMaxTokens {
		t.Errorf("MaxTokens = %d, unparseable override should be ignored", cfg.Parser.MaxTokens)
	}
	if cfg.Storage.Path != "/tmp/env.db" {
		t.Errorf("Storage.Path = %q", cfg.Storage.Path)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("Debounce = %v", cfg.Watch.Debounce)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("Level = %q", cfg.Telemetry.Logging.Level)
	}
	tr := cfg.Telemetry.Tracing
	if !tr.Enabled || tr.Endpoint != "collector:4317" || tr.SampleRatio != 0.5 {
		t.Errorf("Tracing = %+v", tr)
	}
}

func TestLoadConfigWithEnvOverrides_NoFile(t *testing.T) {
	t.Setenv("DEMYSTIFY_TELEMETRY_LOGGING_LEVEL", "loud")

	_, err := LoadConfigWithEnvOverrides("")
	if err == nil || !strings.Contains(err.Error(), "after environment overrides") {
		t.Errorf("expected validation error after overrides, got %v", err)
	}
}
