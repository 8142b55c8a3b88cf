package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *Config
		wantField string
	}{
		{"defaults", NewTestConfig().Build(), ""},
		{"unlimited tokens", NewTestConfig().WithMaxTokens(-1).Build(), ""},
		{"token ceiling", NewTestConfig().WithMaxTokens(maxTokensCeiling + 1).Build(), "parser.max_tokens"},
		{"zero workers", NewTestConfig().WithWorkers(0).Build(), "batch.workers"},
		{"storage without path", NewTestConfig().WithStorage("").Build(), "storage.path"},
		{"negative debounce", NewTestConfig().WithDebounce(-1).Build(), "watch.debounce"},
		{"bad level", NewTestConfig().WithLogging("verbose", "json").Build(), "telemetry.logging.level"},
		{"bad format", NewTestConfig().WithLogging("info", "xml").Build(), "telemetry.logging.format"},
		{"metrics address", NewTestConfig().WithMetrics("127.0.0.1:9090").Build(), ""},
		{"bad metrics address", NewTestConfig().WithMetrics("localhost").Build(), "telemetry.metrics.listen_address"},
		{"tracing", NewTestConfig().WithTracing("localhost:4317", "ratio", 0.25).Build(), ""},
		{"tracing without endpoint", NewTestConfig().WithTracing("", "always", 1).Build(), "telemetry.tracing.endpoint"},
		{"bad sampler", NewTestConfig().WithTracing("localhost:4317", "sometimes", 1).Build(), "telemetry.tracing.sampler"},
		{"bad sample ratio", NewTestConfig().WithTracing("localhost:4317", "ratio", 1.5).Build(), "telemetry.tracing.sample_ratio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cfg)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			found := false
			for _, fe := range verr.Errors {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("errors %v do not mention %s", verr.Errors, tt.wantField)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := NewTestConfig().WithWorkers(0).WithLogging("", "").Build()

	err := Validate(cfg)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Errors) != 3 {
		t.Errorf("got %d errors, want 3: %v", len(verr.Errors), verr.Errors)
	}
	if !strings.Contains(verr.Error(), "with 3 errors") {
		t.Errorf("Error() = %q", verr.Error())
	}
}

func TestValidate_UnsortedBuckets(t *testing.T) {
	cfg := NewTestConfig().Build()
	cfg.Telemetry.Metrics.DurationBuckets = []float64{0.1, 0.01}

	if err := Validate(cfg); err == nil {
		t.Error("expected error for unsorted buckets")
	}
}
