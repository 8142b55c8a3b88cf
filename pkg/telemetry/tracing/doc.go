// Package tracing records batch runs and clause parses as OpenTelemetry
// spans.
//
// Each batch run is one trace: a "batch.run" root span with one
// "parse.clause" child per trigger clause. Spans are exported to an OTLP
// gRPC collector.
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, "batch.run",
//	    trace.WithAttributes(tracing.RunAttributes(runID, corpus, total, workers)...))
//	defer span.End()
//
// # Configuration
//
//	telemetry:
//	  tracing:
//	    enabled: true
//	    endpoint: localhost:4317
//	    insecure: true
//	    sampler: ratio       # always, never, ratio
//	    sample_ratio: 0.1
//
// # Sampling
//
// Samplers are parent based: the decision taken for a run's root span
// applies to all of its clause spans, so a sampled run is always complete.
//
// A nil *Tracer is valid and starts no-op spans.
package tracing
