package logging

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for batch run identifiers.
	RunIDKey contextKey = "run_id"

	// CorpusKey is the context key for the corpus file being parsed.
	CorpusKey contextKey = "corpus"

	// CardKey is the context key for card names.
	CardKey contextKey = "card"

	// ClauseKey is the context key for the trigger clause text.
	ClauseKey contextKey = "clause"
)

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the run ID from the context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// WithCorpus adds a corpus path to the context.
func WithCorpus(ctx context.Context, corpus string) context.Context {
	return context.WithValue(ctx, CorpusKey, corpus)
}

// GetCorpus retrieves the corpus path from the context.
func GetCorpus(ctx context.Context) string {
	if corpus, ok := ctx.Value(CorpusKey).(string); ok {
		return corpus
	}
	return ""
}

// WithCard adds a card name to the context.
func WithCard(ctx context.Context, card string) context.Context {
	return context.WithValue(ctx, CardKey, card)
}

// GetCard retrieves the card name from the context.
func GetCard(ctx context.Context) string {
	if card, ok := ctx.Value(CardKey).(string); ok {
		return card
	}
	return ""
}

// WithClause adds a trigger clause to the context.
func WithClause(ctx context.Context, clause string) context.Context {
	return context.WithValue(ctx, ClauseKey, clause)
}

// GetClause retrieves the trigger clause from the context.
func GetClause(ctx context.Context) string {
	if clause, ok := ctx.Value(ClauseKey).(string); ok {
		return clause
	}
	return ""
}

// extractContextFields extracts common fields from context for logging,
// including the trace id of an active span.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if runID := GetRunID(ctx); runID != "" {
		fields = append(fields, "run_id", runID)
	}
	if corpus := GetCorpus(ctx); corpus != "" {
		fields = append(fields, "corpus", corpus)
	}
	if card := GetCard(ctx); card != "" {
		fields = append(fields, "card", card)
	}
	if clause := GetClause(ctx); clause != "" {
		fields = append(fields, "clause", clause)
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields, "trace_id", sc.TraceID().String())
	}

	return fields
}

// ContextLogger is a logger that automatically includes context fields.
type ContextLogger struct {
	logger *Logger
	ctx    context.Context
}

// NewContextLogger creates a logger that automatically includes context fields.
func NewContextLogger(logger *Logger, ctx context.Context) *ContextLogger {
	return &ContextLogger{
		logger: logger,
		ctx:    ctx,
	}
}

// Debug logs a debug message with context fields.
func (cl *ContextLogger) Debug(msg string, args ...any) {
	cl.logger.DebugContext(cl.ctx, msg, args...)
}

// Info logs an info message with context fields.
func (cl *ContextLogger) Info(msg string, args ...any) {
	cl.logger.InfoContext(cl.ctx, msg, args...)
}

// Warn logs a warning message with context fields.
func (cl *ContextLogger) Warn(msg string, args ...any) {
	cl.logger.WarnContext(cl.ctx, msg, args...)
}

// Error logs an error message with context fields.
func (cl *ContextLogger) Error(msg string, args ...any) {
	cl.logger.ErrorContext(cl.ctx, msg, args...)
}

// With creates a new context logger with additional fields.
func (cl *ContextLogger) With(args ...any) *ContextLogger {
	return &ContextLogger{
		logger: cl.logger.With(args...),
		ctx:    cl.ctx,
	}
}
