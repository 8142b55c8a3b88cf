// Package logging provides structured logging for the parse pipeline.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON, text, and console formats
//   - Context-aware logging with run IDs, card names and clauses
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logger.Info("Batch finished",
//	    "cards", 120,
//	    "failed", 3,
//	)
//
//	ctx = logging.WithRunID(ctx, runID)
//	ctx = logging.WithCard(ctx, "Grizzly Bears")
//	logger.WarnContext(ctx, "Clause failed to parse")  // Includes run_id and card
//
// The trigger parser itself never logs. Logging happens in the batch
// runner, the corpus watcher, the results store and the CLI.
package logging
