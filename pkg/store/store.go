package store

import (
	"context"
	"time"

	"demystify-mtg/demystify/pkg/batch"
)

// Store defines the interface for batch run persistence.
// Implementations must be safe for concurrent use.
type Store interface {
	// SaveRun persists a run summary and its results.
	SaveRun(ctx context.Context, run *batch.Run) error

	// GetRun loads a run by id. Returns ErrRunNotFound for unknown ids.
	GetRun(ctx context.Context, id string) (*batch.Run, error)

	// LatestRun loads the most recent run. Returns ErrRunNotFound if
	// nothing has been stored.
	LatestRun(ctx context.Context) (*batch.Run, error)

	// ListRuns returns up to limit run summaries, newest first.
	ListRuns(ctx context.Context, limit int) ([]batch.Summary, error)

	// Failures returns the failed results of a run.
	Failures(ctx context.Context, id string) ([]batch.Result, error)

	// DeleteBefore removes runs started before t.
	DeleteBefore(ctx context.Context, t time.Time) (int, error)

	// Close releases any resources held by the store.
	Close() error
}

var _ Store = (*SQLiteStore)(nil)
