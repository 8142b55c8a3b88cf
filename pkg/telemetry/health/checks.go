package health

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"
)

// FileCheck fails when path cannot be read as a regular file.
func FileCheck(path string) CheckFunc {
	return func(ctx context.Context) error {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return fmt.Errorf("%s is not a regular file", path)
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		return f.Close()
	}
}

// Pinger is implemented by stores that can verify their connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingCheck fails when p cannot be reached.
func PingCheck(p Pinger) CheckFunc {
	return func(ctx context.Context) error {
		return p.Ping(ctx)
	}
}

// RunTracker remembers the outcome of the most recent batch run. Its
// Check fails until a run has completed, or when the last run was
// canceled before it finished.
type RunTracker struct {
	mu       sync.RWMutex
	runID    string
	status   string
	finished time.Time
}

// NewRunTracker creates a tracker with no completed run.
func NewRunTracker() *RunTracker {
	return &RunTracker{}
}

// Record stores the outcome of a finished run.
func (t *RunTracker) Record(runID, status string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.runID = runID
	t.status = status
	t.finished = time.Now()
}

// Last returns the id and status of the most recent run, or empty strings
// if none has completed.
func (t *RunTracker) Last() (runID, status string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.runID, t.status
}

// Check is a CheckFunc reporting on the most recent run.
func (t *RunTracker) Check(ctx context.Context) error {
	runID, status := t.Last()
	switch {
	case runID == "":
		return fmt.Errorf("no run has completed")
	case status == "canceled":
		return fmt.Errorf("run %s was canceled", runID)
	}
	return nil
}
