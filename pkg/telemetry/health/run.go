package health

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNoRun is reported by RunTracker before the first run completes.
var ErrNoRun = errors.New("no check run completed yet")

// RunTracker remembers the outcome of the most recent check run and
// reports it as a readiness check: the watched configuration is healthy
// when the last run found every file valid.
type RunTracker struct {
	mu      sync.RWMutex
	runID   string
	files   int
	invalid int
	at      time.Time
}

// Record stores the outcome of a completed run.
func (t *RunTracker) Record(runID string, files, invalid int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.runID = runID
	t.files = files
	t.invalid = invalid
	t.at = time.Now()
}

// LastRun returns the ID and completion time of the last recorded run.
func (t *RunTracker) LastRun() (string, time.Time) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.runID, t.at
}

// Check implements CheckFunc.
func (t *RunTracker) Check(ctx context.Context) error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.at.IsZero() {
		return ErrNoRun
	}
	if t.invalid > 0 {
		return fmt.Errorf("%d of %d file(s) invalid in run %s", t.invalid, t.files, t.runID)
	}
	return nil
}
