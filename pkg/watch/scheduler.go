package watch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler re-runs a job on a cron schedule, e.g. to re-validate
// configuration files that may be changed by deployment tooling without
// filesystem events reaching this host.
type Scheduler struct {
	spec    string
	job     func(ctx context.Context)
	cron    *cron.Cron
	mu      sync.Mutex
	logger  *slog.Logger
	running bool
}

// NewScheduler creates a scheduler running job on spec.
//
// Common cron expressions:
//   - "*/5 * * * *"  - Every 5 minutes
//   - "0 * * * *"    - Hourly
//   - "@every 30s"   - Every 30 seconds
func NewScheduler(spec string, job func(ctx context.Context)) *Scheduler {
	return &Scheduler{
		spec:   spec,
		job:    job,
		cron:   cron.New(),
		logger: slog.Default().With("component", "watch.scheduler"),
	}
}

// Start begins running the job on schedule until ctx is cancelled or Stop
// is called. An empty spec does nothing.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.spec == "" {
		s.logger.Info("schedule not configured, skipping scheduler")
		return nil
	}
	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if _, err := cron.ParseStandard(s.spec); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.spec, err)
	}

	if _, err := s.cron.AddFunc(s.spec, func() {
		s.logger.Debug("scheduled check started")
		s.job(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule check: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("scheduler started", "schedule", s.spec)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops the scheduler and waits for a running job to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		<-s.cron.Stop().Done()
		s.running = false
		s.logger.Info("scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled run, or nil when nothing is scheduled.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
