package watch

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduler_Runs(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler("@every 1s", func(context.Context) { runs.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !s.IsRunning() {
		t.Fatal("scheduler should be running")
	}
	if next := s.NextRun(); next == nil || next.Before(time.Now().Add(-time.Second)) {
		t.Errorf("NextRun() = %v", next)
	}
	if err := s.Start(ctx); err == nil {
		t.Error("second Start() should fail")
	}

	deadline := time.Now().Add(3 * time.Second)
	for runs.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	if runs.Load() == 0 {
		t.Fatal("job never ran")
	}

	s.Stop()
	if s.IsRunning() {
		t.Error("scheduler should be stopped")
	}
}

func TestScheduler_StopsOnCancel(t *testing.T) {
	s := NewScheduler("*/5 * * * *", func(context.Context) {})
	ctx, cancel := context.WithCancel(context.Background())

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for s.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	if s.IsRunning() {
		t.Error("scheduler still running after context cancel")
	}
}

func TestScheduler_Empty(t *testing.T) {
	s := NewScheduler("", func(context.Context) {})
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if s.IsRunning() {
		t.Error("empty schedule should not run")
	}
	if s.NextRun() != nil {
		t.Error("NextRun() should be nil without entries")
	}
}

func TestScheduler_Invalid(t *testing.T) {
	s := NewScheduler("every tuesday", func(context.Context) {})
	if err := s.Start(context.Background()); err == nil {
		t.Error("Start() with an invalid spec should fail")
	}
}
