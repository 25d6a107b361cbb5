package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"astron-hq/astroncheck/pkg/cli"
	"astron-hq/astroncheck/pkg/config"
	"astron-hq/astroncheck/pkg/lint"
	"astron-hq/astroncheck/pkg/telemetry/health"
	"astron-hq/astroncheck/pkg/telemetry/logging"
	"astron-hq/astroncheck/pkg/telemetry/metrics"
	"astron-hq/astroncheck/pkg/watch"
)

type monitorOptions struct {
	target      string
	format      cli.OutputFormat
	out         io.Writer
	watch       bool
	schedule    string
	metricsAddr string
	settings    *config.Config
	linter      *lint.Linter
	collector   *metrics.Collector
	initial     lint.Run
}

// monitor keeps re-validating target until ctx is cancelled or a signal
// arrives. File changes trigger a run over the changed files; the schedule
// triggers a run over the whole target.
func monitor(ctx context.Context, opts monitorOptions) error {
	ctx, stop := cli.SetupSignalHandler(ctx)
	defer stop()

	logger := logging.Component("check")

	var tracker health.RunTracker
	tracker.Record(opts.initial.ID, len(opts.initial.Results), opts.initial.Invalid())

	checker := health.New(5 * time.Second)
	checker.RegisterCheck("last_run", tracker.Check)

	var outMu sync.Mutex
	publish := func(run lint.Run) {
		outMu.Lock()
		defer outMu.Unlock()

		tracker.Record(run.ID, len(run.Results), run.Invalid())
		if err := writeRun(opts.out, opts.format, run); err != nil {
			logger.Error("Failed to write results", "error", err)
		}
	}

	var wg sync.WaitGroup
	errCh := make(chan error, 2)

	if opts.schedule != "" {
		sched := watch.NewScheduler(opts.schedule, func(ctx context.Context) {
			run, err := opts.linter.CheckPath(ctx, lint.TriggerSchedule, opts.target)
			if err != nil {
				logger.ErrorContext(ctx, "Scheduled check failed", "error", err)
				return
			}
			publish(run)
		})
		if err := sched.Start(ctx); err != nil {
			return cli.NewConfigError("schedule", err.Error())
		}
		defer sched.Stop()

		checker.RegisterCheck("scheduler", func(context.Context) error {
			if !sched.IsRunning() {
				return errors.New("scheduler is not running")
			}
			return nil
		})
	}

	if opts.watch {
		wcfg := watch.DefaultConfig(opts.target)
		wcfg.Debounce = opts.settings.Watch.Debounce
		wcfg.Extensions = opts.settings.Watch.Extensions
		if opts.settings.Watch.SkipHidden != nil {
			wcfg.SkipHidden = *opts.settings.Watch.SkipHidden
		}

		fw, err := watch.NewFileWatcher(wcfg, logging.Component("watch"))
		if err != nil {
			return err
		}

		var watching atomic.Bool
		watching.Store(true)
		checker.RegisterCheck("watcher", func(context.Context) error {
			if !watching.Load() {
				return errors.New("file watcher is not running")
			}
			return nil
		})

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer watching.Store(false)
			err := fw.Watch(ctx, func(ctx context.Context, paths []string) error {
				files := existing(paths)
				if len(files) == 0 {
					return nil
				}
				publish(opts.linter.CheckFiles(ctx, lint.TriggerWatch, files))
				return nil
			})
			if err != nil {
				errCh <- fmt.Errorf("file watcher: %w", err)
			}
		}()
	}

	if opts.metricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := opts.collector.Serve(ctx, opts.metricsAddr, func(mux *http.ServeMux) {
				checker.Register(mux, versionInfo())
			})
			if err != nil {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	logger.Info("Monitoring configuration",
		"target", opts.target,
		"watch", opts.watch,
		"schedule", opts.schedule,
		"metrics_addr", opts.metricsAddr,
	)

	var err error
	select {
	case <-ctx.Done():
	case err = <-errCh:
		stop()
	}
	wg.Wait()

	return err
}

// existing drops paths that no longer exist, such as deleted files.
func existing(paths []string) []string {
	out := paths[:0:0]
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			out = append(out, p)
		}
	}
	return out
}
