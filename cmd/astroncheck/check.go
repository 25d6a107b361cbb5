package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"astron-hq/astroncheck/pkg/cli"
	"astron-hq/astroncheck/pkg/config"
	"astron-hq/astroncheck/pkg/lint"
	"astron-hq/astroncheck/pkg/schema"
	"astron-hq/astroncheck/pkg/telemetry/logging"
	"astron-hq/astroncheck/pkg/telemetry/metrics"
	"astron-hq/astroncheck/pkg/telemetry/tracing"
	"astron-hq/astroncheck/pkg/validator"
)

var checkFlags struct {
	file        string
	dir         string
	format      string
	watch       bool
	schedule    string
	metricsAddr string
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate Astron configuration files",
	Long: `Validate Astron cluster configuration files.

Every file gets a verdict, Valid or Invalid, followed by all of its findings.
A file that cannot be read or parsed is reported as Invalid.

Examples:
  # Check a single file
  astroncheck check --file astrond.yml

  # Check a directory
  astroncheck check --dir configs/

  # JSON or CSV output for CI
  astroncheck check --dir configs/ --format json
  astroncheck check --dir configs/ --format csv > findings.csv

  # Keep running: re-check on change and every hour
  astroncheck check --dir configs/ --watch --schedule "@hourly" --metrics-addr :9102`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFlags.file, "file", "f", "", "configuration file to validate")
	checkCmd.Flags().StringVarP(&checkFlags.dir, "dir", "d", "", "directory of configuration files")
	checkCmd.Flags().StringVar(&checkFlags.format, "format", "text", "output format: text, json, csv")
	checkCmd.Flags().BoolVarP(&checkFlags.watch, "watch", "w", false, "re-validate when files change")
	checkCmd.Flags().StringVar(&checkFlags.schedule, "schedule", "", "cron expression for periodic re-validation")
	checkCmd.Flags().StringVar(&checkFlags.metricsAddr, "metrics-addr", "", "serve metrics and health probes on this address while running")
	checkCmd.MarkFlagsMutuallyExclusive("file", "dir")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target, err := checkTarget()
	if err != nil {
		return err
	}
	format, err := cli.ParseFormat(checkFlags.format)
	if err != nil {
		return err
	}

	cfg := config.GetConfig()
	schedule := checkFlags.schedule
	if schedule == "" {
		schedule = cfg.Watch.Schedule
	}
	metricsAddr := checkFlags.metricsAddr
	if metricsAddr == "" {
		metricsAddr = cfg.Metrics.Address
	}
	longRunning := checkFlags.watch || schedule != ""

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tracer, err := tracing.New(&cfg.Tracing, tracing.WithServiceVersion(Version))
	if err != nil {
		return cli.NewConfigError("tracing", err.Error())
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tracer.Shutdown(shutdownCtx)
	}()

	collector := metrics.NewCollector(&cfg.Metrics, nil)
	linter := newLinter(cfg, collector, tracer)

	out := cmd.OutOrStdout()
	run, err := linter.CheckPath(ctx, lint.TriggerInitial, target)
	if err != nil {
		return err
	}
	if err := writeRun(out, format, run); err != nil {
		return err
	}

	if !longRunning {
		return runError(run)
	}

	return monitor(ctx, monitorOptions{
		target:      target,
		format:      format,
		out:         out,
		watch:       checkFlags.watch,
		schedule:    schedule,
		metricsAddr: metricsAddr,
		settings:    cfg,
		linter:      linter,
		collector:   collector,
		initial:     run,
	})
}

// checkTarget returns the file or directory named by the flags.
func checkTarget() (string, error) {
	switch {
	case checkFlags.file != "":
		return checkFlags.file, nil
	case checkFlags.dir != "":
		return checkFlags.dir, nil
	default:
		return "", fmt.Errorf("either --file or --dir must be specified")
	}
}

// newLinter builds a linter from the loaded settings.
func newLinter(cfg *config.Config, collector *metrics.Collector, tracer *tracing.Tracer) *lint.Linter {
	reg := schema.Builtin(cfg.Validation.ChannelPolicy())
	return lint.New(lint.Options{
		Validator:   validator.New(reg),
		MaxFileSize: cfg.Validation.MaxFileSize,
		Extensions:  cfg.Watch.Extensions,
		Metrics:     collector,
		Tracer:      tracer,
		Logger:      logging.Component("lint"),
	})
}

func writeRun(w io.Writer, format cli.OutputFormat, run lint.Run) error {
	if format == cli.FormatText {
		return run.WriteText(w)
	}
	return cli.NewFormatter(format).FormatTo(w, run)
}

// runError turns an invalid run into a CommandError.
func runError(run lint.Run) error {
	if run.Valid() {
		return nil
	}
	return cli.NewCommandError("check", fmt.Errorf("%d of %d file(s) invalid", run.Invalid(), len(run.Results)))
}
