package lint

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"astron-hq/astroncheck/pkg/document"
	"astron-hq/astroncheck/pkg/report"
	"astron-hq/astroncheck/pkg/telemetry/logging"
	"astron-hq/astroncheck/pkg/telemetry/metrics"
	"astron-hq/astroncheck/pkg/telemetry/tracing"
	"astron-hq/astroncheck/pkg/validator"
)

// Run triggers, used as the metrics label and in logs.
const (
	TriggerInitial  = "initial"
	TriggerWatch    = "watch"
	TriggerSchedule = "schedule"
)

// Options configures a Linter. Zero values select defaults.
type Options struct {
	// Validator checks parsed documents. Nil selects validator.New(nil).
	Validator *validator.Validator

	// MaxFileSize rejects larger files. Zero selects document.DefaultMaxFileSize.
	MaxFileSize int64

	// Extensions selects files when a directory is checked.
	Extensions []string

	// Metrics records outcomes. Nil disables recording.
	Metrics *metrics.Collector

	// Tracer records one span per run and per file. Nil disables tracing.
	Tracer *tracing.Tracer

	// Logger receives one record per file and per run.
	Logger *slog.Logger
}

// Linter checks configuration files. It is safe for concurrent use.
type Linter struct {
	validator  *validator.Validator
	maxSize    int64
	extensions []string
	metrics    *metrics.Collector
	tracer     *tracing.Tracer
	logger     *slog.Logger
}

// New creates a Linter.
func New(opts Options) *Linter {
	if opts.Validator == nil {
		opts.Validator = validator.New(nil)
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = document.DefaultMaxFileSize
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".yaml", ".yml"}
	}
	if opts.Tracer == nil {
		opts.Tracer = tracing.Noop()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Component("lint")
	}

	return &Linter{
		validator:  opts.Validator,
		maxSize:    opts.MaxFileSize,
		extensions: opts.Extensions,
		metrics:    opts.Metrics,
		tracer:     opts.Tracer,
		logger:     opts.Logger,
	}
}

// Result is the outcome of checking one file.
type Result struct {
	File     string           `json:"file"`
	Verdict  report.Verdict   `json:"verdict"`
	Findings []report.Finding `json:"findings"`
	Duration time.Duration    `json:"-"`

	// Err is set when the file could not be read or parsed. The failure is
	// also reported as a structural finding.
	Err error `json:"-"`
}

// Valid reports whether the file passed validation.
func (r Result) Valid() bool {
	return r.Verdict == report.Valid
}

// Report returns the file's findings as a validation report.
func (r Result) Report() report.Report {
	return report.New(r.Findings)
}

// CheckFile parses and validates the file at path.
func (l *Linter) CheckFile(ctx context.Context, path string) Result {
	ctx = logging.WithFile(ctx, path)
	ctx, span := l.tracer.Start(ctx, tracing.SpanCheckFile)
	defer span.End()
	start := time.Now()

	doc, err := document.ParseFile(path, l.maxSize)
	if err != nil {
		res := failedResult(path, err)
		res.Duration = time.Since(start)
		if l.metrics != nil {
			l.metrics.RecordParseFailure()
		}
		tracing.SetError(span, err)
		tracing.SetReportAttributes(span, path, res.Report())
		l.logger.WarnContext(ctx, "Configuration could not be parsed", "error", err)
		return res
	}

	rep := l.validator.Validate(doc)
	duration := time.Since(start)
	if l.metrics != nil {
		l.metrics.RecordReport(rep, duration)
	}
	tracing.SetReportAttributes(span, path, rep)

	l.logger.DebugContext(ctx, "Configuration checked",
		"verdict", rep.Verdict.String(),
		"findings", len(rep.Findings),
		"duration_ms", duration.Milliseconds(),
	)

	return Result{
		File:     path,
		Verdict:  rep.Verdict,
		Findings: rep.Findings,
		Duration: duration,
	}
}

// failedResult turns a read or parse error into an Invalid result.
func failedResult(path string, err error) Result {
	loc := document.Location{File: path}
	var perr *document.ParseError
	if errors.As(err, &perr) {
		loc.Line = perr.Line
	}

	rep := report.New([]report.Finding{{
		Message:  err.Error(),
		Category: report.CategoryStructural,
		Location: loc,
	}})
	return Result{
		File:     path,
		Verdict:  rep.Verdict,
		Findings: rep.Findings,
		Err:      err,
	}
}

// CheckFiles checks every path in order under a fresh run ID.
func (l *Linter) CheckFiles(ctx context.Context, trigger string, paths []string) Run {
	run := Run{
		ID:        uuid.New().String(),
		Trigger:   trigger,
		StartedAt: time.Now().UTC(),
		Results:   make([]Result, 0, len(paths)),
	}
	ctx = logging.WithRunID(ctx, run.ID)
	ctx, span := l.tracer.Start(ctx, tracing.SpanRun)
	defer span.End()

	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		run.Results = append(run.Results, l.CheckFile(ctx, path))
	}

	invalid := run.Invalid()
	if l.metrics != nil {
		l.metrics.RecordRun(trigger, len(run.Results), invalid)
	}
	tracing.SetRunAttributes(span, run.ID, trigger, len(run.Results), invalid)

	l.logger.InfoContext(ctx, "Check run completed",
		"trigger", trigger,
		"files", len(run.Results),
		"invalid", invalid,
		"duration_ms", time.Since(run.StartedAt).Milliseconds(),
	)

	return run
}

// CheckPath checks a single file, or every matching file below a directory.
func (l *Linter) CheckPath(ctx context.Context, trigger, path string) (Run, error) {
	files, err := Discover(path, l.extensions)
	if err != nil {
		return Run{}, err
	}
	return l.CheckFiles(ctx, trigger, files), nil
}
