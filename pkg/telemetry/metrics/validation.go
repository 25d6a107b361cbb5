package metrics

import (
	"time"

	"astron-hq/astroncheck/pkg/config"
	"astron-hq/astroncheck/pkg/report"

	"github.com/prometheus/client_golang/prometheus"
)

// ValidationMetrics tracks per-document validation outcomes.
//
// Metrics:
//   - astron_configcheck_validations_total: Documents validated, by verdict
//   - astron_configcheck_findings_total: Findings reported, by category
//   - astron_configcheck_validation_duration_seconds: Time spent validating
//   - astron_configcheck_parse_failures_total: Files that could not be parsed
type ValidationMetrics struct {
	validationsTotal   *prometheus.CounterVec
	findingsTotal      *prometheus.CounterVec
	validationDuration *prometheus.HistogramVec
	parseFailures      prometheus.Counter
}

// NewValidationMetrics creates and registers validation metrics with the
// provided registry.
func NewValidationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ValidationMetrics {
	vm := &ValidationMetrics{
		validationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validations_total",
				Help:      "Total number of configuration documents validated",
			},
			[]string{"verdict"},
		),

		findingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "findings_total",
				Help:      "Total number of validation findings",
			},
			[]string{"category"},
		),

		validationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validation_duration_seconds",
				Help:      "Duration of one validation pass in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"verdict"},
		),

		parseFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_failures_total",
				Help:      "Total number of configuration files that could not be parsed",
			},
		),
	}

	registry.MustRegister(
		vm.validationsTotal,
		vm.findingsTotal,
		vm.validationDuration,
		vm.parseFailures,
	)

	// Pre-create the bounded label values so they are exported as zero.
	for _, v := range []report.Verdict{report.Valid, report.Invalid} {
		vm.validationsTotal.WithLabelValues(v.String())
	}
	for _, c := range []report.Category{report.CategoryStructural, report.CategorySchema, report.CategoryField} {
		vm.findingsTotal.WithLabelValues(string(c))
	}

	return vm
}

// RecordReport records one validation report.
func (vm *ValidationMetrics) RecordReport(rep report.Report, duration time.Duration) {
	verdict := rep.Verdict.String()
	vm.validationsTotal.WithLabelValues(verdict).Inc()
	vm.validationDuration.WithLabelValues(verdict).Observe(duration.Seconds())

	for _, f := range rep.Findings {
		vm.findingsTotal.WithLabelValues(string(f.Category)).Inc()
	}
}

// RecordParseFailure records a file that could not be parsed.
func (vm *ValidationMetrics) RecordParseFailure() {
	vm.parseFailures.Inc()
}

// RunMetrics tracks check runs, each covering one or more files.
//
// Metrics:
//   - astron_configcheck_runs_total: Runs started, by trigger
//   - astron_configcheck_files_checked: Files checked in the last run
//   - astron_configcheck_files_invalid: Invalid files in the last run
//   - astron_configcheck_last_run_timestamp_seconds: Unix time of the last run
type RunMetrics struct {
	runsTotal    *prometheus.CounterVec
	filesChecked prometheus.Gauge
	filesInvalid prometheus.Gauge
	lastRun      prometheus.Gauge
}

// NewRunMetrics creates and registers run metrics with the provided registry.
func NewRunMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RunMetrics {
	rm := &RunMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_total",
				Help:      "Total number of check runs",
			},
			[]string{"trigger"},
		),

		filesChecked: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "files_checked",
				Help:      "Number of files checked in the last run",
			},
		),

		filesInvalid: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "files_invalid",
				Help:      "Number of invalid files in the last run",
			},
		),

		lastRun: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix timestamp of the last check run",
			},
		),
	}

	registry.MustRegister(
		rm.runsTotal,
		rm.filesChecked,
		rm.filesInvalid,
		rm.lastRun,
	)

	return rm
}

// RecordRun records one run.
func (rm *RunMetrics) RecordRun(trigger string, files, invalid int) {
	rm.runsTotal.WithLabelValues(trigger).Inc()
	rm.filesChecked.Set(float64(files))
	rm.filesInvalid.Set(float64(invalid))
	rm.lastRun.SetToCurrentTime()
}
