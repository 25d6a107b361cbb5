package metrics

import (
	"time"

	"astron-hq/astroncheck/pkg/config"
	"astron-hq/astroncheck/pkg/report"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns every Prometheus metric recorded by astroncheck.
// Metrics are registered on a private registry so that several collectors
// (one per test, for instance) never collide.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	validation *ValidationMetrics
	runs       *RunMetrics
}

// NewCollector creates a collector with the specified configuration and
// Prometheus registry. If registry is nil, a new registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "astron",
//		Subsystem: "configcheck",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = config.DefaultDurationBuckets
	}

	return &Collector{
		config:     cfg,
		registry:   registry,
		validation: NewValidationMetrics(cfg, registry),
		runs:       NewRunMetrics(cfg, registry),
	}
}

// RecordReport records the outcome of validating one document.
//
// Example:
//
//	start := time.Now()
//	rep := validator.Validate(doc)
//	collector.RecordReport(rep, time.Since(start))
func (c *Collector) RecordReport(rep report.Report, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.validation.RecordReport(rep, duration)
}

// RecordParseFailure records a file that could not be read or parsed.
func (c *Collector) RecordParseFailure() {
	if !c.config.Enabled {
		return
	}

	c.validation.RecordParseFailure()
}

// RecordRun records one check run over a set of files.
//
// Parameters:
//   - trigger: what started the run ("initial", "watch", "schedule")
//   - files: number of files checked
//   - invalid: number of files with an Invalid verdict
func (c *Collector) RecordRun(trigger string, files, invalid int) {
	if !c.config.Enabled {
		return
	}

	c.runs.RecordRun(trigger, files, invalid)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
