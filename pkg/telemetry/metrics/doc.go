// Package metrics provides Prometheus metrics for configuration checks.
//
// # Metrics
//
//   - validations_total{verdict}: documents validated, "Valid" or "Invalid"
//   - findings_total{category}: findings by structural/schema/field category
//   - validation_duration_seconds{verdict}: time spent in one validation pass
//   - parse_failures_total: files that could not be read or parsed
//   - runs_total{trigger}, files_checked, files_invalid,
//     last_run_timestamp_seconds: check runs started initially, by the file
//     watcher or by the schedule
//
// All names carry the configured namespace and subsystem, astron_configcheck_
// by default.
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Metrics, nil)
//
//	start := time.Now()
//	rep := validator.Validate(doc)
//	collector.RecordReport(rep, time.Since(start))
//
//	// Serve /metrics until ctx is cancelled
//	go collector.Serve(ctx, ":9102")
//
// Every collector uses its own registry; nothing is registered on the
// Prometheus default registry.
package metrics
