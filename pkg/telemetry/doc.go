// Package telemetry groups the observability packages of astroncheck.
//
// # Components
//
//   - logging: log/slog setup with run and file context attributes
//   - metrics: Prometheus counters and histograms for validations and runs
//   - tracing: OpenTelemetry spans per run and per checked file
//   - health: liveness and readiness probes for watch mode
//
// Metrics and health share one HTTP listener:
//
//	checker := health.New(5 * time.Second)
//	err := collector.Serve(ctx, cfg.Metrics.Address, func(mux *http.ServeMux) {
//	    checker.Register(mux, health.VersionInfo{Version: version})
//	})
package telemetry
