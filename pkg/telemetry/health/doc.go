// Package health exposes liveness and readiness probes for long-running
// check processes (astroncheck check --watch).
//
// # Endpoints
//
//   - /healthz: the process is running (always 200)
//   - /readyz: every registered check passed (200), otherwise 503
//   - /version: build information
//
// # Usage
//
//	checker := health.New(5 * time.Second)
//	var runs health.RunTracker
//	checker.RegisterCheck("last_run", runs.Check)
//
//	mux := http.NewServeMux()
//	checker.Register(mux, health.VersionInfo{Version: version})
//
// RunTracker turns the outcome of the most recent check run into a
// readiness check, so an orchestrator can see when the watched
// configuration has become invalid.
package health
