// Package logging builds the structured loggers used by astroncheck.
//
// # Overview
//
// The package wraps Go's log/slog package to provide:
//   - JSON, text and console output formats
//   - Configurable log levels (debug, info, warn, error)
//   - Context-aware records carrying the run ID and file being checked
//
// # Usage
//
//	logger, err := logging.Setup(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	ctx = logging.WithRunID(ctx, runID)
//	ctx = logging.WithFile(ctx, "astrond.yml")
//	logger.InfoContext(ctx, "Configuration checked", "verdict", "Valid")
//	// {"level":"INFO","msg":"Configuration checked","verdict":"Valid","run_id":"...","file":"astrond.yml"}
//
// Components log through logging.Component("name"), which tags records with
// the component that produced them.
package logging
