// Package tracing provides OpenTelemetry tracing for check runs.
//
// Each run gets an "astroncheck.run" span with one "astroncheck.check_file"
// child per file. File spans carry the verdict and finding count, and one
// "finding" event per finding. Spans are exported over OTLP gRPC.
//
// # Sampling Strategies
//
//   - always: sample every run
//   - never: sample no runs
//   - ratio: sample a fraction of runs
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Tracing)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, tracing.SpanCheckFile)
//	defer span.End()
//	tracing.SetReportAttributes(span, path, rep)
//
// When tracing is disabled, New returns a noop tracer.
package tracing
