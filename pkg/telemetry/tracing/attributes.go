package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"astron-hq/astroncheck/pkg/report"
)

// Span names.
const (
	SpanRun       = "astroncheck.run"
	SpanCheckFile = "astroncheck.check_file"
)

// Attribute keys use the "astroncheck.*" namespace.
const (
	AttrRunID    = "astroncheck.run_id"
	AttrTrigger  = "astroncheck.trigger"
	AttrFiles    = "astroncheck.files"
	AttrInvalid  = "astroncheck.files_invalid"
	AttrFile     = "astroncheck.file"
	AttrVerdict  = "astroncheck.verdict"
	AttrFindings = "astroncheck.findings"

	AttrFindingPath     = "astroncheck.finding.path"
	AttrFindingCategory = "astroncheck.finding.category"
	AttrFindingMessage  = "astroncheck.finding.message"
	AttrFindingLine     = "astroncheck.finding.line"
)

// EventFinding is the span event recorded for each finding.
const EventFinding = "finding"

// maxFindingEvents caps the events recorded on one span.
const maxFindingEvents = 64

// SetRunAttributes sets the attributes of a run span.
//
// Example:
//
//	SetRunAttributes(span, run.ID, "watch", 3, 1)
func SetRunAttributes(span trace.Span, runID, trigger string, files, invalid int) {
	span.SetAttributes(
		attribute.String(AttrRunID, runID),
		attribute.String(AttrTrigger, trigger),
		attribute.Int(AttrFiles, files),
		attribute.Int(AttrInvalid, invalid),
	)
}

// SetReportAttributes sets the verdict and finding count of one file on span
// and records one event per finding.
func SetReportAttributes(span trace.Span, file string, rep report.Report) {
	span.SetAttributes(
		attribute.String(AttrFile, file),
		attribute.String(AttrVerdict, rep.Verdict.String()),
		attribute.Int(AttrFindings, len(rep.Findings)),
	)
	RecordFindings(span, rep.Findings)
}

// RecordFindings adds a "finding" event for each finding, up to a fixed cap.
func RecordFindings(span trace.Span, findings []report.Finding) {
	if !span.IsRecording() {
		return
	}
	for i, f := range findings {
		if i == maxFindingEvents {
			break
		}
		attrs := []attribute.KeyValue{
			attribute.String(AttrFindingPath, f.Path),
			attribute.String(AttrFindingCategory, string(f.Category)),
			attribute.String(AttrFindingMessage, f.Message),
		}
		if f.Location.Line > 0 {
			attrs = append(attrs, attribute.Int(AttrFindingLine, f.Location.Line))
		}
		span.AddEvent(EventFinding, trace.WithAttributes(attrs...))
	}
}
