package logging

import (
	"context"
	"log/slog"
)

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for the identifier of one check run.
	RunIDKey contextKey = "run_id"

	// FileKey is the context key for the configuration file being checked.
	FileKey contextKey = "file"
)

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the run ID from the context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// WithFile adds the configuration file path to the context.
func WithFile(ctx context.Context, file string) context.Context {
	return context.WithValue(ctx, FileKey, file)
}

// GetFile retrieves the configuration file path from the context.
func GetFile(ctx context.Context) string {
	if file, ok := ctx.Value(FileKey).(string); ok {
		return file
	}
	return ""
}

// ContextAttrs extracts the common log fields stored in ctx.
func ContextAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr
	if runID := GetRunID(ctx); runID != "" {
		attrs = append(attrs, slog.String(string(RunIDKey), runID))
	}
	if file := GetFile(ctx); file != "" {
		attrs = append(attrs, slog.String(string(FileKey), file))
	}
	return attrs
}

// contextHandler adds the fields from ContextAttrs to every record logged
// through one of the *Context methods.
type contextHandler struct {
	slog.Handler
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		r.AddAttrs(ContextAttrs(ctx)...)
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name)}
}
