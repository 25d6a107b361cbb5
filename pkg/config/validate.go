package config

import (
	"fmt"
	"net"
	"slices"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "logging.level").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:\n", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any rule fails. All errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateValidation(&cfg.Validation)...)
	errs = append(errs, validateLogging(&cfg.Logging)...)
	errs = append(errs, validateMetrics(&cfg.Metrics)...)
	errs = append(errs, validateWatch(&cfg.Watch)...)
	errs = append(errs, validateTracing(&cfg.Tracing)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateValidation(cfg *ValidationConfig) []FieldError {
	var errs []FieldError

	r := cfg.ReservedChannels
	if r.Min > r.Max {
		errs = append(errs, FieldError{
			Field:   "validation.reserved_channels",
			Message: fmt.Sprintf("min (%d) must not exceed max (%d)", r.Min, r.Max),
		})
	}
	if cfg.MaxFileSize < 0 {
		errs = append(errs, FieldError{
			Field:   "validation.max_file_size",
			Message: "must not be negative",
		})
	}

	return errs
}

func validateLogging(cfg *LoggingConfig) []FieldError {
	var errs []FieldError

	validLevels := []string{"debug", "info", "warn", "warning", "error"}
	if !slices.Contains(validLevels, strings.ToLower(cfg.Level)) {
		errs = append(errs, FieldError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level %q (must be one of: debug, info, warn, error)", cfg.Level),
		})
	}

	validFormats := []string{"json", "text", "console"}
	if !slices.Contains(validFormats, strings.ToLower(cfg.Format)) {
		errs = append(errs, FieldError{
			Field:   "logging.format",
			Message: fmt.Sprintf("invalid format %q (must be one of: json, text, console)", cfg.Format),
		})
	}

	return errs
}

func validateMetrics(cfg *MetricsConfig) []FieldError {
	var errs []FieldError

	if !strings.HasPrefix(cfg.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "metrics.path",
			Message: fmt.Sprintf("path %q must start with /", cfg.Path),
		})
	}
	if cfg.Address != "" {
		if _, _, err := net.SplitHostPort(cfg.Address); err != nil {
			errs = append(errs, FieldError{
				Field:   "metrics.address",
				Message: fmt.Sprintf("invalid listen address %q: %v", cfg.Address, err),
			})
		}
	}
	for i := 1; i < len(cfg.DurationBuckets); i++ {
		if cfg.DurationBuckets[i] <= cfg.DurationBuckets[i-1] {
			errs = append(errs, FieldError{
				Field:   "metrics.duration_buckets",
				Message: "buckets must be strictly increasing",
			})
			break
		}
	}

	return errs
}

func validateWatch(cfg *WatchConfig) []FieldError {
	var errs []FieldError

	if cfg.Debounce < 0 {
		errs = append(errs, FieldError{
			Field:   "watch.debounce",
			Message: "must not be negative",
		})
	}
	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, FieldError{
				Field:   "watch.extensions",
				Message: fmt.Sprintf("extension %q must start with a dot", ext),
			})
		}
	}
	if cfg.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "watch.schedule",
				Message: fmt.Sprintf("invalid cron expression %q: %v", cfg.Schedule, err),
			})
		}
	}

	return errs
}

func validateTracing(cfg *TracingConfig) []FieldError {
	var errs []FieldError

	if !slices.Contains([]string{"always", "never", "ratio"}, cfg.Sampler) {
		errs = append(errs, FieldError{
			Field:   "tracing.sampler",
			Message: fmt.Sprintf("invalid sampler %q (must be one of: always, never, ratio)", cfg.Sampler),
		})
	}
	if cfg.SampleRatio < 0 || cfg.SampleRatio > 1.0 {
		errs = append(errs, FieldError{
			Field:   "tracing.sample_ratio",
			Message: fmt.Sprintf("sample ratio must be between 0.0 and 1.0, got %g", cfg.SampleRatio),
		})
	}
	if cfg.Exporter != "otlp" {
		errs = append(errs, FieldError{
			Field:   "tracing.exporter",
			Message: fmt.Sprintf("unsupported exporter %q (must be otlp)", cfg.Exporter),
		})
	}
	if cfg.Enabled && cfg.Endpoint == "" {
		errs = append(errs, FieldError{
			Field:   "tracing.endpoint",
			Message: "tracing endpoint is required when tracing is enabled",
		})
	}
	if cfg.OTLP.Timeout < 0 {
		errs = append(errs, FieldError{
			Field:   "tracing.otlp.timeout",
			Message: "must not be negative",
		})
	}

	return errs
}
