package config

import (
	"time"

	"astron-hq/astroncheck/pkg/check"
	"astron-hq/astroncheck/pkg/schema"
)

// Config is the root settings structure for astroncheck.
// It is loaded from an optional YAML file and may be overridden by
// ASTRONCHECK_* environment variables.
type Config struct {
	// Validation controls how configuration documents are checked.
	Validation ValidationConfig `yaml:"validation"`

	// Logging controls structured log output.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics controls the Prometheus collector and its HTTP endpoint.
	Metrics MetricsConfig `yaml:"metrics"`

	// Watch controls re-validation on file changes and on a schedule.
	Watch WatchConfig `yaml:"watch"`

	// Tracing controls OpenTelemetry span export.
	Tracing TracingConfig `yaml:"tracing"`
}

// ValidationConfig contains settings for the validation engine.
type ValidationConfig struct {
	// ReservedChannels is the band of channel ids operators may not assign.
	// Both bounds zero disables the reserved range check.
	// Default: 1-999
	ReservedChannels ChannelRange `yaml:"reserved_channels"`

	// MaxFileSize is the largest configuration file accepted, in bytes.
	// Default: 1048576 (1MiB)
	MaxFileSize int64 `yaml:"max_file_size"`
}

// ChannelRange is an inclusive range of channel ids.
type ChannelRange struct {
	Min uint64 `yaml:"min"`
	Max uint64 `yaml:"max"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled turns metric recording on or off.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "astron"
	Namespace string `yaml:"namespace"`

	// Subsystem is the second metric name component.
	// Default: "configcheck"
	Subsystem string `yaml:"subsystem"`

	// Path is the HTTP path metrics are served on.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Address is the listen address of the metrics endpoint. Empty means
	// metrics are recorded but not served.
	Address string `yaml:"address"`

	// DurationBuckets are the histogram buckets for validation duration,
	// in seconds.
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// WatchConfig contains settings for repeated validation.
type WatchConfig struct {
	// Debounce coalesces bursts of file events into one re-validation.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`

	// Extensions are the file extensions considered configuration files.
	// Default: [".yaml", ".yml"]
	Extensions []string `yaml:"extensions"`

	// SkipHidden ignores dot-files such as editor swap files.
	// Default: true
	SkipHidden *bool `yaml:"skip_hidden"`

	// Schedule is an optional cron expression for periodic re-validation.
	Schedule string `yaml:"schedule"`
}

// TracingConfig contains OpenTelemetry tracing settings.
type TracingConfig struct {
	// Enabled controls whether spans are recorded and exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of runs to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Exporter determines the span exporter. Only "otlp" is supported.
	// Default: "otlp"
	Exporter string `yaml:"exporter"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "astroncheck"
	ServiceName string `yaml:"service_name"`

	// OTLP contains OTLP exporter specific configuration.
	OTLP OTLPConfig `yaml:"otlp"`
}

// OTLPConfig contains OTLP exporter configuration.
type OTLPConfig struct {
	// Insecure disables TLS for the collector connection.
	Insecure bool `yaml:"insecure"`

	// Timeout bounds each export.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}

// ChannelPolicy converts the reserved range into the schema policy used by
// the built-in role schemas.
func (v ValidationConfig) ChannelPolicy() schema.ChannelPolicy {
	return schema.ChannelPolicy{
		Reserved: check.Band{Min: v.ReservedChannels.Min, Max: v.ReservedChannels.Max},
	}
}
