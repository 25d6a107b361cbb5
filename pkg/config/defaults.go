package config

import "time"

// Default values for configuration fields.
const (
	// Validation defaults
	DefaultReservedChannelMin = 1
	DefaultReservedChannelMax = 999
	DefaultMaxFileSize        = 1 << 20

	// Logging defaults
	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "text"

	// Metrics defaults
	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "astron"
	DefaultMetricsSubsystem = "configcheck"
	DefaultMetricsPath      = "/metrics"

	// Watch defaults
	DefaultWatchDebounce   = 100 * time.Millisecond
	DefaultWatchSkipHidden = true

	// Tracing defaults
	DefaultTracingSampler     = "always"
	DefaultTracingSampleRatio = 1.0
	DefaultTracingExporter    = "otlp"
	DefaultTracingService     = "astroncheck"
	DefaultTracingTimeout     = 10 * time.Second
)

// DefaultWatchExtensions are the file extensions watched by default.
var DefaultWatchExtensions = []string{".yaml", ".yml"}

// DefaultDurationBuckets cover validation runs from 10µs to 1s.
var DefaultDurationBuckets = []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}

// NewDefault returns a configuration with every default applied.
func NewDefault() *Config {
	cfg := &Config{
		Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
		Validation: ValidationConfig{
			ReservedChannels: ChannelRange{Min: DefaultReservedChannelMin, Max: DefaultReservedChannelMax},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with their defaults.
// Metrics.Enabled and Validation.ReservedChannels have meaningful zero
// values and are not touched; NewDefault seeds them and LoadConfig decodes
// the file over that seed.
func ApplyDefaults(cfg *Config) {
	// Validation defaults
	if cfg.Validation.MaxFileSize == 0 {
		cfg.Validation.MaxFileSize = DefaultMaxFileSize
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}

	// Metrics defaults
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if len(cfg.Metrics.DurationBuckets) == 0 {
		cfg.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
	if len(cfg.Watch.Extensions) == 0 {
		cfg.Watch.Extensions = append([]string(nil), DefaultWatchExtensions...)
	}
	if cfg.Watch.SkipHidden == nil {
		skip := DefaultWatchSkipHidden
		cfg.Watch.SkipHidden = &skip
	}

	// Tracing defaults
	if cfg.Tracing.Sampler == "" {
		cfg.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Tracing.SampleRatio == 0 {
		cfg.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Tracing.Exporter == "" {
		cfg.Tracing.Exporter = DefaultTracingExporter
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = DefaultTracingService
	}
	if cfg.Tracing.OTLP.Timeout == 0 {
		cfg.Tracing.OTLP.Timeout = DefaultTracingTimeout
	}
}
