package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "ASTRONCHECK_"

// LoadConfig loads configuration from a YAML file at the specified path.
// The file is decoded over the defaults, so any field it leaves out keeps
// its default value. The result is validated.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := NewDefault()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration and applies environment
// variable overrides. An empty path starts from the defaults. Environment
// variables follow the naming convention ASTRONCHECK_SECTION_FIELD
// (e.g. ASTRONCHECK_LOGGING_LEVEL) and always take precedence over the file.
//
// The loading sequence is:
// 1. Load YAML from file (or start from defaults)
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	var cfg *Config
	if path == "" {
		cfg = NewDefault()
	} else {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies ASTRONCHECK_* variables to cfg.
// Malformed numeric, boolean or duration values are reported as field errors.
func applyEnvOverrides(cfg *Config) error {
	var errs []FieldError

	uintVar := func(name string, dst *uint64, field string) {
		if val := os.Getenv(EnvPrefix + name); val != "" {
			u, err := strconv.ParseUint(val, 10, 64)
			if err != nil {
				errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("invalid value %q from %s%s", val, EnvPrefix, name)})
				return
			}
			*dst = u
		}
	}

	// Validation overrides
	uintVar("VALIDATION_RESERVED_CHANNELS_MIN", &cfg.Validation.ReservedChannels.Min, "validation.reserved_channels.min")
	uintVar("VALIDATION_RESERVED_CHANNELS_MAX", &cfg.Validation.ReservedChannels.Max, "validation.reserved_channels.max")
	if val := os.Getenv(EnvPrefix + "VALIDATION_MAX_FILE_SIZE"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Validation.MaxFileSize = i
		} else {
			errs = append(errs, FieldError{Field: "validation.max_file_size", Message: fmt.Sprintf("invalid value %q", val)})
		}
	}

	// Logging overrides
	if val := os.Getenv(EnvPrefix + "LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv(EnvPrefix + "LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
	if val := os.Getenv(EnvPrefix + "LOGGING_ADD_SOURCE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Logging.AddSource = b
		} else {
			errs = append(errs, FieldError{Field: "logging.add_source", Message: fmt.Sprintf("invalid value %q", val)})
		}
	}

	// Metrics overrides
	if val := os.Getenv(EnvPrefix + "METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		} else {
			errs = append(errs, FieldError{Field: "metrics.enabled", Message: fmt.Sprintf("invalid value %q", val)})
		}
	}
	if val := os.Getenv(EnvPrefix + "METRICS_NAMESPACE"); val != "" {
		cfg.Metrics.Namespace = val
	}
	if val := os.Getenv(EnvPrefix + "METRICS_SUBSYSTEM"); val != "" {
		cfg.Metrics.Subsystem = val
	}
	if val := os.Getenv(EnvPrefix + "METRICS_PATH"); val != "" {
		cfg.Metrics.Path = val
	}
	if val := os.Getenv(EnvPrefix + "METRICS_ADDRESS"); val != "" {
		cfg.Metrics.Address = val
	}

	// Watch overrides
	if val := os.Getenv(EnvPrefix + "WATCH_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Watch.Debounce = d
		} else {
			errs = append(errs, FieldError{Field: "watch.debounce", Message: fmt.Sprintf("invalid duration %q", val)})
		}
	}
	if val := os.Getenv(EnvPrefix + "WATCH_EXTENSIONS"); val != "" {
		var exts []string
		for _, ext := range strings.Split(val, ",") {
			if ext = strings.TrimSpace(ext); ext != "" {
				exts = append(exts, ext)
			}
		}
		cfg.Watch.Extensions = exts
	}
	if val := os.Getenv(EnvPrefix + "WATCH_SCHEDULE"); val != "" {
		cfg.Watch.Schedule = val
	}

	// Tracing overrides
	if val := os.Getenv(EnvPrefix + "TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Tracing.Enabled = b
		} else {
			errs = append(errs, FieldError{Field: "tracing.enabled", Message: fmt.Sprintf("invalid value %q", val)})
		}
	}
	if val := os.Getenv(EnvPrefix + "TRACING_ENDPOINT"); val != "" {
		cfg.Tracing.Endpoint = val
	}
	if val := os.Getenv(EnvPrefix + "TRACING_SAMPLER"); val != "" {
		cfg.Tracing.Sampler = val
	}
	if val := os.Getenv(EnvPrefix + "TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Tracing.SampleRatio = f
		} else {
			errs = append(errs, FieldError{Field: "tracing.sample_ratio", Message: fmt.Sprintf("invalid value %q", val)})
		}
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
