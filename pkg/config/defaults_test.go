package config

import (
	"reflect"
	"testing"
)

func TestNewDefault(t *testing.T) {
	cfg := NewDefault()

	if cfg.Validation.ReservedChannels != (ChannelRange{Min: 1, Max: 999}) {
		t.Errorf("reserved channels = %+v", cfg.Validation.ReservedChannels)
	}
	if cfg.Validation.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("max file size = %d", cfg.Validation.MaxFileSize)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Namespace != "astron" || cfg.Metrics.Subsystem != "configcheck" || cfg.Metrics.Path != "/metrics" {
		t.Errorf("metrics = %+v", cfg.Metrics)
	}
	if cfg.Watch.Debounce != DefaultWatchDebounce {
		t.Errorf("debounce = %v", cfg.Watch.Debounce)
	}
	if !reflect.DeepEqual(cfg.Watch.Extensions, []string{".yaml", ".yml"}) {
		t.Errorf("extensions = %v", cfg.Watch.Extensions)
	}
	if cfg.Watch.SkipHidden == nil || !*cfg.Watch.SkipHidden {
		t.Error("skip_hidden should default to true")
	}
	if cfg.Tracing.Enabled || cfg.Tracing.Sampler != "always" || cfg.Tracing.Exporter != "otlp" || cfg.Tracing.ServiceName != "astroncheck" {
		t.Errorf("tracing = %+v", cfg.Tracing)
	}
	if cfg.Tracing.OTLP.Timeout != DefaultTracingTimeout {
		t.Errorf("otlp timeout = %v", cfg.Tracing.OTLP.Timeout)
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	skip := false
	cfg := &Config{
		Logging: LoggingConfig{Level: "debug"},
		Watch:   WatchConfig{Extensions: []string{".conf"}, SkipHidden: &skip},
	}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.Format != DefaultLoggingFormat {
		t.Errorf("format = %q", cfg.Logging.Format)
	}
	if !reflect.DeepEqual(cfg.Watch.Extensions, []string{".conf"}) {
		t.Errorf("extensions = %v", cfg.Watch.Extensions)
	}
	if *cfg.Watch.SkipHidden {
		t.Error("explicit skip_hidden=false was overwritten")
	}
}

func TestApplyDefaults_DoesNotShareSlices(t *testing.T) {
	cfg := NewDefault()
	cfg.Watch.Extensions[0] = ".json"
	if DefaultWatchExtensions[0] != ".yaml" {
		t.Error("ApplyDefaults should copy DefaultWatchExtensions")
	}
}
