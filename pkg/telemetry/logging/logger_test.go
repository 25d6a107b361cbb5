package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid JSON config",
			config:  Config{Level: "info", Format: "json"},
			wantErr: false,
		},
		{
			name:    "valid text config",
			config:  Config{Level: "debug", Format: "text"},
			wantErr: false,
		},
		{
			name:    "valid console config",
			config:  Config{Level: "warn", Format: "console"},
			wantErr: false,
		},
		{
			name:    "defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name:    "invalid log level",
			config:  Config{Level: "invalid", Format: "json"},
			wantErr: true,
		},
		{
			name:    "invalid format",
			config:  Config{Level: "info", Format: "invalid"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.Writer = &bytes.Buffer{}

			logger, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && logger == nil {
				t.Error("New() returned nil logger")
			}
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		level    slog.Level
		wantLog  bool
	}{
		{"debug level logs debug", "debug", slog.LevelDebug, true},
		{"info level filters debug", "info", slog.LevelDebug, false},
		{"info level logs info", "info", slog.LevelInfo, true},
		{"warn level filters info", "warn", slog.LevelInfo, false},
		{"warn level logs warn", "WARN", slog.LevelWarn, true},
		{"error level filters warn", "error", slog.LevelWarn, false},
		{"error level logs error", "error", slog.LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger, err := New(Config{Level: tt.logLevel, Format: "json", Writer: buf})
			if err != nil {
				t.Fatalf("Failed to create logger: %v", err)
			}

			logger.Log(context.Background(), tt.level, "test message")

			if hasLog := strings.Contains(buf.String(), "test message"); hasLog != tt.wantLog {
				t.Errorf("got log=%v, want log=%v, output=%s", hasLog, tt.wantLog, buf.String())
			}
		})
	}
}

func TestLogger_StructuredFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.Info("Configuration checked", "verdict", "Invalid", "findings", 2)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["verdict"] != "Invalid" {
		t.Errorf("verdict = %v", entry["verdict"])
	}
	if entry["findings"] != float64(2) {
		t.Errorf("findings = %v", entry["findings"])
	}
}

func TestLogger_ConsoleDropsTime(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Format: "console", Writer: buf})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.Info("hello")
	if strings.Contains(buf.String(), "time=") {
		t.Errorf("console output should not carry a timestamp: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("output = %s", buf.String())
	}
}

func TestSetup(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	buf := &bytes.Buffer{}
	if _, err := Setup(Config{Format: "json", Writer: buf}); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	Component("watcher").Info("started")
	if !strings.Contains(buf.String(), `"component":"watcher"`) {
		t.Errorf("output = %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := parseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    LogFormat
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"TEXT", FormatText, false},
		{"", FormatText, false},
		{"console", FormatConsole, false},
		{"xml", FormatText, true},
	}

	for _, tt := range tests {
		got, err := parseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("parseFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
