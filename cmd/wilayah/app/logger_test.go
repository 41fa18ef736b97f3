package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		env    string
		want   string
	}{
		{"default", Config{}, "", "info"},
		{"explicit wins", Config{LogLevel: "error", Verbose: true}, "debug", "error"},
		{"invalid explicit", Config{LogLevel: "loud"}, "", "info"},
		{"verbose", Config{Verbose: true}, "error", "debug"},
		{"quiet", Config{Quiet: true}, "", "warn"},
		{"verbose and quiet", Config{Verbose: true, Quiet: true}, "", "warn"},
		{"environment", Config{}, "trace", "trace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.env)
			if got := determineLogLevel(&tt.config); got != tt.want {
				t.Errorf("determineLogLevel() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error"} {
		if got := validateLogLevel(level); got != level {
			t.Errorf("validateLogLevel(%s) = %s", level, got)
		}
	}
	if got := validateLogLevel("fatal"); got != "info" {
		t.Errorf("validateLogLevel(fatal) = %s, want info", got)
	}
}

func TestNewLoggerFields(t *testing.T) {
	t.Setenv("LOG_FIELDS", "job=nightly, batch=7")
	path := filepath.Join(t.TempDir(), "wilayah.log")

	logger := NewLogger(&Config{LogLevel: "info", LogFormat: "json", LogOutput: path})
	logger.Info().Msg("hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, want := range []string{`"job":"nightly"`, `"batch":"7"`, `"message":"hello"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log %s missing %s", data, want)
		}
	}
}
