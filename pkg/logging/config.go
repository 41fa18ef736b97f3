package logging

import (
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/agentstation/wilayah/pkg/constants"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvLevel      = "LOG_LEVEL"
	EnvFormat     = "LOG_FORMAT"
	EnvOutput     = "LOG_OUTPUT"
	EnvTimeFormat = "LOG_TIME_FORMAT"
	EnvCaller     = "LOG_CALLER"
	EnvFields     = "LOG_FIELDS"
)

// Output destinations understood by Config.Output. Anything else is a file
// path, opened for appending.
const (
	OutputStderr  = "stderr"
	OutputStdout  = "stdout"
	OutputDiscard = "discard"
)

// Config describes how a logger writes.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error or disabled.
	Level string
	// Format is auto, json or console. Auto picks console on a terminal.
	Format string
	// Output is stderr, stdout, discard or a file path.
	Output string
	// TimeFormat applies to console output: kitchen, rfc3339, unix or a layout.
	TimeFormat string
	NoColor    bool
	// AddCaller adds file:line; debug and trace levels always do.
	AddCaller bool
	// Fields are attached to every event, e.g. the CI job running a batch.
	Fields map[string]string
}

// DefaultConfig logs info and above to stderr.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "auto",
		Output:     OutputStderr,
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
		Fields:     map[string]string{},
	}
}

// ConfigFromEnv returns DefaultConfig overridden by the LOG_* variables.
// LOG_FIELDS holds comma separated key=value pairs.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	set := func(target *string, key string) {
		if v := os.Getenv(key); v != "" {
			*target = v
		}
	}
	set(&cfg.Level, EnvLevel)
	set(&cfg.Format, EnvFormat)
	set(&cfg.Output, EnvOutput)
	set(&cfg.TimeFormat, EnvTimeFormat)
	cfg.AddCaller = os.Getenv(EnvCaller) == "true"
	cfg.Fields = ParseFields(os.Getenv(EnvFields))
	return cfg
}

// NewLoggerFromConfig builds a logger from cfg and sets the zerolog global
// level to match. A nil cfg means DefaultConfig.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := ParseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	logCtx := zerolog.New(writer(cfg)).Level(level).With().Timestamp()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		logCtx = logCtx.Caller()
	}
	for _, key := range slices.Sorted(maps.Keys(cfg.Fields)) {
		logCtx = logCtx.Str(key, cfg.Fields[key])
	}
	return logCtx.Logger()
}

// ParseLevel maps a level name to a zerolog level. Unknown names are info.
func ParseLevel(level string) zerolog.Level {
	switch name := strings.ToLower(strings.TrimSpace(level)); name {
	case "warning":
		return zerolog.WarnLevel
	case "none", "off":
		return zerolog.Disabled
	default:
		l, err := zerolog.ParseLevel(name)
		if err != nil || l == zerolog.NoLevel {
			return zerolog.InfoLevel
		}
		return l
	}
}

// ParseFields parses "key=value,key=value". Pairs without a key are dropped.
func ParseFields(s string) map[string]string {
	fields := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		fields[key] = strings.TrimSpace(value)
	}
	return fields
}

func writer(cfg *Config) io.Writer {
	out := output(cfg.Output)

	format := strings.ToLower(cfg.Format)
	if format == "" || format == "auto" {
		format = "json"
		if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			format = "console"
		}
	}
	if format != "console" && format != "pretty" {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: timeLayout(cfg.TimeFormat),
		NoColor:    cfg.NoColor,
	}
}

// output resolves a destination. A file that cannot be opened falls back to
// stderr so a bad LOG_OUTPUT never stops a run.
func output(dest string) io.Writer {
	switch strings.ToLower(dest) {
	case "", OutputStderr:
		return os.Stderr
	case OutputStdout:
		return os.Stdout
	case OutputDiscard, "none":
		return io.Discard
	}
	f, err := os.OpenFile(dest, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return os.Stderr
	}
	return f
}

func timeLayout(format string) string {
	switch strings.ToLower(format) {
	case "", "kitchen":
		return time.Kitchen
	case "rfc3339":
		return time.RFC3339
	case "unix":
		return ""
	}
	if strings.Contains(format, "2006") || strings.Contains(format, "15:04") {
		return format
	}
	return time.Kitchen
}
