// Package app provides the application context and dependency management
// for the wilayah CLI. It centralizes configuration, logging and dataset
// loading so commands receive them through the application.Application
// interface.
package app

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/agentstation/wilayah/cmd/application"
	"github.com/agentstation/wilayah/internal/cmd/dataset"
	"github.com/agentstation/wilayah/internal/cmd/output"
	"github.com/agentstation/wilayah/internal/config"
	"github.com/agentstation/wilayah/pkg/errors"
)

// App represents the wilayah application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration loaded from the environment,
// .env files and the optional config file; options override it.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the explicit --format, or the format detected from
// the terminal.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// Settings returns a copy of the reconciliation settings.
func (a *App) Settings() config.Settings {
	s := a.config.Settings
	s.Aliases = slices.Clone(s.Aliases)
	return s
}

// Dataset opens the dataset described by settings.
func (a *App) Dataset(settings config.Settings) (*dataset.Dataset, error) {
	ds, err := dataset.Load(settings)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().
		Str("root", settings.Root).
		Int("provinces", len(ds.Index.Provinces())).
		Int("duplicates", len(ds.Index.Issues())).
		Msg("Dataset loaded")
	return ds, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)
