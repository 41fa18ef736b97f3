// Package application provides the application interface for wilayah commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            settings := app.Settings()
//	            ds, err := app.Dataset(settings)
//	            if err != nil {
//	                return err
//	            }
//	            // ... reconcile ds
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    DatasetFunc: func(s config.Settings) (*dataset.Dataset, error) {
//	        return dataset.Load(s, store.WithFS(testFS))
//	    },
//	}
//	cmd := NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/wilayah/internal/cmd/dataset"
	"github.com/agentstation/wilayah/internal/config"
)

// Application provides the application interface that commands need.
// The App struct from cmd/wilayah/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Settings returns a copy of the effective reconciliation settings:
	// defaults, then config file, environment and global flags.
	// Commands apply their own flags on top of the copy.
	Settings() config.Settings

	// Dataset opens the dataset described by settings and builds its
	// reference index.
	Dataset(settings config.Settings) (*dataset.Dataset, error)

	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, etc).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
