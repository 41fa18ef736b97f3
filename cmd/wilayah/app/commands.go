package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/wilayah/cmd/wilayah/cmd/check"
	"github.com/agentstation/wilayah/cmd/wilayah/cmd/normalize"
	"github.com/agentstation/wilayah/cmd/wilayah/cmd/reconcile"
	"github.com/agentstation/wilayah/cmd/wilayah/cmd/reference"
)

// CreateReconcileCommand creates the reconcile command with app dependencies.
func (a *App) CreateReconcileCommand() *cobra.Command {
	return reconcile.NewCommand(a)
}

// CreateCheckCommand creates the check command with app dependencies.
func (a *App) CreateCheckCommand() *cobra.Command {
	return check.NewCommand(a)
}

// CreateReferenceCommand creates the reference command with app dependencies.
func (a *App) CreateReferenceCommand() *cobra.Command {
	return reference.NewCommand(a)
}

// CreateNormalizeCommand creates the normalize command with app dependencies.
func (a *App) CreateNormalizeCommand() *cobra.Command {
	return normalize.NewCommand(a)
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		GroupID: "management",
		Short:   "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("wilayah %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
