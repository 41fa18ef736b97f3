package reconcile

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/wilayah/cmd/application"
)

// NewCommand creates the reconcile command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "reconcile",
		GroupID: "core",
		Short:   "Correct dataset names against the reference table",
		Args:    cobra.NoArgs,
		Long: `Reconcile corrects province, regency and city names in a region dataset
using the reference table under referensi/ as the authority.

The command will:
• Build the reference index from the reference table
• Place every province entry in a reference province, by name or by its regions
• Match each regency and city within its province (exact, fuzzy, alias)
• Leave names without a match untouched and report them
• Save changed files, unless --dry-run is given`,
		Example: `  wilayah reconcile --root ./data             # Correct names in place
  wilayah reconcile --dry-run                 # Preview changes
  wilayah reconcile -w 8 --details            # 8 workers, detailed report
  wilayah reconcile --refine                  # Title-case unmatched names
  wilayah reconcile -o json > report.json     # Machine-readable report`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := Execute(cmd, app, flags)
			return err
		},
	}

	flags = AddFlags(cmd)

	return cmd
}
