package reconcile

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/wilayah/internal/cmd/cmdutil"
	"github.com/agentstation/wilayah/internal/config"
)

// Flags holds the reconcile command flags.
type Flags struct {
	*cmdutil.DatasetFlags
	DryRun      bool
	MetricsFile string
	Details     bool
}

// AddFlags adds the reconcile flags to cmd.
func AddFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{DatasetFlags: cmdutil.AddDatasetFlags(cmd)}

	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false,
		"Report changes without writing files")
	cmd.Flags().StringVar(&flags.MetricsFile, "metrics-file", "",
		"Write run metrics in Prometheus text format to this file")
	cmd.Flags().BoolVar(&flags.Details, "details", false,
		"Show tiers, scores and nearest candidates")

	return flags
}

// settings returns s with the command flags applied.
func (f *Flags) settings(cmd *cobra.Command, s config.Settings) config.Settings {
	s = f.Apply(cmd, s)
	if cmd.Flags().Changed("metrics-file") {
		s.MetricsFile = f.MetricsFile
	}
	return s
}
