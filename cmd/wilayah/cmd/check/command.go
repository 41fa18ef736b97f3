// Package check provides the check command, a dry-run reconciliation that
// fails when the dataset is not reconciled.
package check

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/wilayah/cmd/application"
	"github.com/agentstation/wilayah/cmd/wilayah/cmd/reconcile"
	"github.com/agentstation/wilayah/pkg/errors"
	"github.com/agentstation/wilayah/pkg/reconciler"
)

// ErrCheckFailed is returned when the dataset needs reconciliation.
var ErrCheckFailed = errors.New("dataset check failed")

// NewCommand creates the check command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var strict bool
	var flags *reconcile.Flags

	cmd := &cobra.Command{
		Use:     "check",
		GroupID: "core",
		Short:   "Verify that a dataset is reconciled",
		Args:    cobra.NoArgs,
		Long: `Check runs a reconciliation without writing any file and fails when
a name would change, the reference table has duplicate keys or a file cannot
be read. With --strict, names that match no reference entry fail the check too.

Use it in CI to keep a dataset aligned with its reference table.`,
		Example: `  wilayah check --root ./data
  wilayah check --strict -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags.DryRun = true
			result, err := reconcile.Execute(cmd, app, flags)
			if err != nil {
				return err
			}
			return Verdict(result, strict)
		},
	}

	flags = reconcile.AddFlags(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on unresolved names as well")
	_ = cmd.Flags().MarkHidden("dry-run")

	return cmd
}

// Verdict returns ErrCheckFailed, wrapped with the reasons, when result
// shows a dataset that is not reconciled.
func Verdict(result *reconciler.Result, strict bool) error {
	var reasons []string
	if n := len(result.Changes); n > 0 {
		reasons = append(reasons, fmt.Sprintf("%d names to change", n))
	}
	if n := len(result.Issues); n > 0 {
		reasons = append(reasons, fmt.Sprintf("%d duplicate reference keys", n))
	}
	if n := len(result.Errors); n > 0 {
		reasons = append(reasons, fmt.Sprintf("%d unreadable files", n))
	}
	if n := len(result.Unresolved); strict && n > 0 {
		reasons = append(reasons, fmt.Sprintf("%d unresolved names", n))
	}
	if len(reasons) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrCheckFailed, strings.Join(reasons, ", "))
}
