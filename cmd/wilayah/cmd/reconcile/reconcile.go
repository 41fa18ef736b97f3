// Package reconcile provides the reconcile command implementation.
package reconcile

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/wilayah/cmd/application"
	"github.com/agentstation/wilayah/internal/cmd/output"
	"github.com/agentstation/wilayah/pkg/errors"
	"github.com/agentstation/wilayah/pkg/metrics"
	"github.com/agentstation/wilayah/pkg/reconciler"
)

// Execute runs one reconciliation with the command's flags and prints the
// report. The result is returned for callers that judge it, such as check.
func Execute(cmd *cobra.Command, app application.Application, flags *Flags) (*reconciler.Result, error) {
	ctx := cmd.Context()
	logger := app.Logger()
	settings := flags.settings(cmd, app.Settings())

	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return nil, errors.NewValidationError("format", app.OutputFormat(), err.Error())
	}

	ds, err := app.Dataset(settings)
	if err != nil {
		return nil, err
	}

	var m *metrics.Metrics
	if settings.MetricsFile != "" {
		m = metrics.New()
	}

	r, err := ds.Reconciler(settings, logger, m, reconciler.WithDryRun(flags.DryRun))
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("root", settings.Root).
		Str("stats", ds.Index.Stats().String()).
		Msg("Reference index built")

	result, err := r.Run(ctx, ds.Store)
	if err != nil {
		return nil, err
	}

	if m != nil {
		if err := m.WriteTextfile(settings.MetricsFile); err != nil {
			return result, errors.WrapIO("write", settings.MetricsFile, err)
		}
	}

	if err := printReport(cmd.OutOrStdout(), format, result, flags.Details); err != nil {
		return result, err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), result.Summary())
	for _, fileErr := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %v\n", fileErr)
	}

	return result, nil
}
