// Package reference provides the reference command, which inspects the
// reference index built from a dataset's reference table.
package reference

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/wilayah/cmd/application"
	"github.com/agentstation/wilayah/internal/cmd/cmdutil"
	"github.com/agentstation/wilayah/internal/cmd/output"
	"github.com/agentstation/wilayah/internal/cmd/table"
	"github.com/agentstation/wilayah/pkg/errors"
	"github.com/agentstation/wilayah/pkg/matcher"
	"github.com/agentstation/wilayah/pkg/refindex"
)

// Report is the machine-readable output of the reference command.
type Report struct {
	Stats      refindex.Stats          `json:"stats" yaml:"stats"`
	Provinces  []table.ProvinceRow     `json:"provinces,omitempty" yaml:"provinces,omitempty"`
	Province   string                  `json:"province,omitempty" yaml:"province,omitempty"`
	Candidates []matcher.Candidate     `json:"candidates,omitempty" yaml:"candidates,omitempty"`
	Issues     []refindex.DuplicateKey `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// NewCommand creates the reference command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *cmdutil.DatasetFlags

	cmd := &cobra.Command{
		Use:     "reference [province]",
		GroupID: "core",
		Short:   "Inspect the reference index",
		Args:    cobra.MaximumNArgs(1),
		Long: `Reference builds the reference index from referensi/ and lists its
provinces with their region counts, or the candidates of one province.
Duplicate keys found in the reference table are listed as well.`,
		Example: `  wilayah reference --root ./data
  wilayah reference "Papua Barat"
  wilayah reference --duplicate-policy last -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := flags.Apply(cmd, app.Settings())
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return errors.NewValidationError("format", app.OutputFormat(), err.Error())
			}

			ds, err := app.Dataset(settings)
			if err != nil {
				return err
			}

			var province string
			if len(args) == 1 {
				province = args[0]
			}
			report, err := Build(ds.Index, province)
			if err != nil {
				return err
			}
			return write(cmd, format, report)
		},
	}

	flags = cmdutil.AddDatasetFlags(cmd)

	return cmd
}

// Build assembles the report for idx. With a province, the report lists that
// province's candidates; the province is looked up by its normalized key.
func Build(idx *refindex.Index, province string) (*Report, error) {
	report := &Report{Stats: idx.Stats(), Issues: idx.Issues()}

	if province != "" {
		sc, ok := idx.ScopeByKey(province)
		if !ok {
			return nil, errors.NewNotFoundError("reference province", province)
		}
		report.Province = sc.Name()
		report.Candidates = sc.Candidates()
		return report, nil
	}

	for _, name := range idx.Provinces() {
		row := table.ProvinceRow{Name: name}
		if sc, ok := idx.Scope(name); ok {
			row.Regions = sc.Len()
		}
		report.Provinces = append(report.Provinces, row)
	}
	return report, nil
}

func write(cmd *cobra.Command, format output.Format, report *Report) error {
	w := cmd.OutOrStdout()
	if !format.IsTable() {
		return output.NewFormatter(format).Format(w, report)
	}

	formatter := output.NewFormatter(format)
	if report.Province != "" {
		fmt.Fprintf(w, "%s (%d)\n", report.Province, len(report.Candidates))
		if err := formatter.Format(w, table.CandidatesToTableData(report.Candidates)); err != nil {
			return err
		}
	} else if err := formatter.Format(w, table.ProvincesToTableData(report.Provinces)); err != nil {
		return err
	}

	if len(report.Issues) > 0 {
		fmt.Fprintf(w, "\nDuplicate reference keys (%d)\n", len(report.Issues))
		if err := formatter.Format(w, table.IssuesToTableData(report.Issues)); err != nil {
			return err
		}
	}
	fmt.Fprintln(cmd.ErrOrStderr(), report.Stats.String())
	return nil
}
