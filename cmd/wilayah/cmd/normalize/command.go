// Package normalize provides the normalize command, which shows the
// matching key of region names.
package normalize

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/wilayah/cmd/application"
	"github.com/agentstation/wilayah/internal/cmd/output"
	"github.com/agentstation/wilayah/internal/cmd/table"
	"github.com/agentstation/wilayah/pkg/errors"
	"github.com/agentstation/wilayah/pkg/normalize"
	"github.com/agentstation/wilayah/pkg/regions"
)

// NewCommand creates the normalize command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "normalize [name...]",
		GroupID: "core",
		Short:   "Show the matching key of region names",
		Long: `Normalize prints the key each name is matched by: administrative
prefixes removed, accents folded, upper case and single spaces. The type
implied by the name prefix is shown as well.

Names are read from the arguments, or one per line from standard input.`,
		Example: `  wilayah normalize "Kab. Aceh Selatan" "KOTA ADM. JAKARTA PUSAT"
  cat names.txt | wilayah normalize -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				var err error
				if names, err = readLines(cmd); err != nil {
					return err
				}
			}

			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return errors.NewValidationError("format", app.OutputFormat(), err.Error())
			}

			rows := Keys(names)
			return output.Write(cmd.OutOrStdout(), format, rows, table.KeysToTableData(rows))
		},
	}
}

// Keys normalizes names.
func Keys(names []string) []table.KeyRow {
	rows := make([]table.KeyRow, 0, len(names))
	for _, name := range names {
		rows = append(rows, table.KeyRow{
			Name: name,
			Key:  normalize.Key(name),
			Type: regions.TypeOfName(name).String(),
		})
	}
	return rows
}

func readLines(cmd *cobra.Command) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			names = append(names, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapIO("read", "stdin", err)
	}
	return names, nil
}
