package reconcile

import (
	"fmt"
	"io"

	"github.com/agentstation/wilayah/internal/cmd/output"
	"github.com/agentstation/wilayah/internal/cmd/table"
	"github.com/agentstation/wilayah/pkg/reconciler"
)

type section struct {
	title string
	count int
	data  table.Data
}

// printReport writes the run report. Table formats print one table per
// non-empty section followed by the statistics; other formats print the
// whole result.
func printReport(w io.Writer, format output.Format, result *reconciler.Result, details bool) error {
	if !format.IsTable() {
		return output.NewFormatter(format).Format(w, result)
	}

	details = details || format == output.FormatWide
	sections := []section{
		{"Changes", len(result.Changes), table.ChangesToTableData(result.Changes, details)},
		{"Unresolved", len(result.Unresolved), table.MissesToTableData(result.Unresolved, details)},
		{"Duplicate reference keys", len(result.Issues), table.IssuesToTableData(result.Issues)},
	}
	if details {
		sections = append(sections, section{"Province scopes", len(result.Scopes), table.ScopesToTableData(result.Scopes)})
	}

	formatter := output.NewFormatter(format)
	for _, s := range sections {
		if s.count == 0 {
			continue
		}
		fmt.Fprintf(w, "%s (%d)\n", s.title, s.count)
		if err := formatter.Format(w, s.data); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return formatter.Format(w, table.StatsToTableData(result.Metadata.Stats))
}
