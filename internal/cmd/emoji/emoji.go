// Package emoji provides symbol constants for CLI output.
// These symbols keep status columns and summaries consistent across commands.
package emoji

// Symbol constants used for status indicators in reports.
const (
	// Success marks a resolved scope, a refined name or a clean check.
	Success = "✓"

	// Error marks an unresolved scope or a failed check.
	Error = "✗"

	// Warning marks reference data issues such as duplicate keys.
	Warning = "!"

	// Optional marks a column that does not apply to the row.
	Optional = "-"

	// Info prefixes informational summary lines.
	Info = "i"
)
