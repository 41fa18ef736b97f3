package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/wilayah/pkg/errors"
	"github.com/agentstation/wilayah/pkg/matcher"
	"github.com/agentstation/wilayah/pkg/refindex"
	"github.com/agentstation/wilayah/pkg/regions"
	"github.com/agentstation/wilayah/pkg/scope"
)

// Result represents the outcome of a reconciliation run.
type Result struct {
	// Core data
	Changes    []Change                `json:"changes" yaml:"changes"`
	Unresolved []Miss                  `json:"unresolved" yaml:"unresolved"`
	Scopes     []scope.Resolution      `json:"scopes" yaml:"scopes"`
	Issues     []refindex.DuplicateKey `json:"issues" yaml:"issues"`

	// Metadata
	Metadata ResultMetadata `json:"metadata" yaml:"metadata"`

	// Errors are per-file failures; the run continued past each of them.
	Errors []error `json:"-" yaml:"-"`
}

// Change is one name replaced, or to be replaced on a dry run.
type Change struct {
	File  string       `json:"file" yaml:"file"`
	ID    regions.Code `json:"id" yaml:"id"`
	Type  regions.Type `json:"type" yaml:"type"`
	Scope string       `json:"scope,omitempty" yaml:"scope,omitempty"`
	Old   string       `json:"old" yaml:"old"`
	New   string       `json:"new" yaml:"new"`
	Tier  matcher.Tier `json:"tier" yaml:"tier"`
	Score float64      `json:"score" yaml:"score"`
}

// Reason explains why a name was left unresolved.
type Reason string

const (
	// ReasonNoMatch means no tier matched within the scope.
	ReasonNoMatch Reason = "no match"
	// ReasonNoScope means the record's province has no reference scope.
	ReasonNoScope Reason = "scope unresolved"
)

// Miss is a name no tier could place.
type Miss struct {
	File         string       `json:"file" yaml:"file"`
	ID           regions.Code `json:"id" yaml:"id"`
	Type         regions.Type `json:"type" yaml:"type"`
	Scope        string       `json:"scope,omitempty" yaml:"scope,omitempty"`
	Name         string       `json:"name" yaml:"name"`
	Reason       Reason       `json:"reason" yaml:"reason"`
	Nearest      string       `json:"nearest,omitempty" yaml:"nearest,omitempty"`
	NearestScore float64      `json:"nearest_score,omitempty" yaml:"nearest_score,omitempty"`
	// Refined is set when the name was title-cased instead.
	Refined bool `json:"refined,omitempty" yaml:"refined,omitempty"`
}

// Err returns the miss as an *errors.UnresolvedError.
func (m Miss) Err() error {
	return &errors.UnresolvedError{
		Kind:  m.Type.String(),
		ID:    string(m.ID),
		Name:  m.Name,
		Scope: m.Scope,
	}
}

// FileError is a failure to read or write one record file.
type FileError struct {
	File string
	Err  error
}

// Error implements the error interface
func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *FileError) Unwrap() error {
	return e.Err
}

// ResultMetadata contains metadata about the reconciliation run.
type ResultMetadata struct {
	// RunID identifies the run in logs and reports
	RunID string `json:"run_id" yaml:"run_id"`

	// StartTime when reconciliation started
	StartTime time.Time `json:"start_time" yaml:"start_time"`

	// EndTime when reconciliation completed
	EndTime time.Time `json:"end_time" yaml:"end_time"`

	// Duration of the reconciliation
	Duration time.Duration `json:"duration" yaml:"duration"`

	// DryRun indicates if this was a dry-run
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// Workers is the number of concurrent file workers
	Workers int `json:"workers" yaml:"workers"`

	// Statistics about the reconciliation
	Stats ResultStatistics `json:"stats" yaml:"stats"`
}

// ResultStatistics contains statistics about the reconciliation.
type ResultStatistics struct {
	ProvinceFiles int            `json:"province_files" yaml:"province_files"`
	RegionFiles   int            `json:"region_files" yaml:"region_files"`
	FilesSaved    int            `json:"files_saved" yaml:"files_saved"`
	Records       int            `json:"records" yaml:"records"`
	Changed       int            `json:"changed" yaml:"changed"`
	Unresolved    int            `json:"unresolved" yaml:"unresolved"`
	Refined       int            `json:"refined" yaml:"refined"`
	Tiers         map[string]int `json:"tiers" yaml:"tiers"`
	TotalTimeMs   int64          `json:"total_time_ms" yaml:"total_time_ms"`
}

// IsSuccess returns true if every file was read and written.
func (r *Result) IsSuccess() bool {
	return len(r.Errors) == 0
}

// HasChanges returns true if any name was replaced.
func (r *Result) HasChanges() bool {
	return len(r.Changes) > 0
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	stats := r.Metadata.Stats
	counts := fmt.Sprintf("%d changed, %d unresolved of %d records", stats.Changed, stats.Unresolved, stats.Records)

	if !r.IsSuccess() {
		return fmt.Sprintf("Reconciliation finished with %d file errors: %s", len(r.Errors), counts)
	}
	if r.Metadata.DryRun {
		if r.HasChanges() {
			return fmt.Sprintf("Dry run completed. %s", counts)
		}
		return "Dry run completed. No changes detected."
	}
	if r.HasChanges() {
		return fmt.Sprintf("Reconciliation successful. %s, %d files saved", counts, stats.FilesSaved)
	}
	return "Reconciliation completed. No changes detected."
}

// NewResult creates a new result with defaults.
func NewResult(runID string) *Result {
	return &Result{
		Changes:    []Change{},
		Unresolved: []Miss{},
		Scopes:     []scope.Resolution{},
		Issues:     []refindex.DuplicateKey{},
		Errors:     []error{},
		Metadata: ResultMetadata{
			RunID:     runID,
			StartTime: time.Now(),
			Stats: ResultStatistics{
				Tiers: make(map[string]int),
			},
		},
	}
}

// Finalize calculates duration and marks completion.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	r.Metadata.Stats.TotalTimeMs = r.Metadata.Duration.Milliseconds()
	r.Metadata.Stats.Changed = len(r.Changes)
	r.Metadata.Stats.Unresolved = len(r.Unresolved)
}
