// Package cmdutil provides shared flags and configuration utilities for wilayah commands.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/wilayah/internal/config"
)

// DatasetFlags holds the flags of commands that open and match a dataset.
type DatasetFlags struct {
	Root              string
	RegionThreshold   float64
	ProvinceThreshold float64
	Aliases           []string
	SampleSize        int
	Workers           int
	DuplicatePolicy   string
	Refine            bool
}

// Flag names shared by dataset commands.
const (
	FlagRoot              = "root"
	FlagRegionThreshold   = "region-threshold"
	FlagProvinceThreshold = "province-threshold"
	FlagAlias             = "alias"
	FlagSampleSize        = "sample-size"
	FlagWorkers           = "workers"
	FlagDuplicatePolicy   = "duplicate-policy"
	FlagRefine            = "refine"
)

// AddDatasetFlags adds dataset flags to a command. Defaults shown in help
// are the built-in defaults; configured values apply unless a flag is set.
func AddDatasetFlags(cmd *cobra.Command) *DatasetFlags {
	flags := &DatasetFlags{}
	d := config.Defaults()

	cmd.Flags().StringVarP(&flags.Root, FlagRoot, "r", d.Root,
		"Dataset root directory")
	cmd.Flags().Float64Var(&flags.RegionThreshold, FlagRegionThreshold, d.RegionThreshold,
		"Minimum similarity for regency and city names (0..1)")
	cmd.Flags().Float64Var(&flags.ProvinceThreshold, FlagProvinceThreshold, d.ProvinceThreshold,
		"Minimum similarity for province names (0..1)")
	cmd.Flags().StringSliceVar(&flags.Aliases, FlagAlias, d.Aliases,
		"Alias tokens tried when exact and fuzzy matching fail")
	cmd.Flags().IntVar(&flags.SampleSize, FlagSampleSize, d.SampleSize,
		"Region names sampled to place a province by content")
	cmd.Flags().IntVarP(&flags.Workers, FlagWorkers, "w", d.Workers,
		"Region files processed concurrently")
	cmd.Flags().StringVar(&flags.DuplicatePolicy, FlagDuplicatePolicy, d.DuplicatePolicy,
		"Duplicate reference keys: first, last, reject")
	cmd.Flags().BoolVar(&flags.Refine, FlagRefine, d.RefineUnresolved,
		"Title-case names that match no reference entry")

	return flags
}

// Apply returns s with every flag the user set on cmd applied.
func (f *DatasetFlags) Apply(cmd *cobra.Command, s config.Settings) config.Settings {
	changed := cmd.Flags().Changed
	if changed(FlagRoot) {
		s.Root = f.Root
	}
	if changed(FlagRegionThreshold) {
		s.RegionThreshold = f.RegionThreshold
	}
	if changed(FlagProvinceThreshold) {
		s.ProvinceThreshold = f.ProvinceThreshold
	}
	if changed(FlagAlias) {
		s.Aliases = append([]string(nil), f.Aliases...)
	}
	if changed(FlagSampleSize) {
		s.SampleSize = f.SampleSize
	}
	if changed(FlagWorkers) {
		s.Workers = f.Workers
	}
	if changed(FlagDuplicatePolicy) {
		s.DuplicatePolicy = f.DuplicatePolicy
	}
	if changed(FlagRefine) {
		s.RefineUnresolved = f.Refine
	}
	return s
}
