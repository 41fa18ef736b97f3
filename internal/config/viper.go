// Package config binds reconciliation settings to Viper.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/agentstation/wilayah/pkg/constants"
)

// Configuration keys, as used in .wilayah.yaml and (upper-cased) in the environment.
const (
	KeyRoot              = "root"
	KeyRegionThreshold   = "region_threshold"
	KeyProvinceThreshold = "province_threshold"
	KeyAliases           = "aliases"
	KeySampleSize        = "sample_size"
	KeyWorkers           = "workers"
	KeyDuplicatePolicy   = "duplicate_policy"
	KeyRefineUnresolved  = "refine_unresolved"
	KeyMetricsFile       = "metrics_file"
)

// Settings are the reconciliation settings shared by every command.
type Settings struct {
	Root              string   `json:"root" yaml:"root"`
	RegionThreshold   float64  `json:"region_threshold" yaml:"region_threshold"`
	ProvinceThreshold float64  `json:"province_threshold" yaml:"province_threshold"`
	Aliases           []string `json:"aliases" yaml:"aliases"`
	SampleSize        int      `json:"sample_size" yaml:"sample_size"`
	Workers           int      `json:"workers" yaml:"workers"`
	DuplicatePolicy   string   `json:"duplicate_policy" yaml:"duplicate_policy"`
	RefineUnresolved  bool     `json:"refine_unresolved" yaml:"refine_unresolved"`
	MetricsFile       string   `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty"`
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{
		Root:              constants.DefaultRoot,
		RegionThreshold:   constants.RegionThreshold,
		ProvinceThreshold: constants.ProvinceThreshold,
		Aliases:           constants.DefaultAliases(),
		SampleSize:        constants.SampleSize,
		Workers:           constants.DefaultWorkers,
		DuplicatePolicy:   constants.DefaultDuplicatePolicy,
	}
}

// SetDefaults registers the default settings with v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault(KeyRoot, d.Root)
	v.SetDefault(KeyRegionThreshold, d.RegionThreshold)
	v.SetDefault(KeyProvinceThreshold, d.ProvinceThreshold)
	v.SetDefault(KeyAliases, d.Aliases)
	v.SetDefault(KeySampleSize, d.SampleSize)
	v.SetDefault(KeyWorkers, d.Workers)
	v.SetDefault(KeyDuplicatePolicy, d.DuplicatePolicy)
	v.SetDefault(KeyRefineUnresolved, d.RefineUnresolved)
	v.SetDefault(KeyMetricsFile, d.MetricsFile)
}

// Load reads the settings from v. Aliases given as a single comma separated
// string (the usual shape of an environment variable) are split.
func Load(v *viper.Viper) Settings {
	return Settings{
		Root:              v.GetString(KeyRoot),
		RegionThreshold:   v.GetFloat64(KeyRegionThreshold),
		ProvinceThreshold: v.GetFloat64(KeyProvinceThreshold),
		Aliases:           splitList(v.GetStringSlice(KeyAliases)),
		SampleSize:        v.GetInt(KeySampleSize),
		Workers:           v.GetInt(KeyWorkers),
		DuplicatePolicy:   v.GetString(KeyDuplicatePolicy),
		RefineUnresolved:  v.GetBool(KeyRefineUnresolved),
		MetricsFile:       v.GetString(KeyMetricsFile),
	}
}

func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
