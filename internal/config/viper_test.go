package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/wilayah/pkg/constants"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	assert.Equal(t, Defaults(), Load(v))
	assert.Equal(t, constants.RegionThreshold, Load(v).RegionThreshold)
	assert.Equal(t, []string{"YAPEN"}, Load(v).Aliases)
}

func TestLoadOverrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	err := v.ReadConfig(strings.NewReader(`
root: /data/wilayah
region_threshold: 0.85
workers: 8
duplicate_policy: reject
refine_unresolved: true
aliases: [YAPEN, MENTAWAI]
`))
	assert.NoError(t, err)

	s := Load(v)
	assert.Equal(t, "/data/wilayah", s.Root)
	assert.Equal(t, 0.85, s.RegionThreshold)
	assert.Equal(t, constants.ProvinceThreshold, s.ProvinceThreshold)
	assert.Equal(t, 8, s.Workers)
	assert.Equal(t, "reject", s.DuplicatePolicy)
	assert.True(t, s.RefineUnresolved)
	assert.Equal(t, []string{"YAPEN", "MENTAWAI"}, s.Aliases)
}

func TestLoadAliasesFromEnv(t *testing.T) {
	t.Setenv("ALIASES", "YAPEN, MENTAWAI,,")

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	assert.Equal(t, []string{"YAPEN", "MENTAWAI"}, Load(v).Aliases)
}
