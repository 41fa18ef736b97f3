package regions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeType(t *testing.T) {
	tests := []struct {
		code Code
		want Type
	}{
		{"11", Province},
		{"1101", Regency},
		{"1169", Regency},
		{"1170", Unknown},
		{"1171", City},
		{"3199", City},
		{"1100", Unknown},
		{"110", Unknown},
		{"11a1", Unknown},
		{"", Unknown},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.Type())
		})
	}
}

func TestCodeProvince(t *testing.T) {
	assert.Equal(t, Code("11"), Code("1171").Province())
	assert.Equal(t, Code("94"), Code("94").Province())
	assert.Equal(t, Code(""), Code("9").Province())
	assert.True(t, Code("31").IsProvince())
	assert.False(t, Code("3171").IsProvince())
}

func TestTypeOfName(t *testing.T) {
	tests := []struct {
		name string
		want Type
	}{
		{"Kabupaten Aceh Selatan", Regency},
		{"KAB. ACEH SELATAN", Regency},
		{"Kab Bekasi", Regency},
		{"Kota Jakarta Pusat", City},
		{"KOTA ADM. JAKARTA PUSAT", City},
		{"Wil. Kota Jakarta Barat", City},
		{"Kotabaru", Unknown},
		{"Kabanjahe", Unknown},
		{"Aceh", Unknown},
		{"", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeOfName(tt.name))
		})
	}
}

func TestParseType(t *testing.T) {
	assert.Equal(t, Regency, ParseType("kabupaten"))
	assert.Equal(t, City, ParseType("KOTA"))
	assert.Equal(t, Province, ParseType("provinsi"))
	assert.Equal(t, Regency, ParseType(Regency.String()))
	assert.Equal(t, Unknown, ParseType("desa"))
}

func TestTypeMarshalText(t *testing.T) {
	b, err := City.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "city", string(b))
	assert.Equal(t, "unknown", Type(42).String())
}
