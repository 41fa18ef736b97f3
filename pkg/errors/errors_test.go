package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/wilayah/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "reference table",
			ID:       "referensi/master_prov_kabupaten_kota.csv",
		}
		assert.Equal(t, "reference table with ID referensi/master_prov_kabupaten_kota.csv not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("province", "11")
		wrapped := fmt.Errorf("loading: %w", base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("region_threshold", 1.5, "must be within [0,1]")
		assert.Equal(t, "validation failed for field region_threshold: must be within [0,1]", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid configuration"}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
	})
}

func TestDataQualityError(t *testing.T) {
	err := pkgerrors.NewDataQualityError("Jawa Barat", "BEKASI", "Kabupaten Bekasi", "Kab. Bekasi")
	assert.Equal(t, `duplicate key "BEKASI" in Jawa Barat: Kabupaten Bekasi, Kab. Bekasi`, err.Error())
	assert.True(t, pkgerrors.IsDataQuality(err))
	assert.False(t, pkgerrors.IsUnresolved(err))

	var dq *pkgerrors.DataQualityError
	require.True(t, errors.As(fmt.Errorf("build: %w", err), &dq))
	assert.Equal(t, "BEKASI", dq.Key)
}

func TestUnresolvedError(t *testing.T) {
	t.Run("with scope", func(t *testing.T) {
		err := &pkgerrors.UnresolvedError{Kind: "regency", ID: "9471", Name: "KOTA BARU", Scope: "Papua"}
		assert.Equal(t, `regency 9471 "KOTA BARU" unresolved in Papua`, err.Error())
		assert.True(t, pkgerrors.IsUnresolved(err))
	})

	t.Run("without scope", func(t *testing.T) {
		err := &pkgerrors.UnresolvedError{Kind: "province", ID: "96", Name: "PAPUA BARAT DAYA"}
		assert.Equal(t, `province 96 "PAPUA BARAT DAYA" unresolved`, err.Error())
	})
}

func TestScopeError(t *testing.T) {
	err := &pkgerrors.ScopeError{ProvinceID: "96", Name: "PAPUA BARAT DAYA"}
	assert.Contains(t, err.Error(), "96")
	assert.True(t, pkgerrors.IsScopeUnresolved(err))
	assert.False(t, pkgerrors.IsUnresolved(err))
}

func TestConfigError(t *testing.T) {
	base := errors.New("unknown policy")
	err := pkgerrors.NewConfigError("index", "duplicate_policy: keep", base)
	assert.Contains(t, err.Error(), "index")
	assert.Contains(t, err.Error(), "duplicate_policy")
	assert.Equal(t, base, errors.Unwrap(err))
}

func TestIOError(t *testing.T) {
	t.Run("with path", func(t *testing.T) {
		base := errors.New("permission denied")
		err := pkgerrors.NewIOError("write", "kabupaten/11.json", base)
		assert.Equal(t, "IO error during write of kabupaten/11.json: permission denied", err.Error())
		assert.Equal(t, base, err.Unwrap())
	})

	t.Run("without path", func(t *testing.T) {
		err := &pkgerrors.IOError{Operation: "list", Message: "no directory"}
		assert.Equal(t, "IO error during list: no directory", err.Error())
	})
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name string
		err  *pkgerrors.ParseError
		want string
	}{
		{
			name: "file and line",
			err:  &pkgerrors.ParseError{Format: "csv", File: "ref.csv", Line: 4, Message: "bad quote"},
			want: "parse error in csv at ref.csv:4: bad quote",
		},
		{
			name: "file only",
			err:  &pkgerrors.ParseError{Format: "json", File: "kota/11.json", Message: "unexpected EOF"},
			want: "parse error in json file kota/11.json: unexpected EOF",
		},
		{
			name: "no file",
			err:  &pkgerrors.ParseError{Format: "yaml", Message: "bad indent"},
			want: "yaml parse error: bad indent",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	assert.NoError(t, pkgerrors.WrapParse("json", "x", nil))
	assert.NoError(t, pkgerrors.WrapResource("load", "config", "", nil))

	base := errors.New("boom")
	err := pkgerrors.WrapResource("build", "index", "", base)
	assert.Equal(t, "failed to build index: boom", err.Error())
	assert.ErrorIs(t, err, base)

	err = pkgerrors.WrapParse("json", "provinsi.json", base)
	var pe *pkgerrors.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "provinsi.json", pe.File)
}
