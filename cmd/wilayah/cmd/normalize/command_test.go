package normalize

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/wilayah/cmd/application"
	"github.com/agentstation/wilayah/internal/cmd/table"
)

func execute(t *testing.T, format, stdin string, args ...string) string {
	t.Helper()
	app := &application.Mock{OutputFormatFunc: func() string { return format }}
	rootCmd := &cobra.Command{Use: "wilayah", SilenceUsage: true, SilenceErrors: true}
	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	rootCmd.AddCommand(NewCommand(app))

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"normalize"}, args...))
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return stdout.String()
}

func TestKeys(t *testing.T) {
	rows := Keys([]string{"Kab. Aceh Selatan", "KOTA ADM. JAKARTA PUSAT", "KAB. KEP. SERIBU", "DKI Jakarta"})
	assert.Equal(t, []table.KeyRow{
		{Name: "Kab. Aceh Selatan", Key: "ACEH SELATAN", Type: "regency"},
		{Name: "KOTA ADM. JAKARTA PUSAT", Key: "JAKARTA PUSAT", Type: "city"},
		{Name: "KAB. KEP. SERIBU", Key: "KEPULAUAN SERIBU", Type: "regency"},
		{Name: "DKI Jakarta", Key: "DKI JAKARTA", Type: "unknown"},
	}, rows)
}

func TestNormalizeArgs(t *testing.T) {
	out := execute(t, "json", "", "Kota Banda Aceh")

	var rows []table.KeyRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Equal(t, []table.KeyRow{{Name: "Kota Banda Aceh", Key: "BANDA ACEH", Type: "city"}}, rows)
}

func TestNormalizeStdin(t *testing.T) {
	out := execute(t, "table", "Kab. Bekasi\n\n  Kota Bekasi  \n")
	assert.Contains(t, out, "Kab. Bekasi")
	assert.Contains(t, out, "Kota Bekasi")
	assert.Equal(t, 2, strings.Count(out, "BEKASI"))
}
