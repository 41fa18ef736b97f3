package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/wilayah/internal/cmd/table"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"wide", FormatWide, false},
		{"", "", false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestJSONFormatterKeepsAmpersand(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, map[string]string{"nama": "A & B"}))
	assert.Equal(t, "{\n  \"nama\": \"A & B\"\n}\n", buf.String())
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, map[string]int{"changed": 6}))
	assert.Equal(t, "changed: 6\n", buf.String())
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	data := table.Data{
		Headers:         []string{"Name", "Key"},
		Rows:            [][]string{{"Kab. Aceh Selatan", "ACEH SELATAN"}},
		ColumnAlignment: []table.Align{table.AlignLeft, table.AlignRight},
	}
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, data))

	out := buf.String()
	assert.Contains(t, out, "Kab. Aceh Selatan")
	assert.Contains(t, out, "ACEH SELATAN")
	assert.Contains(t, strings.ToUpper(out), "NAME")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatWide).Format(&buf, map[string]int{"changed": 6}))
	assert.Equal(t, "{\n  \"changed\": 6\n}\n", buf.String())

	buf.Reset()
	data := &table.Data{Headers: []string{"Name"}, Rows: [][]string{{"Aceh"}}}
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, data))
	assert.Contains(t, buf.String(), "Aceh")
}

func TestWrite(t *testing.T) {
	data := table.Data{Headers: []string{"Name"}, Rows: [][]string{{"Aceh"}}}
	raw := []string{"raw"}

	var tbl, js bytes.Buffer
	require.NoError(t, Write(&tbl, FormatTable, raw, data))
	require.NoError(t, Write(&js, FormatJSON, raw, data))

	assert.Contains(t, tbl.String(), "Aceh")
	assert.Equal(t, "[\n  \"raw\"\n]\n", js.String())
}
