package reconciler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/wilayah/pkg/refindex"
	"github.com/agentstation/wilayah/pkg/store"
)

const testReference = `No,Provinsi,Kabupaten/Kota
1,ACEH,Kabupaten Simeulue
2,ACEH,Kabupaten Aceh Selatan
3,ACEH,Kota Banda Aceh
4,PAPUA,Kabupaten Kepulauan Yapen-Waropen
5,PAPUA,Kabupaten Jayapura
6,PAPUA,Kabupaten Mimika
7,PAPUA,Kabupaten Merauke
8,PAPUA,Kota Jayapura
9,PAPUA,Kabupaten/Kota Lainnya
`

var testFiles = map[string]string{
	"referensi/master_prov_kabupaten_kota.csv": testReference,
	"provinsi.json": `[{"id":"11","nama":"Aceh"},{"id":"94","nama":"PAPUA"},{"id":"95","nama":"PAPUA SELATAN"}]`,
	"kabupaten/11.json": `[
  {"id":"1101","nama":"KAB. SIMEULU","ibukota":"Sinabang"},
  {"id":"1103","nama":"KAB. ACEH SELATAN"},
  {"id":"1199","nama":"KAB. ANTAH"}
]`,
	"kabupaten/94.json": `[{"id":"9405","nama":"Kabupaten Kepulauan Yapen"}]`,
	"kabupaten/95.json": `[{"id":"9501","nama":"KAB. MERAUKE"},{"id":"9502","nama":"KAB. MIMIKA"}]`,
	"kota/11.json":      `[{"id":"1171","nama":"Kota Banda Aceh"}]`,
	"kota/99.json":      `[{"id":"9971","nama":"KOTA ENTAH"}]`,
}

// writeDataset writes the test dataset plus extra files to a temporary root.
func writeDataset(t *testing.T, extra map[string]string) string {
	t.Helper()
	root := t.TempDir()
	write := func(files map[string]string) {
		for name, content := range files {
			full := filepath.Join(root, filepath.FromSlash(name))
			require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
			require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
		}
	}
	write(testFiles)
	write(extra)
	return root
}

// openDataset opens root and builds its reference index.
func openDataset(t *testing.T, root string) (*store.Store, *refindex.Index) {
	t.Helper()
	st, err := store.Open(root)
	require.NoError(t, err)
	rows, err := st.ReferenceRows()
	require.NoError(t, err)
	idx, err := refindex.Build(rows)
	require.NoError(t, err)
	return st, idx
}

// snapshot reads every file under root.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return files
}
