package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentstation/wilayah/pkg/constants"
)

// TestReference is a small reference table covering one province.
const TestReference = `No,Provinsi,Kabupaten/Kota
1,ACEH,Kabupaten Simeulue
2,ACEH,Kabupaten Aceh Selatan
3,ACEH,Kota Banda Aceh
`

// TestFiles returns a dataset matching TestReference: one misspelled
// regency, one regency with no reference entry and one correct city.
func TestFiles() map[string]string {
	return map[string]string{
		constants.ReferenceCSVPath: TestReference,
		constants.ProvinceFile:     `[{"id":"11","nama":"ACEH"}]`,
		"kabupaten/11.json":        `[{"id":"1101","nama":"KAB. SIMEULU"},{"id":"1199","nama":"KAB. ANTAH"}]`,
		"kota/11.json":             `[{"id":"1171","nama":"Kota Banda Aceh"}]`,
	}
}

// WriteTestDataset writes files under a temporary root and returns the root.
func WriteTestDataset(t testing.TB, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), constants.DirPermissions); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if err := os.WriteFile(full, []byte(content), constants.FilePermissions); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return root
}

// ReadTestFile reads name under root.
func ReadTestFile(t testing.TB, root, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}
