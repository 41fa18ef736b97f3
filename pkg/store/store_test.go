package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/wilayah/pkg/constants"
	"github.com/agentstation/wilayah/pkg/errors"
	"github.com/agentstation/wilayah/pkg/refindex"
	"github.com/agentstation/wilayah/pkg/regions"
)

const referenceCSV = "\ufeffNo,Provinsi,Kabupaten/Kota\n" +
	"1,ACEH,Kabupaten Simeulue\n" +
	"2,ACEH,Kota Banda Aceh\n" +
	"short,row\n" +
	"3, JAWA BARAT , Kota Bekasi \n"

func testFS() fstest.MapFS {
	return fstest.MapFS{
		constants.ReferenceCSVPath: {Data: []byte(referenceCSV)},
		"provinsi.json":            {Data: []byte(`[{"id":"11","nama":"ACEH"},{"id":"32","nama":"JAWA BARAT"}]`)},
		"kabupaten/11.json":        {Data: []byte(`[{"id":"1101","nama":"KAB. SIMEULUE","ibukota":"Sinabang"}]`)},
		"kabupaten/1101.json":      {Data: []byte(`{"id":"1101","nama":"KAB. SIMEULUE"}`)},
		"kota/11.json":             {Data: []byte(`[{"id":"1171","nama":"KOTA BANDA ACEH"}]`)},
		"kota/3275.json":           {Data: []byte(`{"id":3275,"nama":"KOTA BEKASI"}`)},
		"kota/readme.txt":          {Data: []byte("not a record")},
	}
}

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open("", WithFS(testFS()))
	require.NoError(t, err)
	return s
}

func TestReferenceRows(t *testing.T) {
	rows, err := openTest(t).ReferenceRows()
	require.NoError(t, err)
	assert.Equal(t, []refindex.Row{
		{Number: 1, Province: "ACEH", Region: "Kabupaten Simeulue"},
		{Number: 2, Province: "ACEH", Region: "Kota Banda Aceh"},
		{Number: 3, Province: "JAWA BARAT", Region: "Kota Bekasi"},
	}, rows)
}

func TestReferenceRowsMissing(t *testing.T) {
	s, err := Open("", WithFS(fstest.MapFS{}))
	require.NoError(t, err)
	_, err = s.ReferenceRows()
	assert.True(t, errors.IsNotFound(err))
}

func TestListing(t *testing.T) {
	s := openTest(t)

	provinces, err := s.ProvinceFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"provinsi.json"}, provinces)

	files, err := s.RegionFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"kabupaten/11.json", "kabupaten/1101.json", "kota/11.json", "kota/3275.json"}, files)
}

func TestLoad(t *testing.T) {
	s := openTest(t)

	doc, err := s.Load("kabupaten/11.json")
	require.NoError(t, err)
	assert.Equal(t, regions.Regency, doc.Dir)
	assert.Equal(t, regions.Code("11"), doc.Province)
	assert.False(t, doc.Single)
	assert.Equal(t, []regions.Record{{ID: "1101", Name: "KAB. SIMEULUE"}}, doc.Records())
	capital, ok := doc.Entries[0].Field("ibukota")
	require.True(t, ok)
	assert.JSONEq(t, `"Sinabang"`, string(capital))

	doc, err = s.Load("kota/3275.json")
	require.NoError(t, err)
	assert.True(t, doc.Single)
	assert.Equal(t, regions.City, doc.Dir)
	assert.Equal(t, regions.Code("32"), doc.Province)
	assert.Equal(t, regions.Code("3275"), doc.Entries[0].ID)

	doc, err = s.Load("provinsi.json")
	require.NoError(t, err)
	assert.Equal(t, regions.Province, doc.Dir)
	assert.Len(t, doc.Entries, 2)

	_, err = s.Load("kota/99.json")
	assert.True(t, errors.IsNotFound(err))
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode("kota/11.json", []byte("  "))
	var pe *errors.ParseError
	require.ErrorAs(t, err, &pe)

	_, err = Decode("kota/11.json", []byte(`[{"id":"1171","nama":`))
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "kota/11.json", pe.File)

	_, err = Decode("kota/11.json", []byte(`[{"id":true,"nama":"X"}]`))
	assert.Error(t, err)
}

func TestSamples(t *testing.T) {
	s := openTest(t)

	names, err := s.Samples("11", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"KAB. SIMEULUE", "KOTA BANDA ACEH"}, names)

	names, err = s.Samples("11", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"KAB. SIMEULUE"}, names)

	// No list file for 32: single-record files are used.
	names, err = s.Samples("32", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"KOTA BEKASI"}, names)

	_, err = s.Samples("1101", 10)
	assert.True(t, errors.IsValidationError(err))
}

func TestSamplesSkipsUnreadableFiles(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"kabupaten/95.json": `[{"id":"9501","nama":"KAB. MERAUKE"},{"id":"9502","nama":"KAB. MIMIKA"}]`,
		"kota/95.json":      `[{"id":"9571","nama":`,
	}
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	s, err := Open(root)
	require.NoError(t, err)

	names, err := s.Samples("95", 10)
	require.Error(t, err)
	var pe *errors.ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, []string{"KAB. MERAUKE", "KAB. MIMIKA"}, names)
}

func TestSaveRoundTrip(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "kabupaten"), 0o755))
	original := `[{"id":"1101","nama":"KAB. SIMEULUE","ibukota":"Sinabang","luas":2051.48}]`
	require.NoError(t, os.WriteFile(filepath.Join(root, "kabupaten", "11.json"), []byte(original), 0o644))

	s, err := Open(root)
	require.NoError(t, err)
	doc, err := s.Load("kabupaten/11.json")
	require.NoError(t, err)

	assert.True(t, doc.Rename(0, "Kabupaten Simeulue"))
	assert.False(t, doc.Rename(0, "Kabupaten Simeulue"))
	assert.False(t, doc.Rename(5, "x"))
	require.NoError(t, s.Save(doc))

	data, err := os.ReadFile(filepath.Join(root, "kabupaten", "11.json"))
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasSuffix(text, "}\n]\n"))
	assert.Contains(t, text, "\n  {\n    \"ibukota\": \"Sinabang\",")
	assert.JSONEq(t,
		`[{"id":"1101","nama":"Kabupaten Simeulue","ibukota":"Sinabang","luas":2051.48}]`, text)

	info, err := os.Stat(filepath.Join(root, "kabupaten", "11.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.FilePermissions), info.Mode().Perm())

	leftovers, err := filepath.Glob(filepath.Join(root, "kabupaten", "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestSaveSingleKeepsNumericID(t *testing.T) {
	root := t.TempDir()
	s, err := Open(root)
	require.NoError(t, err)

	doc, err := Decode("kota/3275.json", []byte(`{"id":3275,"nama":"KOTA BEKASI & SEKITAR"}`))
	require.NoError(t, err)
	require.NoError(t, s.Save(doc))

	data, err := os.ReadFile(filepath.Join(root, "kota", "3275.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"id\": 3275,\n  \"nama\": \"KOTA BEKASI & SEKITAR\"\n}\n", string(data))
}

func TestSaveWithoutRoot(t *testing.T) {
	s := openTest(t)
	doc, err := s.Load("kota/11.json")
	require.NoError(t, err)

	err = s.Save(doc)
	var ce *errors.ConfigError
	assert.ErrorAs(t, err, &ce)
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.IsNotFound(err))

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = Open(file)
	assert.True(t, errors.IsValidationError(err))

	_, err = Open("", WithFS(nil))
	assert.True(t, errors.IsValidationError(err))
}

func TestNewEntry(t *testing.T) {
	doc := &Document{Path: "kota/11.json", Entries: []Entry{NewEntry(regions.Record{ID: "1171", Name: "Kota Banda Aceh"})}}
	var b strings.Builder
	require.NoError(t, doc.Encode(&b))
	assert.JSONEq(t, `[{"id":"1171","nama":"Kota Banda Aceh"}]`, b.String())
}

func TestProvinceOfPath(t *testing.T) {
	assert.Equal(t, regions.Code("32"), ProvinceOfPath("kota/3275.json"))
	assert.Equal(t, regions.Code("11"), ProvinceOfPath("kabupaten/11.json"))
	assert.Equal(t, regions.Code(""), ProvinceOfPath("provinsi.json"))
}
