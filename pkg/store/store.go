// Package store reads and writes a region dataset laid out on disk:
//
//	referensi/master_prov_kabupaten_kota.csv   reference table: No, Province, Region
//	provinsi.json, propinsi.json               province lists
//	kabupaten/<pp>.json, kota/<pp>.json        records of province pp
//	kabupaten/<ppkk>.json, kota/<ppkk>.json    a single record
//
// Reads go through an fs.FS so tests can run against in-memory trees; writes
// go to the root directory on disk.
package store

import (
	"bytes"
	"encoding/csv"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agentstation/wilayah/pkg/constants"
	"github.com/agentstation/wilayah/pkg/errors"
	"github.com/agentstation/wilayah/pkg/refindex"
	"github.com/agentstation/wilayah/pkg/regions"
)

// Store is a directory-backed region dataset.
type Store struct {
	root string
	fsys fs.FS
}

// Option configures a Store.
type Option func(*Store) error

// WithFS reads the dataset from fsys instead of the root directory.
func WithFS(fsys fs.FS) Option {
	return func(s *Store) error {
		if fsys == nil {
			return &errors.ValidationError{Field: "fs", Message: "cannot be nil"}
		}
		s.fsys = fsys
		return nil
	}
}

// Open opens the dataset rooted at root.
func Open(root string, opts ...Option) (*Store, error) {
	s := &Store{root: root}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.fsys != nil {
		return s, nil
	}

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("dataset root", root)
		}
		return nil, errors.WrapIO("stat", root, err)
	}
	if !info.IsDir() {
		return nil, errors.NewValidationError("root", root, "not a directory")
	}
	s.fsys = os.DirFS(root)
	return s, nil
}

// Root returns the dataset root directory.
func (s *Store) Root() string {
	return s.root
}

// ReferenceRows reads the reference table. Rows with fewer than three
// columns, or whose first column is not a number (headers), are skipped.
func (s *Store) ReferenceRows() ([]refindex.Row, error) {
	f, err := s.fsys.Open(constants.ReferenceCSVPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewNotFoundError("reference table", constants.ReferenceCSVPath)
		}
		return nil, errors.WrapIO("open", constants.ReferenceCSVPath, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows []refindex.Row
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line, _ := r.FieldPos(0)
			return nil, &errors.ParseError{
				Format:  "csv",
				File:    constants.ReferenceCSVPath,
				Line:    line,
				Message: err.Error(),
				Err:     err,
			}
		}
		if len(rec) < constants.MinCSVColumns {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(rec[0], "\ufeff")))
		if err != nil {
			continue
		}
		rows = append(rows, refindex.Row{
			Number:   n,
			Province: strings.TrimSpace(rec[1]),
			Region:   strings.TrimSpace(rec[2]),
		})
	}
	return rows, nil
}

// ProvinceFiles returns the province list files present in the dataset.
func (s *Store) ProvinceFiles() ([]string, error) {
	var files []string
	for _, name := range []string{constants.ProvinceFile, constants.ProvinceFileAlt} {
		_, err := fs.Stat(s.fsys, name)
		switch {
		case err == nil:
			files = append(files, name)
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, errors.WrapIO("stat", name, err)
		}
	}
	return files, nil
}

// RegionFiles returns the region record files, kabupaten/ first, each
// directory in lexical order.
func (s *Store) RegionFiles() ([]string, error) {
	var files []string
	for _, dir := range []string{constants.RegencyDir, constants.CityDir} {
		names, err := s.jsonFiles(dir)
		if err != nil {
			return nil, err
		}
		files = append(files, names...)
	}
	return files, nil
}

func (s *Store) jsonFiles(dir string) ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.WrapIO("list", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != constants.JSONExt {
			continue
		}
		files = append(files, path.Join(dir, e.Name()))
	}
	return files, nil
}

// Load reads and decodes the record file at p.
func (s *Store) Load(p string) (*Document, error) {
	data, err := fs.ReadFile(s.fsys, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewNotFoundError("file", p)
		}
		return nil, errors.WrapIO("read", p, err)
	}
	return Decode(p, data)
}

// Save writes doc back to the root directory. The file is replaced
// atomically.
func (s *Store) Save(doc *Document) error {
	if s.root == "" {
		return &errors.ConfigError{
			Component: "store",
			Message:   "no root directory configured for saving",
		}
	}

	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		return errors.WrapParse("json", doc.Path, err)
	}

	fullPath := filepath.Join(s.root, filepath.FromSlash(doc.Path))
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(fullPath)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return errors.WrapIO("write", doc.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("write", doc.Path, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		return errors.WrapIO("chmod", doc.Path, err)
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		return errors.WrapIO("move", doc.Path, err)
	}
	return nil
}

// Samples returns up to n region names filed under a province, regencies
// first. A non-positive n returns every name. The per-province list files are
// preferred; single-record files are used when a list is absent.
//
// Files that cannot be listed or read are skipped. Their errors are joined
// and returned alongside the names collected from the readable files.
func (s *Store) Samples(province regions.Code, n int) ([]string, error) {
	if !province.IsProvince() {
		return nil, errors.NewValidationError("province", string(province), "must be a two-digit code")
	}

	var names []string
	var errs []error
	for _, dir := range []string{constants.RegencyDir, constants.CityDir} {
		files, err := s.provinceFiles(dir, province)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, p := range files {
			doc, err := s.Load(p)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			for _, e := range doc.Entries {
				if strings.TrimSpace(e.Name) == "" {
					continue
				}
				names = append(names, e.Name)
				if n > 0 && len(names) == n {
					return names, errors.Join(errs...)
				}
			}
		}
	}
	return names, errors.Join(errs...)
}

func (s *Store) provinceFiles(dir string, province regions.Code) ([]string, error) {
	list := path.Join(dir, string(province)+constants.JSONExt)
	if _, err := fs.Stat(s.fsys, list); err == nil {
		return []string{list}, nil
	}

	all, err := s.jsonFiles(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, p := range all {
		stem := regions.Code(strings.TrimSuffix(path.Base(p), constants.JSONExt))
		if len(stem) == 4 && stem.Province() == province {
			files = append(files, p)
		}
	}
	return files, nil
}
