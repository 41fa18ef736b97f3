package store

import (
	"bytes"
	"encoding/json"
	"io"
	"path"
	"strings"

	"github.com/agentstation/wilayah/pkg/constants"
	"github.com/agentstation/wilayah/pkg/errors"
	"github.com/agentstation/wilayah/pkg/regions"
)

// Entry is one region object of a record file. Fields other than the
// identifier and the name are kept as-is and written back unchanged.
type Entry struct {
	ID   regions.Code
	Name string

	fields map[string]json.RawMessage
}

// NewEntry creates an entry holding only a record.
func NewEntry(rec regions.Record) Entry {
	return Entry{ID: rec.ID, Name: rec.Name}
}

// Record returns the identifier and name of the entry.
func (e Entry) Record() regions.Record {
	return regions.Record{ID: e.ID, Name: e.Name}
}

// Field returns the raw value of any other JSON field of the entry.
func (e Entry) Field(name string) (json.RawMessage, bool) {
	v, ok := e.fields[name]
	return v, ok
}

// UnmarshalJSON implements json.Unmarshaler. Numeric identifiers are accepted
// and kept numeric on write.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if raw, ok := fields[constants.IDField]; ok {
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			var n json.Number
			if err := json.Unmarshal(raw, &n); err != nil {
				return errors.NewValidationError(constants.IDField, string(raw), "must be a string or number")
			}
			id = n.String()
		}
		e.ID = regions.Code(strings.TrimSpace(id))
	}
	if raw, ok := fields[constants.NameField]; ok {
		if err := json.Unmarshal(raw, &e.Name); err != nil {
			return errors.NewValidationError(constants.NameField, string(raw), "must be a string")
		}
	}

	e.fields = fields
	return nil
}

// MarshalJSON implements json.Marshaler.
func (e Entry) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(e.fields)+2)
	for k, v := range e.fields {
		out[k] = v
	}
	if _, ok := out[constants.IDField]; !ok && e.ID != "" {
		id, err := marshal(string(e.ID))
		if err != nil {
			return nil, err
		}
		out[constants.IDField] = id
	}
	name, err := marshal(e.Name)
	if err != nil {
		return nil, err
	}
	out[constants.NameField] = name
	return marshal(out)
}

// marshal is json.Marshal without HTML escaping, so names such as
// "Kota Tual & Kei" survive a round trip unchanged.
func marshal(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Document is one record file: a list of entries, or a single entry object.
type Document struct {
	// Path is slash separated and relative to the store root.
	Path string
	// Dir is the type implied by the file's location: Province for the
	// province lists, Regency under kabupaten/, City under kota/.
	Dir regions.Type
	// Province is the province code the file belongs to, when known.
	Province regions.Code
	// Single is set for files holding one object rather than a list.
	Single bool

	Entries []Entry
}

// Decode parses the contents of the record file at p.
func Decode(p string, data []byte) (*Document, error) {
	doc := &Document{Path: p, Dir: dirType(p)}

	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return nil, errors.NewParseError("json", p, "empty file", nil)
	case trimmed[0] == '{':
		var e Entry
		if err := json.Unmarshal(trimmed, &e); err != nil {
			return nil, errors.WrapParse("json", p, err)
		}
		doc.Single = true
		doc.Entries = []Entry{e}
	default:
		if err := json.Unmarshal(trimmed, &doc.Entries); err != nil {
			return nil, errors.WrapParse("json", p, err)
		}
	}

	if doc.Dir != regions.Province {
		doc.Province = provinceOf(p, doc.Entries)
	}
	return doc, nil
}

// Encode writes the document as indented JSON followed by a newline.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", constants.JSONIndent)
	if d.Single && len(d.Entries) == 1 {
		return enc.Encode(d.Entries[0])
	}
	entries := d.Entries
	if entries == nil {
		entries = []Entry{}
	}
	return enc.Encode(entries)
}

// Records returns the records of the document in file order.
func (d *Document) Records() []regions.Record {
	out := make([]regions.Record, len(d.Entries))
	for i, e := range d.Entries {
		out[i] = e.Record()
	}
	return out
}

// Rename sets the name of entry i and reports whether it changed.
func (d *Document) Rename(i int, name string) bool {
	if i < 0 || i >= len(d.Entries) || d.Entries[i].Name == name {
		return false
	}
	d.Entries[i].Name = name
	return true
}

func dirType(p string) regions.Type {
	dir, _, _ := strings.Cut(p, "/")
	switch {
	case dir == constants.RegencyDir:
		return regions.Regency
	case dir == constants.CityDir:
		return regions.City
	case p == constants.ProvinceFile || p == constants.ProvinceFileAlt:
		return regions.Province
	default:
		return regions.Unknown
	}
}

// ProvinceOfPath returns the province code encoded in a record file name
// ("kota/3275.json" is province 32), or "" when the name carries none.
func ProvinceOfPath(p string) regions.Code {
	return regions.Code(strings.TrimSuffix(path.Base(p), constants.JSONExt)).Province()
}

func provinceOf(p string, entries []Entry) regions.Code {
	if code := ProvinceOfPath(p); code != "" {
		return code
	}
	for _, e := range entries {
		if code := e.ID.Province(); code != "" {
			return code
		}
	}
	return ""
}
