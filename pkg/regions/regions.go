// Package regions defines the data model shared by every reconciliation
// component: region types, identifier codes and the records stored on disk.
package regions

import (
	"regexp"
	"strconv"
	"strings"
)

// Type is the administrative tier of a region.
type Type int

const (
	// Unknown means no type signal is available.
	Unknown Type = iota
	// Province is a "provinsi".
	Province
	// Regency is a "kabupaten".
	Regency
	// City is a "kota".
	City
)

// String returns the lower-case English name of the type.
func (t Type) String() string {
	switch t {
	case Province:
		return "province"
	case Regency:
		return "regency"
	case City:
		return "city"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so reports render names, not numbers.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ParseType converts a type name back to a Type. Domain names
// ("provinsi", "kabupaten", "kota") are accepted as well.
func ParseType(s string) Type {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "province", "provinsi", "propinsi":
		return Province
	case "regency", "kabupaten", "kab":
		return Regency
	case "city", "kota":
		return City
	default:
		return Unknown
	}
}

// Code is a numeric identifier code of 2 or 4 digits. The first two digits
// identify the province; the last two, when present, identify the sub-region.
type Code string

// Sub-region ranges of the coding scheme.
const (
	regencyMin = 1
	regencyMax = 69
	cityMin    = 71
	cityMax    = 99
)

// Valid reports whether c is a 2- or 4-digit numeric code.
func (c Code) Valid() bool {
	if len(c) != 2 && len(c) != 4 {
		return false
	}
	for _, r := range c {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Province returns the two-digit province part of the code, or "" when c is invalid.
func (c Code) Province() Code {
	if !c.Valid() {
		return ""
	}
	return c[:2]
}

// IsProvince reports whether c identifies a province.
func (c Code) IsProvince() bool {
	return c.Valid() && len(c) == 2
}

// Type derives the region type from the code. Sub-region values 01-69 are
// regencies, 71-99 cities; everything else carries no type.
func (c Code) Type() Type {
	if !c.Valid() {
		return Unknown
	}
	if len(c) == 2 {
		return Province
	}
	n, err := strconv.Atoi(string(c[2:]))
	if err != nil {
		return Unknown
	}
	switch {
	case n >= regencyMin && n <= regencyMax:
		return Regency
	case n >= cityMin && n <= cityMax:
		return City
	default:
		return Unknown
	}
}

var (
	regencyPrefix = regexp.MustCompile(`(?i)^(?:kabupaten|kab\b\.?)`)
	cityPrefix    = regexp.MustCompile(`(?i)^(?:wil(?:ayah)?\b\.?\s*)?kota\b`)
)

// TypeOfName recognizes the type prefix carried by a display name:
// "Kabupaten" or "Kab." is a Regency; "Kota", "Kota Adm." or "Wil. Kota" is a City.
func TypeOfName(name string) Type {
	name = strings.TrimSpace(name)
	switch {
	case regencyPrefix.MatchString(name):
		return Regency
	case cityPrefix.MatchString(name):
		return City
	default:
		return Unknown
	}
}

// Record is a region as stored in a JSON document. Name is the field the
// reconciliation process may overwrite.
type Record struct {
	ID   Code   `json:"id"`
	Name string `json:"nama"`
}

// Canonical is an authoritative region from the reference table.
type Canonical struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Type     Type   `json:"type"`
	Province string `json:"province,omitempty"` // empty for provinces
}
