// Package normalize turns region display names into comparison keys.
//
// A key is the upper-case, ASCII-folded name with its leading administrative
// prefix removed and its archipelago qualifier spelled out:
//
//	Key("KAB. ACEH SELATAN")        == "ACEH SELATAN"
//	Key("Kabupaten Aceh Selatan")   == "ACEH SELATAN"
//	Key("Kota Adm. Jakarta Pusat")  == "JAKARTA PUSAT"
//	Key("Kab. Kep. Seribu")         == "KEPULAUAN SERIBU"
//
// Key is pure and idempotent: Key(Key(x)) == Key(x).
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// adminPrefix matches one leading administrative token. Longer
	// alternatives come first; each needs a word boundary so that
	// "KOTABARU" or "KABANJAHE" are left alone.
	adminPrefix = regexp.MustCompile(`^(?:KABUPATEN|KOTA\s+ADMINISTRASI|KOTA\s+ADM|KAB|KOTA|WILAYAH|WIL|ADMINISTRASI|ADM)\b\.?\s*`)

	// archipelago matches a leading "KEP.", "KEP" or "KEPULAUAN" but not "KEPAHIANG".
	archipelago = regexp.MustCompile(`^(?:KEPULAUAN|KEP)\b\.?\s*`)
)

const archipelagoForm = "KEPULAUAN "

// Key returns the comparison key of a region name.
func Key(name string) string {
	s := collapse(strings.ToUpper(unidecode.Unidecode(name)))

	for {
		loc := adminPrefix.FindStringIndex(s)
		if loc == nil {
			break
		}
		rest := strings.TrimSpace(s[loc[1]:])
		if rest == "" {
			break
		}
		s = rest
	}

	s = archipelago.ReplaceAllLiteralString(s, archipelagoForm)
	return collapse(s)
}

// Tokens splits a key into its alphanumeric words: "YAPEN-WAROPEN" yields
// "YAPEN" and "WAROPEN".
func Tokens(key string) []string {
	return strings.FieldsFunc(key, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// HasToken reports whether key contains token as a whole word.
func HasToken(key, token string) bool {
	for _, t := range Tokens(key) {
		if t == token {
			return true
		}
	}
	return false
}

// collapse folds runs of whitespace into single spaces and trims the ends.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// particles stay lower-case inside a title-cased name.
var particles = map[string]bool{
	"di":  true,
	"dan": true,
	"ke":  true,
	"d/h": true,
}

// TitleCase renders an upper-case raw name the way the reference table writes
// names: the abbreviated "KAB." prefix is spelled out, words are title-cased
// and connecting particles stay lower-case.
//
//	TitleCase("KAB. ACEH SELATAN") == "Kabupaten Aceh Selatan"
func TitleCase(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}

	switch strings.ToUpper(words[0]) {
	case "KAB.", "KAB":
		words[0] = "Kabupaten"
	case "KOTA.":
		words[0] = "Kota"
	}

	caser := cases.Title(language.Indonesian)
	for i, w := range words {
		lower := strings.ToLower(w)
		if i > 0 && particles[lower] {
			words[i] = lower
			continue
		}
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}
