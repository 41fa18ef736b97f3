// Package similarity scores how alike two comparison keys are.
package similarity

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Ratio returns 1 - d/max(len(a), len(b)) where d is the Levenshtein
// distance between a and b, counted in runes. It is symmetric and lies in
// [0, 1]; two empty strings are identical.
func Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := max(la, lb)
	if longest == 0 {
		return 1.0
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(d)/float64(longest)
}
