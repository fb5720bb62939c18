package match

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Similarity returns the longest-matching-block ratio of a and b, compared
// rune by rune: 2*M/T where M is the number of matched runes and T the total
// number of runes in both strings. Two empty strings are identical.
func Similarity(a, b string) float64 {
	ra, rb := runeStrings(a), runeStrings(b)
	if len(ra)+len(rb) == 0 {
		return 1.0
	}
	return difflib.NewMatcher(ra, rb).Ratio()
}

func runeStrings(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
