// Package similarity scores how alike two strings are using difflib's
// Ratcliff/Obershelp matcher: 2*M / (len(a)+len(b)), where M is the total
// size of the matching blocks.
package similarity

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Ratio returns the similarity of a and b in [0,1], compared rune by rune.
// Two empty strings are identical.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(Runes(a), Runes(b)).Ratio()
}

// AtLeast reports whether Ratio(a, b) >= threshold, skipping the full
// comparison when the cheap upper bounds already rule it out.
func AtLeast(a, b string, threshold float64) (float64, bool) {
	m := difflib.NewMatcher(Runes(a), Runes(b))
	if m.RealQuickRatio() < threshold || m.QuickRatio() < threshold {
		return 0, false
	}
	ratio := m.Ratio()
	return ratio, ratio >= threshold
}

// Runes splits s into one-rune strings, the element type difflib compares
func Runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
