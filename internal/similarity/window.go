package similarity

import (
	"github.com/pmezard/go-difflib/difflib"
)

// WindowMatch is the first window of text that scored at or above the threshold
type WindowMatch struct {
	Offset int // rune offset of the window in text
	Score  float64
}

// FirstWindow slides a window of len(pattern) runes across text and returns
// the first window whose ratio against pattern is >= threshold. Only offsets
// below limit are considered; limit < 0 means no limit.
//
// A running character-multiset intersection gives difflib's quick ratio for
// every offset in O(1), so the full matcher only runs on plausible windows.
func FirstWindow(text, pattern []string, threshold float64, limit int) (WindowMatch, bool) {
	m := len(pattern)
	last := len(text) - m
	if m == 0 || last < 0 {
		return WindowMatch{}, false
	}
	if limit >= 0 && last >= limit {
		last = limit - 1
	}

	want := make(map[string]int, m)
	for _, s := range pattern {
		want[s]++
	}
	have := make(map[string]int, m)
	common := 0
	add := func(s string) {
		have[s]++
		if have[s] <= want[s] {
			common++
		}
	}
	remove := func(s string) {
		if have[s] <= want[s] {
			common--
		}
		have[s]--
	}

	for _, s := range text[:m] {
		add(s)
	}

	matcher := difflib.NewMatcher(pattern, nil)
	for i := 0; i <= last; i++ {
		if i > 0 {
			remove(text[i-1])
			add(text[i+m-1])
		}

		if float64(2*common)/float64(2*m) < threshold {
			continue
		}
		matcher.SetSeq2(text[i : i+m])
		if ratio := matcher.Ratio(); ratio >= threshold {
			return WindowMatch{Offset: i, Score: ratio}, true
		}
	}
	return WindowMatch{}, false
}
