package cascade

import (
	"strings"
	"unicode/utf8"

	"github.com/a3tai/disclosure-trim/internal/marker"
	"github.com/a3tai/disclosure-trim/internal/similarity"
)

// Matcher is one tier of the cascade. Match scans every page in ascending
// order and returns the match on the lowest-indexed page, if any.
type Matcher interface {
	Tier() Tier
	Match(v *View, m *marker.Marker) (MatchResult, bool)
}

// ExactLine matches lines that contain the marker's phrase variants literally.
// MatchAny markers need one variant on the line, MatchAll markers need all of them.
type ExactLine struct{}

func (ExactLine) Tier() Tier { return TierExactLine }

func (ExactLine) Match(v *View, m *marker.Marker) (MatchResult, bool) {
	phrases := v.phrases(m.Phrases)
	if len(phrases) == 0 {
		return MatchResult{}, false
	}

	for _, page := range v.pages {
		for _, line := range page.lines {
			if line.norm == "" {
				continue
			}
			if phrase, ok := containsPhrases(line.norm, phrases, m.Mode); ok {
				return MatchResult{
					Tier:      TierExactLine,
					PageIndex: page.index,
					Offset:    line.start,
					HasOffset: true,
					Phrase:    phrase,
					Score:     1,
				}, true
			}
		}
	}
	return MatchResult{}, false
}

func containsPhrases(line string, phrases []string, mode marker.MatchMode) (string, bool) {
	if mode == marker.MatchAll {
		for _, p := range phrases {
			if !strings.Contains(line, p) {
				return "", false
			}
		}
		return strings.Join(phrases, " "), true
	}

	for _, p := range phrases {
		if strings.Contains(line, p) {
			return p, true
		}
	}
	return "", false
}

// FuzzyLine matches lines whose similarity ratio to any phrase variant
// reaches Threshold. Lines of MinLineLength non-space runes or fewer are
// ignored.
type FuzzyLine struct {
	Threshold     float64
	MinLineLength int
}

func (FuzzyLine) Tier() Tier { return TierFuzzyLine }

func (f FuzzyLine) Match(v *View, m *marker.Marker) (MatchResult, bool) {
	phrases := v.phrases(m.Phrases)
	if len(phrases) == 0 {
		return MatchResult{}, false
	}

	for _, page := range v.pages {
		for _, line := range page.lines {
			if utf8.RuneCountInString(line.compact) <= f.MinLineLength {
				continue
			}

			best, bestPhrase := 0.0, ""
			for _, p := range phrases {
				if score, ok := similarity.AtLeast(p, line.norm, f.Threshold); ok && score > best {
					best, bestPhrase = score, p
				}
			}
			if bestPhrase != "" {
				return MatchResult{
					Tier:      TierFuzzyLine,
					PageIndex: page.index,
					Offset:    line.start,
					HasOffset: true,
					Phrase:    bestPhrase,
					Score:     best,
				}, true
			}
		}
	}
	return MatchResult{}, false
}

// RegexStructural applies the marker's patterns to whitespace-free lines.
// A hit only counts when the original line is shorter than the marker's
// MaxLineLength, which keeps body text from passing as a header.
type RegexStructural struct{}

func (RegexStructural) Tier() Tier { return TierRegexStructural }

func (RegexStructural) Match(v *View, m *marker.Marker) (MatchResult, bool) {
	if len(m.Patterns) == 0 {
		return MatchResult{}, false
	}

	for _, page := range v.pages {
		for _, line := range page.lines {
			if line.compact == "" {
				continue
			}
			if m.MaxLineLength > 0 && line.length >= m.MaxLineLength {
				continue
			}
			for _, re := range m.Patterns {
				if re.MatchString(line.compact) {
					return MatchResult{
						Tier:      TierRegexStructural,
						PageIndex: page.index,
						Offset:    line.start,
						HasOffset: true,
						Phrase:    re.String(),
						Score:     1,
					}, true
				}
			}
		}
	}
	return MatchResult{}, false
}

// FulltextWindow slides each phrase variant across the whitespace-free text
// of the whole document. It copes with headers that extraction split across
// lines or fused with neighbouring words. Documents longer than MaxRunes
// normalized runes are skipped; MaxRunes <= 0 disables the bound.
type FulltextWindow struct {
	Threshold float64
	MaxRunes  int
}

func (FulltextWindow) Tier() Tier { return TierFulltextFuzzyWindow }

func (f FulltextWindow) Match(v *View, m *marker.Marker) (MatchResult, bool) {
	if len(m.Phrases) == 0 || len(v.pages) == 0 {
		return MatchResult{}, false
	}

	// Concatenate the compact pages, remembering where each one starts
	var text []string
	starts := make([]int, len(v.pages))
	for i, page := range v.pages {
		starts[i] = len(text)
		text = append(text, similarity.Runes(page.compact)...)
		if f.MaxRunes > 0 && len(text) > f.MaxRunes {
			return MatchResult{}, false
		}
	}

	best := similarity.WindowMatch{Offset: -1}
	bestPhrase := ""
	seen := make(map[string]bool, len(m.Phrases))
	for _, phrase := range m.Phrases {
		compact := v.normalizer.Compact(phrase)
		if compact == "" || seen[compact] {
			continue
		}
		seen[compact] = true

		// Only an earlier window than the current best can win
		wm, ok := similarity.FirstWindow(text, similarity.Runes(compact), f.Threshold, best.Offset)
		if ok {
			best, bestPhrase = wm, v.normalizer.Line(phrase)
		}
	}
	if best.Offset < 0 {
		return MatchResult{}, false
	}

	p := pageAt(starts, len(text), best.Offset)
	page := v.pages[p]
	pos := ResolvePosition(page.text, page.compact, best.Offset-starts[p])
	return MatchResult{
		Tier:      TierFulltextFuzzyWindow,
		PageIndex: page.index,
		Offset:    LineStart(page.text, pos),
		HasOffset: true,
		Phrase:    bestPhrase,
		Score:     best.Score,
	}, true
}

// pageAt returns the page whose compact run contains offset. Pages with no
// compact text own no offsets.
func pageAt(starts []int, total, offset int) int {
	for i := len(starts) - 1; i >= 0; i-- {
		end := total
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		if starts[i] <= offset && offset < end {
			return i
		}
	}
	return 0
}

// KeywordCount accepts the first page containing at least MinKeywords of the
// marker's keywords anywhere in its text.
type KeywordCount struct{}

func (KeywordCount) Tier() Tier { return TierKeywordCount }

func (KeywordCount) Match(v *View, m *marker.Marker) (MatchResult, bool) {
	keywords := v.terms(m.Keywords)
	if len(keywords) == 0 {
		return MatchResult{}, false
	}
	minimum := m.MinKeywords
	if minimum < 1 {
		minimum = 1
	}

	for _, page := range v.pages {
		count := 0
		for _, k := range keywords {
			if strings.Contains(page.norm, k) {
				count++
			}
		}
		if count >= minimum {
			return MatchResult{
				Tier:      TierKeywordCount,
				PageIndex: page.index,
				Phrase:    strings.Join(keywords, ","),
				Score:     float64(count) / float64(len(keywords)),
			}, true
		}
	}
	return MatchResult{}, false
}

// Positional is the last resort for long documents: the first page in the
// trailing part of the document (from floor(total*StartRatio)) that mentions
// any fallback keyword. Documents of MinPages pages or fewer are never matched.
type Positional struct {
	MinPages   int
	StartRatio float64
}

func (Positional) Tier() Tier { return TierPositionalFallback }

func (p Positional) Match(v *View, m *marker.Marker) (MatchResult, bool) {
	keywords := v.terms(m.FallbackKeywords)
	total := len(v.pages)
	if len(keywords) == 0 || total <= p.MinPages {
		return MatchResult{}, false
	}

	for i := int(float64(total) * p.StartRatio); i < total; i++ {
		page := v.pages[i]
		for _, k := range keywords {
			if strings.Contains(page.norm, k) {
				return MatchResult{
					Tier:      TierPositionalFallback,
					PageIndex: page.index,
					Phrase:    k,
				}, true
			}
		}
	}
	return MatchResult{}, false
}
