package cascade

import (
	"fmt"
	"strings"
)

// Tier is one matching strategy, ordered from most to least confident
type Tier int

const (
	TierExactLine Tier = iota
	TierFuzzyLine
	TierRegexStructural
	TierFulltextFuzzyWindow
	TierKeywordCount
	TierPositionalFallback
)

var tierNames = [...]string{
	TierExactLine:           "EXACT_LINE",
	TierFuzzyLine:           "FUZZY_LINE",
	TierRegexStructural:     "REGEX_STRUCTURAL",
	TierFulltextFuzzyWindow: "FULLTEXT_FUZZY_WINDOW",
	TierKeywordCount:        "KEYWORD_COUNT",
	TierPositionalFallback:  "POSITIONAL_FALLBACK",
}

// AllTiers lists every tier in evaluation order
func AllTiers() []Tier {
	return []Tier{
		TierExactLine,
		TierFuzzyLine,
		TierRegexStructural,
		TierFulltextFuzzyWindow,
		TierKeywordCount,
		TierPositionalFallback,
	}
}

// String returns the tier name
func (t Tier) String() string {
	if t < 0 || int(t) >= len(tierNames) {
		return fmt.Sprintf("TIER(%d)", int(t))
	}
	return tierNames[t]
}

// ParseTier resolves a tier name, case-insensitively
func ParseTier(name string) (Tier, error) {
	for i, n := range tierNames {
		if strings.EqualFold(n, name) {
			return Tier(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tier: %s", name)
}

// MarshalText implements encoding.TextMarshaler
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MatchResult describes where a marker was found
type MatchResult struct {
	Tier      Tier `json:"tier"`
	PageIndex int  `json:"page_index"`
	// Offset is the byte offset in the page text of the line holding the
	// match; only meaningful when HasOffset is set.
	Offset    int     `json:"offset"`
	HasOffset bool    `json:"has_offset"`
	Phrase    string  `json:"phrase,omitempty"`
	Score     float64 `json:"score"`
}
