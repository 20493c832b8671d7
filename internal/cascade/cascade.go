// Package cascade locates a marker in a paginated document by trying
// matching strategies from most to least confident.
//
// Each tier is evaluated over the whole document before the next one is
// tried. Within a tier the lowest page index wins, so a confident match
// anywhere beats a lenient match on an earlier page.
package cascade

import (
	"sort"

	"github.com/a3tai/disclosure-trim/internal/document"
	"github.com/a3tai/disclosure-trim/internal/marker"
	"github.com/a3tai/disclosure-trim/internal/textnorm"
)

// Default tuning values
const (
	DefaultFuzzyThreshold       = 0.8
	DefaultMinFuzzyLineLength   = 5
	DefaultPositionalMinPages   = 5
	DefaultPositionalStartRatio = 0.67
	DefaultMaxWindowRunes       = 200_000
)

// Options tunes the built-in tiers
type Options struct {
	FuzzyThreshold       float64
	MinFuzzyLineLength   int
	PositionalMinPages   int
	PositionalStartRatio float64
	MaxWindowRunes       int
	Normalizer           textnorm.Normalizer
}

// DefaultOptions returns the standard tuning
func DefaultOptions() Options {
	return Options{
		FuzzyThreshold:       DefaultFuzzyThreshold,
		MinFuzzyLineLength:   DefaultMinFuzzyLineLength,
		PositionalMinPages:   DefaultPositionalMinPages,
		PositionalStartRatio: DefaultPositionalStartRatio,
		MaxWindowRunes:       DefaultMaxWindowRunes,
	}
}

// Cascade runs matchers in tier order
type Cascade struct {
	matchers   []Matcher
	normalizer textnorm.Normalizer
}

// New creates a cascade with every built-in tier
func New(opts Options) *Cascade {
	return NewWithMatchers(opts.Normalizer,
		ExactLine{},
		FuzzyLine{Threshold: opts.FuzzyThreshold, MinLineLength: opts.MinFuzzyLineLength},
		RegexStructural{},
		FulltextWindow{Threshold: opts.FuzzyThreshold, MaxRunes: opts.MaxWindowRunes},
		KeywordCount{},
		Positional{MinPages: opts.PositionalMinPages, StartRatio: opts.PositionalStartRatio},
	)
}

// NewWithMatchers creates a cascade from custom matchers. Matchers are
// ordered by tier; matchers sharing a tier keep the order given.
func NewWithMatchers(n textnorm.Normalizer, matchers ...Matcher) *Cascade {
	ordered := make([]Matcher, len(matchers))
	copy(ordered, matchers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Tier() < ordered[j].Tier()
	})
	return &Cascade{matchers: ordered, normalizer: n}
}

// Tiers returns the tiers this cascade evaluates, in order
func (c *Cascade) Tiers() []Tier {
	tiers := make([]Tier, 0, len(c.matchers))
	for _, m := range c.matchers {
		tiers = append(tiers, m.Tier())
	}
	return tiers
}

// Locate finds the marker in doc. The second result is false when no tier
// matched, which is an expected outcome rather than an error.
func (c *Cascade) Locate(doc *document.Document, m *marker.Marker) (MatchResult, bool) {
	return c.LocateView(NewView(doc.Pages(), c.normalizer), m)
}

// LocateView is Locate over an already normalized document
func (c *Cascade) LocateView(v *View, m *marker.Marker) (MatchResult, bool) {
	if v.Len() == 0 || m == nil {
		return MatchResult{}, false
	}

	for _, matcher := range c.matchers {
		if !m.AllowsTier(matcher.Tier().String()) {
			continue
		}
		if result, ok := matcher.Match(v, m); ok {
			return result, true
		}
	}
	return MatchResult{}, false
}
