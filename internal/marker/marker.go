package marker

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// MatchMode controls how phrase variants combine on the exact-line tier
type MatchMode string

const (
	// MatchAny treats phrase variants as alternative spellings of one header
	MatchAny MatchMode = "any"
	// MatchAll requires every phrase variant on the same line
	MatchAll MatchMode = "all"
)

// Built-in marker names
const (
	Section        = "section"
	Signature      = "signature"
	DisclosureForm = "disclosure-form"
)

var ErrUnknownMarker = errors.New("unknown marker")

// Marker is a named cut-line concept: ordered phrase variants plus the
// optional structural patterns and keyword sets the lenient tiers use.
type Marker struct {
	Name    string
	Phrases []string
	Mode    MatchMode

	// Patterns are matched against whitespace-free, lower-cased lines
	Patterns []*regexp.Regexp
	// MaxLineLength rejects pattern hits on lines this long or longer; 0 disables the check
	MaxLineLength int

	Keywords    []string
	MinKeywords int

	// FallbackKeywords are the loose terms searched near the end of long documents
	FallbackKeywords []string

	// Tiers limits which cascade tiers apply, by tier name; empty means all
	Tiers []string
}

// Validate checks that the marker can be matched at all
func (m *Marker) Validate() error {
	if m.Name == "" {
		return errors.New("marker name cannot be empty")
	}
	if len(m.Phrases) == 0 && len(m.Patterns) == 0 && len(m.Keywords) == 0 && len(m.FallbackKeywords) == 0 {
		return fmt.Errorf("marker %q has no phrases, patterns or keywords", m.Name)
	}
	if m.Mode != MatchAny && m.Mode != MatchAll {
		return fmt.Errorf("marker %q: invalid match mode %q (must be %q or %q)", m.Name, m.Mode, MatchAny, MatchAll)
	}
	if m.MinKeywords < 0 || m.MinKeywords > len(m.Keywords) {
		return fmt.Errorf("marker %q: min keywords %d out of range [0, %d]", m.Name, m.MinKeywords, len(m.Keywords))
	}
	if m.MaxLineLength < 0 {
		return fmt.Errorf("marker %q: max line length cannot be negative", m.Name)
	}
	return nil
}

// AllowsTier reports whether the named tier applies to this marker
func (m *Marker) AllowsTier(tier string) bool {
	if len(m.Tiers) == 0 {
		return true
	}
	for _, t := range m.Tiers {
		if strings.EqualFold(t, tier) {
			return true
		}
	}
	return false
}

// Set is a registry of markers by name
type Set struct {
	markers map[string]*Marker
}

// NewSet creates a set holding the given markers. Later duplicates replace earlier ones.
func NewSet(markers ...*Marker) *Set {
	s := &Set{markers: make(map[string]*Marker, len(markers))}
	for _, m := range markers {
		s.markers[m.Name] = m
	}
	return s
}

// Get looks up a marker by name
func (s *Set) Get(name string) (*Marker, error) {
	m, ok := s.markers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMarker, name)
	}
	return m, nil
}

// Names returns the sorted marker names
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.markers))
	for name := range s.markers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge returns a new set with other's markers overriding s's
func (s *Set) Merge(other *Set) *Set {
	out := NewSet()
	for name, m := range s.markers {
		out.markers[name] = m
	}
	if other != nil {
		for name, m := range other.markers {
			out.markers[name] = m
		}
	}
	return out
}
