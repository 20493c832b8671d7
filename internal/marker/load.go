package marker

import (
	"bytes"
	"fmt"
	"io"
	"regexp"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk marker catalog layout
type catalogFile struct {
	Markers []markerSpec `yaml:"markers"`
}

type markerSpec struct {
	Name             string   `yaml:"name"`
	Mode             string   `yaml:"mode"`
	Phrases          []string `yaml:"phrases"`
	Patterns         []string `yaml:"patterns"`
	MaxLineLength    int      `yaml:"max_line_length"`
	Keywords         []string `yaml:"keywords"`
	MinKeywords      int      `yaml:"min_keywords"`
	FallbackKeywords []string `yaml:"fallback_keywords"`
	Tiers            []string `yaml:"tiers"`
}

// Parse reads a YAML marker catalog
func Parse(r io.Reader) (*Set, error) {
	var catalog catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		if err == io.EOF {
			return NewSet(), nil
		}
		return nil, fmt.Errorf("failed to decode marker catalog: %w", err)
	}

	markers := make([]*Marker, 0, len(catalog.Markers))
	for i, entry := range catalog.Markers {
		m, err := entry.build()
		if err != nil {
			return nil, fmt.Errorf("marker %d: %w", i, err)
		}
		markers = append(markers, m)
	}
	return NewSet(markers...), nil
}

// LoadFile reads a YAML marker catalog from fs
func LoadFile(fs afero.Fs, path string) (*Set, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("cannot read marker catalog %s: %w", path, err)
	}
	return Parse(bytes.NewReader(data))
}

func (s markerSpec) build() (*Marker, error) {
	mode := MatchMode(s.Mode)
	if mode == "" {
		mode = MatchAny
	}

	patterns := make([]*regexp.Regexp, 0, len(s.Patterns))
	for _, p := range s.Patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		patterns = append(patterns, re)
	}

	m := &Marker{
		Name:             s.Name,
		Mode:             mode,
		Phrases:          s.Phrases,
		Patterns:         patterns,
		MaxLineLength:    s.MaxLineLength,
		Keywords:         s.Keywords,
		MinKeywords:      s.MinKeywords,
		FallbackKeywords: s.FallbackKeywords,
		Tiers:            s.Tiers,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
