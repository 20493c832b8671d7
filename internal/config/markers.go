package config

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/a3tai/disclosure-trim/internal/marker"
)

// Markers returns the built-in markers with the configured header and keyword
// limits applied, overridden by the markers of MarkerFile when one is set.
func (c *Config) Markers(fs afero.Fs) (*marker.Set, error) {
	section := marker.SectionMarker()
	section.MaxLineLength = c.HeaderMaxLine

	signature := marker.SignatureMarker()
	signature.MinKeywords = c.KeywordMin
	for _, m := range []*marker.Marker{section, signature} {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}

	set := marker.NewSet(section, signature, marker.DisclosureFormMarker())
	if c.MarkerFile != "" {
		loaded, err := marker.LoadFile(fs, c.MarkerFile)
		if err != nil {
			return nil, err
		}
		set = set.Merge(loaded)
	}

	if c.Marker != "" {
		if _, err := set.Get(c.Marker); err != nil {
			return nil, fmt.Errorf("invalid marker: %w", err)
		}
	}
	return set, nil
}
