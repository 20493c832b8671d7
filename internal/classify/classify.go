// Package classify decides whether a document is a technology disclosure form
// from the text of its first page.
package classify

import (
	"strings"

	"github.com/a3tai/disclosure-trim/internal/cascade"
	"github.com/a3tai/disclosure-trim/internal/document"
	"github.com/a3tai/disclosure-trim/internal/marker"
	"github.com/a3tai/disclosure-trim/internal/textnorm"
)

// Result is the outcome of classifying one document
type Result struct {
	IsDisclosure bool   `json:"is_disclosure"`
	Method       string `json:"method,omitempty"` // "line" or "page"
}

// Classifier recognizes disclosure forms by keyword co-occurrence
type Classifier struct {
	marker     *marker.Marker
	normalizer textnorm.Normalizer
	exact      cascade.ExactLine
}

// New creates a classifier for a match-all marker such as marker.DisclosureFormMarker
func New(m *marker.Marker, n textnorm.Normalizer) *Classifier {
	return &Classifier{marker: m, normalizer: n}
}

// Classify looks for all of the marker's keywords on one line of the first
// page, then anywhere on the first page. Empty first pages never qualify.
func (c *Classifier) Classify(firstPage string) Result {
	if strings.TrimSpace(firstPage) == "" {
		return Result{}
	}

	view := cascade.NewView([]document.Page{{Index: 0, Text: firstPage}}, c.normalizer)
	if _, ok := c.exact.Match(view, c.marker); ok {
		return Result{IsDisclosure: true, Method: "line"}
	}

	text := c.normalizer.Line(firstPage)
	for _, k := range c.marker.Phrases {
		k = strings.TrimSpace(c.normalizer.Line(k))
		if k != "" && !strings.Contains(text, k) {
			return Result{}
		}
	}
	return Result{IsDisclosure: true, Method: "page"}
}
