// Package engine ties marker location and the truncation policy together for
// one document.
package engine

import (
	"fmt"
	"strings"

	"github.com/a3tai/disclosure-trim/internal/cascade"
	"github.com/a3tai/disclosure-trim/internal/document"
	"github.com/a3tai/disclosure-trim/internal/marker"
	"github.com/a3tai/disclosure-trim/internal/policy"
)

// TextCut selects how much of the anchor page the kept text includes
type TextCut string

const (
	// TextCutPage keeps whole pages before the anchor page
	TextCutPage TextCut = "page"
	// TextCutLine also keeps the anchor page's lines above the marker line
	TextCutLine TextCut = "line"
)

// ParseTextCut validates a text cut name
func ParseTextCut(s string) (TextCut, error) {
	switch TextCut(s) {
	case TextCutPage, TextCutLine:
		return TextCut(s), nil
	default:
		return "", fmt.Errorf("invalid text cut: %s (must be %q or %q)", s, TextCutPage, TextCutLine)
	}
}

// Outcome is everything the engine decided about one document
type Outcome struct {
	Source   string               `json:"source"`
	Marker   string               `json:"marker"`
	Match    *cascade.MatchResult `json:"match,omitempty"`
	Decision policy.Decision      `json:"decision"`
}

// Engine locates markers and decides truncation. It holds no per-document
// state and is safe for concurrent use.
type Engine struct {
	cascade *cascade.Cascade
	policy  *policy.Policy
	textCut TextCut
}

// New creates an engine
func New(c *cascade.Cascade, p *policy.Policy, textCut TextCut) *Engine {
	if textCut == "" {
		textCut = TextCutPage
	}
	return &Engine{cascade: c, policy: p, textCut: textCut}
}

// Decide locates m in doc and resolves the truncation decision
func (e *Engine) Decide(doc *document.Document, m *marker.Marker) Outcome {
	out := Outcome{Source: doc.Source}
	if m != nil {
		out.Marker = m.Name
	}
	if result, ok := e.cascade.Locate(doc, m); ok {
		out.Match = &result
	}
	out.Decision = e.policy.Decide(out.Match, doc.Len(), doc.Title)
	return out
}

// KeptText returns the text that survives the outcome's decision: the pages
// before the cut joined by single newlines, trimmed. With TextCutLine and a
// marker match that carries an offset, the anchor page's text above the
// marker line is included too.
func (e *Engine) KeptText(doc *document.Document, out Outcome) string {
	cut := out.Decision.CutPageIndex
	text := doc.JoinedText(0, cut)

	if e.textCut == TextCutLine && out.Match != nil && out.Match.HasOffset &&
		out.Decision.Reason == policy.ReasonMarkerFound && cut < doc.Len() {
		anchor := doc.Page(cut).Text
		if off := out.Match.Offset; off > 0 && off <= len(anchor) {
			if cut > 0 {
				text += "\n"
			}
			text += anchor[:off]
		}
	}
	return strings.TrimSpace(text)
}
