package cascade

import (
	"strings"
	"unicode/utf8"

	"github.com/a3tai/disclosure-trim/internal/document"
	"github.com/a3tai/disclosure-trim/internal/textnorm"
)

// View is the normalized, read-only form of a document that matchers scan.
// It is built once per document and shared by every tier.
type View struct {
	pages      []pageView
	normalizer textnorm.Normalizer
}

type pageView struct {
	index   int
	text    string
	norm    string // whole page, line-normalized
	compact string // whole page, whitespace-free
	lines   []lineView
}

type lineView struct {
	start   int    // byte offset of the line in the page text
	norm    string // line-normalized and trimmed
	compact string
	length  int // rune length of the original line
}

// NewView normalizes pages for matching
func NewView(pages []document.Page, n textnorm.Normalizer) *View {
	v := &View{pages: make([]pageView, len(pages)), normalizer: n}
	for i, p := range pages {
		pv := pageView{
			index:   p.Index,
			text:    p.Text,
			norm:    n.Line(p.Text),
			compact: n.Compact(p.Text),
		}
		for _, span := range textnorm.SplitLines(p.Text) {
			raw := p.Text[span.Start:span.End]
			pv.lines = append(pv.lines, lineView{
				start:   span.Start,
				norm:    strings.TrimSpace(n.Line(raw)),
				compact: n.Compact(raw),
				length:  utf8.RuneCountInString(raw),
			})
		}
		v.pages[i] = pv
	}
	return v
}

// Len returns the number of pages in the view
func (v *View) Len() int {
	return len(v.pages)
}

// phrases returns the marker's phrase variants line-normalized, dropping empties
func (v *View) phrases(m []string) []string {
	out := make([]string, 0, len(m))
	for _, p := range m {
		if np := strings.TrimSpace(v.normalizer.Line(p)); np != "" {
			out = append(out, np)
		}
	}
	return out
}

// terms returns keywords lower-cased the same way page text is
func (v *View) terms(words []string) []string {
	return v.phrases(words)
}
