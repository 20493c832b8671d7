package document

import "strings"

// Page is a single extracted page. Text is empty when extraction failed.
type Page struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Document is an ordered, read-only sequence of pages extracted from one source file.
type Document struct {
	Source string
	Title  string
	pages  []Page
}

// New builds a Document from page texts in reading order. Page indexes are
// assigned from the slice position; the input slice is copied.
func New(source, title string, texts []string) *Document {
	pages := make([]Page, len(texts))
	for i, text := range texts {
		pages[i] = Page{Index: i, Text: text}
	}
	return &Document{Source: source, Title: title, pages: pages}
}

// FromPages builds a Document from (index, text) pairs as produced by an
// extraction provider. Pairs may arrive in any order; gaps become empty pages.
func FromPages(source, title string, pages []Page) *Document {
	total := 0
	for _, p := range pages {
		if p.Index >= total {
			total = p.Index + 1
		}
	}

	texts := make([]string, total)
	for _, p := range pages {
		if p.Index >= 0 {
			texts[p.Index] = p.Text
		}
	}
	return New(source, title, texts)
}

// Len returns the number of pages
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.pages)
}

// Page returns the page at index i
func (d *Document) Page(i int) Page {
	return d.pages[i]
}

// Pages returns a copy of the page sequence
func (d *Document) Pages() []Page {
	if d == nil {
		return nil
	}
	out := make([]Page, len(d.pages))
	copy(out, d.pages)
	return out
}

// Texts returns the page texts in order
func (d *Document) Texts() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.pages))
	for i, p := range d.pages {
		out[i] = p.Text
	}
	return out
}

// JoinedText returns the text of pages [from, to) joined with single newlines.
// Bounds are clamped to the document.
func (d *Document) JoinedText(from, to int) string {
	n := d.Len()
	if from < 0 {
		from = 0
	}
	if to > n {
		to = n
	}
	if from >= to {
		return ""
	}

	texts := make([]string, 0, to-from)
	for _, p := range d.pages[from:to] {
		texts = append(texts, p.Text)
	}
	return strings.Join(texts, "\n")
}
