// Package textnorm canonicalizes extracted page text for marker comparison.
//
// Two granularities are provided. Line keeps line breaks and collapses every
// other whitespace run to a single space. Compact removes whitespace entirely
// and is used where extraction may have split or merged words arbitrarily.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalizer lower-cases and collapses whitespace. The zero value is ready to use.
type Normalizer struct {
	// FoldCompatibility applies Unicode NFKC before lower-casing so that
	// ligatures and full-width forms compare equal to their ASCII spelling.
	FoldCompatibility bool
}

var (
	defaultNormalizer = Normalizer{}
	lineBreaks        = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// Line normalizes text keeping line breaks
func Line(text string) string { return defaultNormalizer.Line(text) }

// Compact normalizes text removing all whitespace
func Compact(text string) string { return defaultNormalizer.Compact(text) }

// Line lower-cases text and collapses whitespace runs within a line to one
// space. "\r\n" and "\r" become "\n"; line breaks are never merged, so line i
// of the result corresponds to line i of the input.
func (n Normalizer) Line(text string) string {
	if text == "" {
		return ""
	}
	text = lineBreaks.Replace(n.lower(text))

	var b strings.Builder
	b.Grow(len(text))
	inSpace := false
	for _, r := range text {
		switch {
		case r == '\n':
			b.WriteByte('\n')
			inSpace = false
		case unicode.IsSpace(r):
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
		default:
			b.WriteRune(r)
			inSpace = false
		}
	}
	return b.String()
}

// Compact lower-cases text and removes every whitespace rune
func (n Normalizer) Compact(text string) string {
	if text == "" {
		return ""
	}
	text = n.lower(text)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}

func (n Normalizer) lower(text string) string {
	if n.FoldCompatibility {
		text = norm.NFKC.String(text)
	}
	return strings.ToLower(text)
}

// SplitLines splits text on "\n", "\r\n" and "\r". The returned spans index
// into text; a trailing line break does not produce an extra empty line.
func SplitLines(text string) []Span {
	var spans []Span
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			spans = append(spans, Span{Start: start, End: i})
			start = i + 1
		case '\r':
			spans = append(spans, Span{Start: start, End: i})
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(text) {
		spans = append(spans, Span{Start: start, End: len(text)})
	}
	return spans
}

// Span is a half-open byte range [Start, End)
type Span struct {
	Start int
	End   int
}
