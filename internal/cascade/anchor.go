package cascade

import (
	"strings"
	"unicode/utf8"
)

// ResolvePosition maps a rune offset in normalized back to an approximate
// rune offset in original by linear scaling, clamped to [0, len(original)-1].
//
// Normalization deletes different amounts of whitespace in different regions,
// so the result drifts; use it only to find the nearest preceding line
// boundary, never as an exact character position.
func ResolvePosition(original, normalized string, normalizedOffset int) int {
	origLen := utf8.RuneCountInString(original)
	normLen := utf8.RuneCountInString(normalized)
	if normLen == 0 || origLen == 0 {
		return 0
	}

	ratio := float64(origLen) / float64(normLen)
	pos := int(float64(normalizedOffset) * ratio)
	if pos < 0 {
		return 0
	}
	if pos > origLen-1 {
		return origLen - 1
	}
	return pos
}

// LineStart returns the byte offset of the start of the line containing the
// rune at runeOffset: one past the nearest preceding line break, or 0.
func LineStart(text string, runeOffset int) int {
	byteOffset := len(text)
	n := 0
	for i := range text {
		if n == runeOffset {
			byteOffset = i
			break
		}
		n++
	}

	prefix := text[:byteOffset]
	if i := strings.LastIndexAny(prefix, "\n\r"); i >= 0 {
		return i + 1
	}
	return 0
}
