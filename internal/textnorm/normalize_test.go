package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "lower-cases", input: "III. ADDITIONAL Information", want: "iii. additional information"},
		{name: "collapses spaces and tabs", input: "a  \t b", want: "a b"},
		{name: "keeps line breaks", input: "one\ntwo\n\nthree", want: "one\ntwo\n\nthree"},
		{name: "carriage returns", input: "one\r\ntwo\rthree", want: "one\ntwo\nthree"},
		{name: "space around breaks", input: "one  \n  two", want: "one \n two"},
		{name: "non-breaking space", input: "a\u00a0\u00a0b", want: "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Line(tt.input))
		})
	}
}

func TestCompact(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: " \n\t ", want: ""},
		{name: "header", input: "III. Additional Information\n& Supporting", want: "iii.additionalinformation&supporting"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compact(tt.input))
		})
	}
}

func TestFoldCompatibility(t *testing.T) {
	n := Normalizer{FoldCompatibility: true}
	assert.Equal(t, "confirm the ﬁle", Line("Confirm the ﬁle"))
	assert.Equal(t, "confirm the file", n.Line("Confirm the ﬁle"))
	assert.Equal(t, "abc", n.Compact("ＡＢＣ"))
}

func TestDeterministic(t *testing.T) {
	input := "Contributor  Must\tSign\r\nThis Form"
	assert.Equal(t, Line(input), Line(input))
	assert.Equal(t, Compact(input), Compact(input))
}

func TestSplitLines(t *testing.T) {
	text := "ab\ncd\r\nef\rgh\n"
	spans := SplitLines(text)

	var lines []string
	for _, s := range spans {
		lines = append(lines, text[s.Start:s.End])
	}
	assert.Equal(t, []string{"ab", "cd", "ef", "gh"}, lines)
	assert.Empty(t, SplitLines(""))
	assert.Equal(t, []Span{{Start: 0, End: 0}, {Start: 1, End: 2}}, SplitLines("\nx"))
}
