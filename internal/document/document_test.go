package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	texts := []string{"first", "", "third"}
	doc := New("a.pdf", "Title", texts)

	require.Equal(t, 3, doc.Len())
	assert.Equal(t, "a.pdf", doc.Source)
	assert.Equal(t, "Title", doc.Title)
	for i := 0; i < doc.Len(); i++ {
		assert.Equal(t, i, doc.Page(i).Index)
	}

	// Mutating the input must not leak into the document
	texts[0] = "changed"
	assert.Equal(t, "first", doc.Page(0).Text)
}

func TestPagesReturnsCopy(t *testing.T) {
	doc := New("a.pdf", "", []string{"one", "two"})

	pages := doc.Pages()
	pages[0].Text = "mutated"

	assert.Equal(t, "one", doc.Page(0).Text)
}

func TestFromPages(t *testing.T) {
	doc := FromPages("b.pdf", "", []Page{
		{Index: 2, Text: "c"},
		{Index: 0, Text: "a"},
	})

	require.Equal(t, 3, doc.Len())
	assert.Equal(t, []string{"a", "", "c"}, doc.Texts())
}

func TestJoinedText(t *testing.T) {
	doc := New("c.pdf", "", []string{"a", "b", "c"})

	tests := []struct {
		name     string
		from, to int
		want     string
	}{
		{name: "all pages", from: 0, to: 3, want: "a\nb\nc"},
		{name: "prefix", from: 0, to: 2, want: "a\nb"},
		{name: "empty range", from: 1, to: 1, want: ""},
		{name: "clamped", from: -4, to: 10, want: "a\nb\nc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, doc.JoinedText(tt.from, tt.to))
		})
	}
}

func TestNilDocument(t *testing.T) {
	var doc *Document
	assert.Equal(t, 0, doc.Len())
	assert.Nil(t, doc.Pages())
	assert.Equal(t, "", doc.JoinedText(0, 1))
}
