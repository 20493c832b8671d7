package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/a3tai/disclosure-trim/internal/marker"
	"github.com/a3tai/disclosure-trim/internal/textnorm"
)

func TestClassify(t *testing.T) {
	c := New(marker.DisclosureFormMarker(), textnorm.Normalizer{})

	tests := []struct {
		name       string
		firstPage  string
		want       bool
		wantMethod string
	}{
		{name: "title line", firstPage: "Office of Research\nTECHNOLOGY DISCLOSURE FORM\nPlease complete", want: true, wantMethod: "line"},
		{name: "keywords spread over page", firstPage: "Technology transfer\nInvention disclosure\nForm A-1", want: true, wantMethod: "page"},
		{name: "missing keyword", firstPage: "Technology transfer\nInvention disclosure", want: false},
		{name: "empty page", firstPage: "", want: false},
		{name: "whitespace page", firstPage: " \n\t", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.firstPage)
			assert.Equal(t, tt.want, got.IsDisclosure)
			assert.Equal(t, tt.wantMethod, got.Method)
		})
	}
}
