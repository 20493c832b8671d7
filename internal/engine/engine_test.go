package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/disclosure-trim/internal/cascade"
	"github.com/a3tai/disclosure-trim/internal/document"
	"github.com/a3tai/disclosure-trim/internal/marker"
	"github.com/a3tai/disclosure-trim/internal/policy"
)

const neutralPage = "Background of the work\nThe device measures water flow in pipes."

func newEngine(cut TextCut) *Engine {
	return New(cascade.New(cascade.DefaultOptions()), policy.New(policy.DefaultConfig()), cut)
}

func repeat(text string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = text
	}
	return out
}

func TestScenarioSectionHeader(t *testing.T) {
	page0 := "  Invention Disclosure\nTitle: Flow meter\nDescription of the work.  \n"
	doc := document.New("a.pdf", "", []string{
		page0,
		"Inventors\nIII. Additional Information & Supporting Documents\nAttach drawings.",
		"Appendix",
	})

	e := newEngine(TextCutPage)
	out := e.Decide(doc, marker.SectionMarker())

	require.NotNil(t, out.Match)
	assert.Equal(t, 1, out.Decision.CutPageIndex)
	assert.Equal(t, policy.ReasonMarkerFound, out.Decision.Reason)
	assert.Equal(t, "Invention Disclosure\nTitle: Flow meter\nDescription of the work.", e.KeptText(doc, out))
	assert.Equal(t, marker.Section, out.Marker)
	assert.Equal(t, "a.pdf", out.Source)
}

func TestScenarioTitleHeuristic(t *testing.T) {
	doc := document.New("b.pdf", "2023 Invention Disclosure Form", repeat(neutralPage, 12))

	out := newEngine(TextCutPage).Decide(doc, marker.SignatureMarker())
	assert.Nil(t, out.Match)
	assert.Equal(t, 8, out.Decision.CutPageIndex)
	assert.Equal(t, policy.ReasonTitleHeuristicShort, out.Decision.Reason)
}

func TestScenarioDefaultFallback(t *testing.T) {
	doc := document.New("c.pdf", "", repeat(neutralPage, 3))

	out := newEngine(TextCutPage).Decide(doc, marker.SignatureMarker())
	assert.Nil(t, out.Match)
	assert.Equal(t, 2, out.Decision.CutPageIndex)
	assert.Equal(t, policy.ReasonDefaultFallback, out.Decision.Reason)
}

func TestScenarioEmptyDocument(t *testing.T) {
	doc := document.New("d.pdf", "", nil)

	e := newEngine(TextCutPage)
	out := e.Decide(doc, marker.SignatureMarker())
	assert.Equal(t, 0, out.Decision.CutPageIndex)
	assert.True(t, out.Decision.NeedsPlaceholder())
	assert.Equal(t, "", e.KeptText(doc, out))
}

func TestScenarioPositionalFallback(t *testing.T) {
	texts := repeat(neutralPage, 8)
	texts[6] = "Signature: ______________"
	doc := document.New("e.pdf", "", texts)

	out := newEngine(TextCutPage).Decide(doc, marker.SignatureMarker())
	require.NotNil(t, out.Match)
	assert.Equal(t, cascade.TierPositionalFallback, out.Match.Tier)
	assert.Equal(t, 6, out.Decision.CutPageIndex)
	assert.Equal(t, policy.ReasonMarkerFound, out.Decision.Reason)
}

func TestKeptTextLineCut(t *testing.T) {
	doc := document.New("f.pdf", "", []string{
		"Page one text",
		"Inventors: A. Person\nIII. Additional Information\nDrawings",
	})

	out := newEngine(TextCutLine).Decide(doc, marker.SectionMarker())
	require.NotNil(t, out.Match)
	assert.Equal(t, 1, out.Decision.CutPageIndex)
	assert.Equal(t, "Page one text\nInventors: A. Person", newEngine(TextCutLine).KeptText(doc, out))
	assert.Equal(t, "Page one text", newEngine(TextCutPage).KeptText(doc, out))
}

func TestKeptTextLineCutOnFirstPage(t *testing.T) {
	doc := document.New("g.pdf", "", []string{
		"Summary of the invention\nIII. Additional Information\nDrawings",
		neutralPage,
	})

	e := newEngine(TextCutLine)
	out := e.Decide(doc, marker.SectionMarker())
	assert.Equal(t, 0, out.Decision.CutPageIndex)
	assert.Equal(t, "Summary of the invention", e.KeptText(doc, out))
}

func TestDecideDeterministic(t *testing.T) {
	doc := document.New("h.pdf", "Invention", repeat(neutralPage, 11))
	e := newEngine(TextCutPage)
	assert.Equal(t, e.Decide(doc, marker.SignatureMarker()), e.Decide(doc, marker.SignatureMarker()))
}

func TestParseTextCut(t *testing.T) {
	cut, err := ParseTextCut("line")
	assert.NoError(t, err)
	assert.Equal(t, TextCutLine, cut)

	_, err = ParseTextCut("word")
	assert.Error(t, err)
}
