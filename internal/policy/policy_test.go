package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/a3tai/disclosure-trim/internal/cascade"
)

func TestDecide(t *testing.T) {
	p := New(DefaultConfig())

	tests := []struct {
		name       string
		match      *cascade.MatchResult
		totalPages int
		title      string
		wantCut    int
		wantReason Reason
	}{
		{
			name:       "marker found",
			match:      &cascade.MatchResult{Tier: cascade.TierExactLine, PageIndex: 1},
			totalPages: 3,
			wantCut:    1,
			wantReason: ReasonMarkerFound,
		},
		{
			name:       "marker on first page keeps nothing",
			match:      &cascade.MatchResult{PageIndex: 0},
			totalPages: 4,
			wantCut:    0,
			wantReason: ReasonMarkerFound,
		},
		{
			name:       "long disclosure by title",
			totalPages: 12,
			title:      "2023 Invention Disclosure Form",
			wantCut:    8,
			wantReason: ReasonTitleHeuristicShort,
		},
		{
			name:       "patent title is case-insensitive",
			totalPages: 20,
			title:      "PATENT Application",
			wantCut:    13,
			wantReason: ReasonTitleHeuristicShort,
		},
		{
			name:       "short disclosure by title",
			totalPages: 10,
			title:      "Invention disclosure",
			wantCut:    8,
			wantReason: ReasonTitleHeuristicLong,
		},
		{
			name:       "titled short document keeps the larger share",
			totalPages: 5,
			title:      "Disclosure",
			wantCut:    4,
			wantReason: ReasonTitleHeuristicLong,
		},
		{
			name:       "one page past the title threshold keeps the smaller share",
			totalPages: 11,
			title:      "Disclosure",
			wantCut:    7,
			wantReason: ReasonTitleHeuristicShort,
		},
		{
			name:       "no title",
			totalPages: 3,
			wantCut:    2,
			wantReason: ReasonDefaultFallback,
		},
		{
			name:       "blank title",
			totalPages: 3,
			title:      "   ",
			wantCut:    2,
			wantReason: ReasonDefaultFallback,
		},
		{
			name:       "unrelated title",
			totalPages: 15,
			title:      "Quarterly report",
			wantCut:    12,
			wantReason: ReasonDefaultFallback,
		},
		{
			name:       "empty document",
			totalPages: 0,
			wantCut:    0,
			wantReason: ReasonDefaultFallback,
		},
		{
			name:       "single page rounds down to zero",
			totalPages: 1,
			wantCut:    0,
			wantReason: ReasonDefaultFallback,
		},
		{
			name:       "anchor beyond document is clamped",
			match:      &cascade.MatchResult{PageIndex: 9},
			totalPages: 3,
			wantCut:    3,
			wantReason: ReasonMarkerFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := p.Decide(tt.match, tt.totalPages, tt.title)
			assert.Equal(t, tt.wantCut, d.CutPageIndex)
			assert.Equal(t, tt.wantCut, d.PagesKept)
			assert.Equal(t, tt.wantReason, d.Reason)
			assert.Equal(t, tt.totalPages, d.TotalPages)
			assert.Equal(t, tt.wantCut == 0, d.NeedsPlaceholder())
		})
	}
}

func TestDecideBounds(t *testing.T) {
	p := New(DefaultConfig())
	titles := []string{"", "Invention Disclosure", "misc"}

	for total := 0; total <= 40; total++ {
		for _, title := range titles {
			d := p.Decide(nil, total, title)
			assert.GreaterOrEqual(t, d.PagesKept, 0)
			assert.LessOrEqual(t, d.PagesKept, total)
		}
		for anchor := 0; anchor < total; anchor++ {
			d := p.Decide(&cascade.MatchResult{PageIndex: anchor}, total, "")
			assert.Equal(t, anchor, d.CutPageIndex)
		}
	}
}

func TestDecideDeterministic(t *testing.T) {
	p := New(DefaultConfig())
	assert.Equal(t, p.Decide(nil, 12, "Invention"), p.Decide(nil, 12, "Invention"))
}

func TestCustomRatios(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultRatio = 0.5
	cfg.TitleRatio = 0.25

	p := New(cfg)
	assert.Equal(t, 5, p.Decide(nil, 10, "").CutPageIndex)
	assert.Equal(t, 5, p.Decide(nil, 20, "patent").CutPageIndex)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.DefaultRatio = 1.5
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.TitleMinPages = -1
	assert.Error(t, cfg.Validate())
}
