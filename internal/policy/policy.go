// Package policy turns a marker match, or its absence, into a deterministic
// decision about how many leading pages of a document to keep.
package policy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/a3tai/disclosure-trim/internal/cascade"
)

// Reason explains how a decision's cut point was chosen
type Reason string

// The title reasons name the retention share, not the document length:
// TITLE_HEURISTIC_SHORT keeps the smaller share of a titled document longer
// than TitleMinPages, and TITLE_HEURISTIC_LONG keeps the larger share of a
// titled, short document.
const (
	ReasonMarkerFound         Reason = "MARKER_FOUND"
	ReasonTitleHeuristicShort Reason = "TITLE_HEURISTIC_SHORT"
	ReasonTitleHeuristicLong  Reason = "TITLE_HEURISTIC_LONG"
	ReasonDefaultFallback     Reason = "DEFAULT_FALLBACK"
)

// Default retention settings
const (
	DefaultTitleMinPages  = 10
	DefaultTitleRatio     = 0.67
	DefaultTitleLongRatio = 0.8
	DefaultRatio          = 0.8
)

// DefaultTitleKeywords mark a document as a disclosure by its title metadata
var DefaultTitleKeywords = []string{"disclosure", "invention", "patent"}

// Decision is the number of leading pages to keep. Pages [0, CutPageIndex) survive.
type Decision struct {
	CutPageIndex int    `json:"cut_page_index"`
	TotalPages   int    `json:"total_pages"`
	Reason       Reason `json:"reason"`
	PagesKept    int    `json:"pages_kept"`
}

// NeedsPlaceholder reports whether the kept range is empty, in which case the
// writer must emit a single placeholder page instead of an empty document.
func (d Decision) NeedsPlaceholder() bool {
	return d.PagesKept == 0
}

// Config holds the fallback ratios used when no marker is found
type Config struct {
	// TitleMinPages is the page count a titled disclosure must exceed for TitleRatio to apply
	TitleMinPages int
	TitleRatio    float64
	// TitleLongRatio is the share kept from a titled, short document of at
	// most TitleMinPages pages
	TitleLongRatio float64
	DefaultRatio   float64
	TitleKeywords  []string
}

// DefaultConfig returns the standard retention settings
func DefaultConfig() Config {
	return Config{
		TitleMinPages:  DefaultTitleMinPages,
		TitleRatio:     DefaultTitleRatio,
		TitleLongRatio: DefaultTitleLongRatio,
		DefaultRatio:   DefaultRatio,
		TitleKeywords:  DefaultTitleKeywords,
	}
}

// Validate checks that every ratio lies in [0,1]
func (c Config) Validate() error {
	for name, r := range map[string]float64{
		"title ratio":      c.TitleRatio,
		"title long ratio": c.TitleLongRatio,
		"default ratio":    c.DefaultRatio,
	} {
		if r < 0 || r > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %v", name, r)
		}
	}
	if c.TitleMinPages < 0 {
		return errors.New("title min pages cannot be negative")
	}
	return nil
}

// Policy makes truncation decisions
type Policy struct {
	config Config
}

// New creates a policy
func New(config Config) *Policy {
	return &Policy{config: config}
}

// Decide returns the cut point for a document of totalPages pages. A match
// cuts at its anchor page; otherwise the title and page count choose a
// retention ratio. It never fails: every input resolves to a decision.
func (p *Policy) Decide(match *cascade.MatchResult, totalPages int, title string) Decision {
	if totalPages < 0 {
		totalPages = 0
	}

	if match != nil {
		return p.decision(match.PageIndex, totalPages, ReasonMarkerFound)
	}

	if p.titleSignalsDisclosure(title) {
		if totalPages > p.config.TitleMinPages {
			return p.decision(ratioPages(totalPages, p.config.TitleRatio), totalPages, ReasonTitleHeuristicShort)
		}
		return p.decision(ratioPages(totalPages, p.config.TitleLongRatio), totalPages, ReasonTitleHeuristicLong)
	}

	return p.decision(ratioPages(totalPages, p.config.DefaultRatio), totalPages, ReasonDefaultFallback)
}

func (p *Policy) decision(cut, total int, reason Reason) Decision {
	if cut < 0 {
		cut = 0
	}
	if cut > total {
		cut = total
	}
	return Decision{CutPageIndex: cut, TotalPages: total, Reason: reason, PagesKept: cut}
}

func (p *Policy) titleSignalsDisclosure(title string) bool {
	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return false
	}
	for _, k := range p.config.TitleKeywords {
		if k != "" && strings.Contains(title, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// ratioPages is floor(total * ratio)
func ratioPages(total int, ratio float64) int {
	return int(float64(total) * ratio)
}
