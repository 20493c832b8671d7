package service

import (
	"github.com/a3tai/disclosure-trim/internal/cascade"
	"github.com/a3tai/disclosure-trim/internal/policy"
)

// SkipReason explains why an extraction produced no text file
type SkipReason string

const (
	// SkipNoMarker is set when a marker is required but none was found
	SkipNoMarker SkipReason = "marker_not_found"
	// SkipEmptyText is set when the kept text is empty
	SkipEmptyText SkipReason = "empty_text"
)

// ClassifyResult represents the result of classifying one PDF
type ClassifyResult struct {
	Path         string `json:"path"`
	IsDisclosure bool   `json:"is_disclosure"`
	Method       string `json:"method,omitempty"`
}

// SelectResult represents the result of the select task for one PDF
type SelectResult struct {
	ClassifyResult
	Output string `json:"output,omitempty"`
}

// LocateResult represents the result of a marker search in one PDF
type LocateResult struct {
	Path       string               `json:"path"`
	Marker     string               `json:"marker"`
	TotalPages int                  `json:"total_pages"`
	Found      bool                 `json:"found"`
	Match      *cascade.MatchResult `json:"match,omitempty"`
}

// DecideResult represents a truncation decision for one PDF
type DecideResult struct {
	Path       string               `json:"path,omitempty"`
	Marker     string               `json:"marker"`
	Title      string               `json:"title,omitempty"`
	TotalPages int                  `json:"total_pages"`
	Tier       string               `json:"tier,omitempty"`
	Match      *cascade.MatchResult `json:"match,omitempty"`
	Decision   policy.Decision      `json:"decision"`
}

// ExtractResult represents the result of text extraction for one PDF
type ExtractResult struct {
	DecideResult
	Text    string     `json:"text,omitempty"`
	Output  string     `json:"output,omitempty"`
	Skipped SkipReason `json:"skipped,omitempty"`
}

// DesensitizeResult represents the result of desensitizing one PDF
type DesensitizeResult struct {
	DecideResult
	Output      string `json:"output"`
	Placeholder bool   `json:"placeholder"`
}
