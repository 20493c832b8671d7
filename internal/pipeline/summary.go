package pipeline

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/a3tai/disclosure-trim/internal/policy"
	"github.com/a3tai/disclosure-trim/internal/service"
)

// Status is the outcome of one file in a batch
type Status string

const (
	StatusProcessed   Status = "processed"
	StatusSelected    Status = "selected"
	StatusNotSelected Status = "not_selected"
	StatusSkipped     Status = "skipped"
	StatusFailed      Status = "failed"
	StatusCanceled    Status = "canceled"
)

// Result records what happened to one file
type Result struct {
	Path        string        `json:"path"`
	Status      Status        `json:"status"`
	Output      string        `json:"output,omitempty"`
	Tier        string        `json:"tier,omitempty"`
	Reason      policy.Reason `json:"reason,omitempty"`
	TotalPages  int           `json:"total_pages"`
	PagesKept   int           `json:"pages_kept"`
	Placeholder bool          `json:"placeholder,omitempty"`
	SkipReason  string        `json:"skip_reason,omitempty"`
	Error       string        `json:"error,omitempty"`
	Duration    time.Duration `json:"duration_ns"`
}

func decisionResult(d service.DecideResult) Result {
	return Result{
		Tier:       d.Tier,
		Reason:     d.Decision.Reason,
		TotalPages: d.TotalPages,
		PagesKept:  d.Decision.PagesKept,
	}
}

func selectResult(r *service.SelectResult) Result {
	res := Result{Status: StatusNotSelected}
	if r.IsDisclosure {
		res.Status = StatusSelected
		res.Output = r.Output
	}
	return res
}

func extractResult(r *service.ExtractResult) Result {
	res := decisionResult(r.DecideResult)
	res.Status = StatusProcessed
	res.Output = r.Output
	if r.Skipped != "" {
		res.Status = StatusSkipped
		res.SkipReason = string(r.Skipped)
	}
	return res
}

func desensitizeResult(r *service.DesensitizeResult) Result {
	res := decisionResult(r.DecideResult)
	res.Status = StatusProcessed
	res.Output = r.Output
	res.Placeholder = r.Placeholder
	return res
}

// Summary aggregates a batch run
type Summary struct {
	RunID      string                `json:"run_id"`
	Task       Task                  `json:"task"`
	StartedAt  time.Time             `json:"started_at"`
	FinishedAt time.Time             `json:"finished_at"`
	Total      int                   `json:"total"`
	Processed  int                   `json:"processed"`
	Selected   int                   `json:"selected"`
	Skipped    int                   `json:"skipped"`
	Failed     int                   `json:"failed"`
	Canceled   int                   `json:"canceled"`
	Reasons    map[policy.Reason]int `json:"reasons,omitempty"`
	Results    []Result              `json:"results"`
}

func newSummary(runID string, task Task, started time.Time) *Summary {
	return &Summary{
		RunID:     runID,
		Task:      task,
		StartedAt: started,
		Reasons:   make(map[policy.Reason]int),
	}
}

func (s *Summary) finish(results []Result, finished time.Time) {
	s.FinishedAt = finished
	s.Results = results
	s.Total = len(results)
	for _, r := range results {
		switch r.Status {
		case StatusProcessed:
			s.Processed++
		case StatusSelected:
			s.Processed++
			s.Selected++
		case StatusNotSelected:
			s.Processed++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		case StatusCanceled:
			s.Canceled++
		}
		if r.Reason != "" {
			s.Reasons[r.Reason]++
		}
	}
}

// TextWriter stores a rendered summary
type TextWriter interface {
	WriteText(ctx context.Context, dst, text string) error
}

// WriteSummary renders s as CSV when path ends in .csv and as indented JSON
// otherwise, then writes it through w.
func WriteSummary(ctx context.Context, w TextWriter, path string, s *Summary) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		data, err = s.CSV()
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	return w.WriteText(ctx, path, string(data))
}

var csvHeader = []string{
	"path", "status", "output", "tier", "reason", "total_pages", "pages_kept", "placeholder", "skip_reason", "error",
}

// CSV renders one row per file
func (s *Summary) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range s.Results {
		row := []string{
			r.Path,
			string(r.Status),
			r.Output,
			r.Tier,
			string(r.Reason),
			strconv.Itoa(r.TotalPages),
			strconv.Itoa(r.PagesKept),
			strconv.FormatBool(r.Placeholder),
			r.SkipReason,
			r.Error,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
