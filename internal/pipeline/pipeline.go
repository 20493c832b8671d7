// Package pipeline runs one task over every PDF in an input directory with a
// bounded pool of workers.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/a3tai/disclosure-trim/internal/marker"
	"github.com/a3tai/disclosure-trim/internal/pdf"
	"github.com/a3tai/disclosure-trim/internal/service"
)

// Task names a batch operation
type Task string

const (
	TaskSelect      Task = "select"
	TaskDesensitize Task = "desensitize"
	TaskExtract     Task = "extract"
)

// Tasks lists the supported tasks
func Tasks() []Task {
	return []Task{TaskSelect, TaskDesensitize, TaskExtract}
}

// ParseTask validates a task name
func ParseTask(s string) (Task, error) {
	for _, t := range Tasks() {
		if string(t) == strings.ToLower(strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid task: %s (must be one of: select, desensitize, extract)", s)
}

// DefaultMarker returns the marker a task uses when none is configured
func (t Task) DefaultMarker() string {
	switch t {
	case TaskSelect:
		return marker.DisclosureForm
	case TaskExtract:
		return marker.Section
	default:
		return marker.Signature
	}
}

// Processor performs the per-file operations. *service.Service implements it.
type Processor interface {
	Marker(name, fallback string) (*marker.Marker, error)
	FindPDFs(ctx context.Context, directory string, recursive bool) ([]pdf.FileInfo, error)
	Select(ctx context.Context, path, dst string) (*service.SelectResult, error)
	Desensitize(ctx context.Context, path, markerName, dst string) (*service.DesensitizeResult, error)
	ExtractText(ctx context.Context, path, markerName, dst string) (*service.ExtractResult, error)
}

var _ Processor = (*service.Service)(nil)

// Config holds the batch settings
type Config struct {
	Task      Task
	InputDir  string
	Recursive bool
	Workers   int
	// Marker overrides the task's default marker
	Marker string
}

// Pipeline runs batch tasks
type Pipeline struct {
	proc Processor
	cfg  Config
	log  *slog.Logger
	now  func() time.Time
}

// New creates a pipeline
func New(proc Processor, cfg Config, log *slog.Logger) *Pipeline {
	if cfg.Workers < 1 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Task == "" {
		cfg.Task = TaskDesensitize
	}
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{proc: proc, cfg: cfg, log: log, now: time.Now}
}

// Run processes every discovered PDF. Per-file failures are recorded in the
// summary and never stop the batch. When ctx is canceled, files not yet
// started are marked canceled, in-flight files finish or abort at their next
// page, and Run returns the summary together with the context error.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	runID := uuid.NewString()
	log := p.log.With("run_id", runID, "task", string(p.cfg.Task))

	markerName := p.cfg.Marker
	if markerName == "" && p.cfg.Task != TaskSelect {
		markerName = p.cfg.Task.DefaultMarker()
	}
	if markerName != "" {
		if _, err := p.proc.Marker(markerName, ""); err != nil {
			return nil, err
		}
	}

	files, err := p.proc.FindPDFs(ctx, p.cfg.InputDir, p.cfg.Recursive)
	if err != nil {
		return nil, fmt.Errorf("failed to list input files: %w", err)
	}
	log.Info("batch started", "input_dir", p.cfg.InputDir, "files", len(files), "workers", p.cfg.Workers)

	summary := newSummary(runID, p.cfg.Task, p.now())
	results := make([]Result, len(files))

	wp := pool.New().WithMaxGoroutines(p.cfg.Workers).WithContext(ctx)
	for i, f := range files {
		if ctx.Err() != nil {
			results[i] = Result{Path: f.Path, Status: StatusCanceled}
			continue
		}
		wp.Go(func(ctx context.Context) error {
			results[i] = p.processFile(ctx, log, f.Path, markerName)
			return nil
		})
	}
	_ = wp.Wait()

	summary.finish(results, p.now())
	log.Info("batch finished",
		"files", summary.Total,
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"canceled", summary.Canceled,
		"duration", summary.FinishedAt.Sub(summary.StartedAt))

	return summary, ctx.Err()
}

func (p *Pipeline) processFile(ctx context.Context, log *slog.Logger, path, markerName string) Result {
	if ctx.Err() != nil {
		return Result{Path: path, Status: StatusCanceled}
	}

	start := p.now()
	res, err := p.safeDispatch(ctx, path, markerName)
	res.Path = path
	res.Duration = p.now().Sub(start)

	switch {
	case err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)):
		res.Status = StatusCanceled
		log.Warn("file canceled", "file", path)
	case err != nil:
		res.Status = StatusFailed
		res.Error = err.Error()
		log.Error("file failed", "file", path, "error", err)
	default:
		log.Info("file processed",
			"file", path,
			"status", res.Status,
			"tier", res.Tier,
			"reason", res.Reason,
			"pages_kept", res.PagesKept,
			"output", res.Output)
	}
	return res
}

// safeDispatch turns a panic in one file's processing into that file's error
// so the pool never re-panics on Wait.
func (p *Pipeline) safeDispatch(ctx context.Context, path, markerName string) (res Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			res, err = Result{}, fmt.Errorf("panic processing file: %v", rec)
		}
	}()
	return p.dispatch(ctx, path, markerName)
}

func (p *Pipeline) dispatch(ctx context.Context, path, markerName string) (Result, error) {
	switch p.cfg.Task {
	case TaskSelect:
		r, err := p.proc.Select(ctx, path, "")
		if err != nil {
			return Result{}, err
		}
		return selectResult(r), nil
	case TaskExtract:
		r, err := p.proc.ExtractText(ctx, path, markerName, "")
		if err != nil {
			return Result{}, err
		}
		return extractResult(r), nil
	case TaskDesensitize:
		r, err := p.proc.Desensitize(ctx, path, markerName, "")
		if err != nil {
			return Result{}, err
		}
		return desensitizeResult(r), nil
	default:
		return Result{}, fmt.Errorf("invalid task: %s", p.cfg.Task)
	}
}
