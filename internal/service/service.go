// Package service runs the disclosure operations for single files: reading
// PDFs, locating markers, deciding truncation and writing outputs.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/afero"

	"github.com/a3tai/disclosure-trim/internal/classify"
	"github.com/a3tai/disclosure-trim/internal/document"
	"github.com/a3tai/disclosure-trim/internal/engine"
	"github.com/a3tai/disclosure-trim/internal/marker"
	"github.com/a3tai/disclosure-trim/internal/pdf"
)

// Config holds the settings the service needs
type Config struct {
	InputDir        string
	OutputDir       string
	TextDir         string
	CleanSuffix     string
	PlaceholderText string
	RequireMarker   bool
	MaxFileSize     int64
}

// Service handles disclosure operations by orchestrating the PDF
// collaborators and the decision engine
type Service struct {
	config     Config
	fs         afero.Fs
	reader     pdf.DocumentReader
	writer     pdf.DocumentWriter
	search     *pdf.Search
	engine     *engine.Engine
	classifier *classify.Classifier
	markers    *marker.Set
	inputs     *PathValidator
	outputs    []*PathValidator
	log        *slog.Logger
}

// Option customizes a Service
type Option func(*Service)

// WithReader replaces the PDF text reader
func WithReader(r pdf.DocumentReader) Option {
	return func(s *Service) { s.reader = r }
}

// WithWriter replaces the PDF writer
func WithWriter(w pdf.DocumentWriter) Option {
	return func(s *Service) { s.writer = w }
}

// WithLogger sets the logger
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// New creates a service. Input paths are confined to InputDir and output
// paths to OutputDir and TextDir whenever those are set.
func New(cfg Config, fs afero.Fs, eng *engine.Engine, markers *marker.Set,
	classifier *classify.Classifier, opts ...Option,
) (*Service, error) {
	if cfg.CleanSuffix == "" {
		cfg.CleanSuffix = DefaultCleanSuffix
	}

	s := &Service{
		config:     cfg,
		fs:         fs,
		search:     pdf.NewSearch(fs),
		engine:     eng,
		classifier: classifier,
		markers:    markers,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.reader == nil {
		s.reader = pdf.NewReader(fs, cfg.MaxFileSize, s.log)
	}
	if s.writer == nil {
		s.writer = pdf.NewWriter(fs)
	}

	if cfg.InputDir != "" {
		v, err := NewPathValidator(fs, cfg.InputDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create path validator: %w", err)
		}
		s.inputs = v
	}
	for _, dir := range []string{cfg.OutputDir, cfg.TextDir} {
		if dir == "" {
			continue
		}
		v, err := NewPathValidator(fs, dir)
		if err != nil {
			return nil, fmt.Errorf("failed to create path validator: %w", err)
		}
		s.outputs = append(s.outputs, v)
	}

	return s, nil
}

// Config returns the service configuration
func (s *Service) Config() Config {
	return s.config
}

// Markers returns the configured marker set
func (s *Service) Markers() *marker.Set {
	return s.markers
}

// Marker resolves a marker by name, using fallback when name is empty
func (s *Service) Marker(name, fallback string) (*marker.Marker, error) {
	if strings.TrimSpace(name) == "" {
		name = fallback
	}
	return s.markers.Get(name)
}

// FindPDFs lists the PDF files under directory, which must be inside the
// input directory when one is configured.
func (s *Service) FindPDFs(ctx context.Context, directory string, recursive bool) ([]pdf.FileInfo, error) {
	if directory == "" {
		directory = s.config.InputDir
	}
	if err := s.checkInput(directory); err != nil {
		return nil, err
	}
	return s.search.FindPDFs(ctx, directory, recursive)
}

// Classify reports whether the PDF at path is a disclosure form
func (s *Service) Classify(ctx context.Context, path string) (*ClassifyResult, error) {
	if err := s.checkInput(path); err != nil {
		return nil, err
	}

	text, err := s.reader.FirstPageText(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read first page: %w", err)
	}

	r := s.classifier.Classify(text)
	return &ClassifyResult{Path: path, IsDisclosure: r.IsDisclosure, Method: r.Method}, nil
}

// ClassifyText classifies first-page text directly
func (s *Service) ClassifyText(firstPage string) classify.Result {
	return s.classifier.Classify(firstPage)
}

// Select copies the PDF at path to dst when it is a disclosure form
func (s *Service) Select(ctx context.Context, path, dst string) (*SelectResult, error) {
	res, err := s.Classify(ctx, path)
	if err != nil {
		return nil, err
	}

	out := &SelectResult{ClassifyResult: *res}
	if !res.IsDisclosure {
		return out, nil
	}

	if dst == "" {
		if dst, err = MirrorPath(s.config.InputDir, s.config.OutputDir, path); err != nil {
			return nil, err
		}
	}
	if err := s.checkOutput(dst); err != nil {
		return nil, err
	}
	if err := s.writer.Copy(ctx, path, dst); err != nil {
		return nil, fmt.Errorf("failed to copy file: %w", err)
	}
	out.Output = dst
	return out, nil
}

// Locate runs the marker cascade over the PDF at path
func (s *Service) Locate(ctx context.Context, path, markerName string) (*LocateResult, error) {
	m, doc, err := s.load(ctx, path, markerName, marker.Signature)
	if err != nil {
		return nil, err
	}

	out := s.engine.Decide(doc, m)
	return &LocateResult{
		Path:       path,
		Marker:     m.Name,
		TotalPages: doc.Len(),
		Found:      out.Match != nil,
		Match:      out.Match,
	}, nil
}

// Decide resolves the truncation decision for the PDF at path
func (s *Service) Decide(ctx context.Context, path, markerName string) (*DecideResult, error) {
	res, _, err := s.decide(ctx, path, markerName, marker.Signature)
	return res, err
}

// DecidePages resolves the truncation decision for page texts supplied by the
// caller and returns it with the kept text.
func (s *Service) DecidePages(pages []string, title, markerName string) (*DecideResult, string, error) {
	m, err := s.Marker(markerName, marker.Signature)
	if err != nil {
		return nil, "", err
	}

	doc := document.New("", title, pages)
	out := s.engine.Decide(doc, m)
	return newDecideResult("", doc, out), s.engine.KeptText(doc, out), nil
}

// ExtractText computes the kept text of the PDF at path and writes it to
// dst. An empty dst derives the path under the text directory; when no text
// directory is configured the text is only returned.
func (s *Service) ExtractText(ctx context.Context, path, markerName, dst string) (*ExtractResult, error) {
	res, doc, err := s.decide(ctx, path, markerName, marker.Section)
	if err != nil {
		return nil, err
	}

	out := &ExtractResult{DecideResult: *res}
	if s.config.RequireMarker && res.Match == nil {
		out.Skipped = SkipNoMarker
		return out, nil
	}

	out.Text = s.engine.KeptText(doc, res.outcome())
	if out.Text == "" {
		out.Skipped = SkipEmptyText
		return out, nil
	}

	if dst == "" && s.config.TextDir != "" {
		if dst, err = TextPath(s.config.InputDir, s.config.TextDir, path, s.config.CleanSuffix); err != nil {
			return nil, err
		}
	}
	if dst == "" {
		return out, nil
	}
	if err := s.checkOutput(dst); err != nil {
		return nil, err
	}
	if err := s.writer.WriteText(ctx, dst, out.Text); err != nil {
		return nil, fmt.Errorf("failed to write text: %w", err)
	}
	out.Output = dst
	return out, nil
}

// Desensitize writes the pages of the PDF at path that precede the marker to
// dst, or a placeholder page when no page is kept.
func (s *Service) Desensitize(ctx context.Context, path, markerName, dst string) (*DesensitizeResult, error) {
	res, _, err := s.decide(ctx, path, markerName, marker.Signature)
	if err != nil {
		return nil, err
	}

	if dst == "" {
		if dst, err = MirrorPath(s.config.InputDir, s.config.OutputDir, path); err != nil {
			return nil, err
		}
	}
	if err := s.checkOutput(dst); err != nil {
		return nil, err
	}

	out := &DesensitizeResult{DecideResult: *res, Output: dst}
	if res.Decision.NeedsPlaceholder() {
		out.Placeholder = true
		if err := s.writer.WritePlaceholder(ctx, dst, s.config.PlaceholderText); err != nil {
			return nil, fmt.Errorf("failed to write placeholder: %w", err)
		}
		return out, nil
	}

	if err := s.writer.Trim(ctx, path, dst, res.Decision.PagesKept); err != nil {
		return nil, fmt.Errorf("failed to write trimmed PDF: %w", err)
	}
	return out, nil
}

func (s *Service) decide(ctx context.Context, path, markerName, fallback string) (*DecideResult, *document.Document, error) {
	m, doc, err := s.load(ctx, path, markerName, fallback)
	if err != nil {
		return nil, nil, err
	}

	out := s.engine.Decide(doc, m)
	res := newDecideResult(path, doc, out)
	s.log.Debug("decision",
		"file", path,
		"marker", m.Name,
		"tier", res.Tier,
		"reason", res.Decision.Reason,
		"pages_kept", res.Decision.PagesKept)
	return res, doc, nil
}

func (s *Service) load(ctx context.Context, path, markerName, fallback string) (*marker.Marker, *document.Document, error) {
	if err := s.checkInput(path); err != nil {
		return nil, nil, err
	}
	m, err := s.Marker(markerName, fallback)
	if err != nil {
		return nil, nil, err
	}

	doc, err := s.reader.ReadDocument(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	return m, doc, nil
}

func (s *Service) checkInput(path string) error {
	if s.inputs == nil {
		return nil
	}
	if err := s.inputs.ValidatePath(path); err != nil {
		return fmt.Errorf("security validation failed: %w", err)
	}
	return nil
}

func (s *Service) checkOutput(path string) error {
	if len(s.outputs) == 0 {
		return nil
	}
	var lastErr error
	for _, v := range s.outputs {
		if lastErr = v.ValidatePath(path); lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("security validation failed: %w", lastErr)
}

func newDecideResult(path string, doc *document.Document, out engine.Outcome) *DecideResult {
	res := &DecideResult{
		Path:       path,
		Marker:     out.Marker,
		Title:      doc.Title,
		TotalPages: doc.Len(),
		Match:      out.Match,
		Decision:   out.Decision,
	}
	if out.Match != nil {
		res.Tier = out.Match.Tier.String()
	}
	return res
}

// outcome rebuilds the engine view of a decision
func (r *DecideResult) outcome() engine.Outcome {
	return engine.Outcome{Source: r.Path, Marker: r.Marker, Match: r.Match, Decision: r.Decision}
}
