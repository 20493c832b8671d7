// Package httpapi exposes the truncation engine over JSON for callers that
// already hold page text.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/a3tai/disclosure-trim/internal/marker"
	"github.com/a3tai/disclosure-trim/internal/service"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 32 << 20

const shutdownTimeout = 10 * time.Second

// Server is the HTTP API server
type Server struct {
	router  chi.Router
	svc     *service.Service
	log     *slog.Logger
	version string
}

// NewServer creates and configures the HTTP server
func NewServer(svc *service.Service, log *slog.Logger, version string) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{svc: svc, log: log, version: version}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/markers", s.handleListMarkers)
		r.Get("/markers/{name}", s.handleGetMarker)
		r.Post("/decide", s.handleDecide)
		r.Post("/classify", s.handleClassify)
	})

	s.router = r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.version})
}

type markerView struct {
	Name             string   `json:"name"`
	Phrases          []string `json:"phrases,omitempty"`
	Mode             string   `json:"mode"`
	Patterns         []string `json:"patterns,omitempty"`
	MaxLineLength    int      `json:"max_line_length,omitempty"`
	Keywords         []string `json:"keywords,omitempty"`
	MinKeywords      int      `json:"min_keywords,omitempty"`
	FallbackKeywords []string `json:"fallback_keywords,omitempty"`
	Tiers            []string `json:"tiers,omitempty"`
}

func newMarkerView(m *marker.Marker) markerView {
	v := markerView{
		Name:             m.Name,
		Phrases:          m.Phrases,
		Mode:             string(m.Mode),
		MaxLineLength:    m.MaxLineLength,
		Keywords:         m.Keywords,
		MinKeywords:      m.MinKeywords,
		FallbackKeywords: m.FallbackKeywords,
		Tiers:            m.Tiers,
	}
	for _, p := range m.Patterns {
		v.Patterns = append(v.Patterns, p.String())
	}
	return v
}

func (s *Server) handleListMarkers(w http.ResponseWriter, _ *http.Request) {
	set := s.svc.Markers()
	names := set.Names()
	views := make([]markerView, 0, len(names))
	for _, name := range names {
		m, err := set.Get(name)
		if err != nil {
			continue
		}
		views = append(views, newMarkerView(m))
	}
	writeJSON(w, http.StatusOK, map[string]any{"markers": views})
}

func (s *Server) handleGetMarker(w http.ResponseWriter, r *http.Request) {
	m, err := s.svc.Markers().Get(chi.URLParam(r, "name"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, newMarkerView(m))
}

type decideRequest struct {
	Pages  []string `json:"pages"`
	Title  string   `json:"title"`
	Marker string   `json:"marker"`
}

type decideResponse struct {
	*service.DecideResult
	KeptText string `json:"kept_text"`
}

func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	var req decideRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, kept, err := s.svc.DecidePages(req.Pages, req.Title, req.Marker)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, marker.ErrUnknownMarker) {
			status = http.StatusBadRequest
		}
		jsonError(w, err.Error(), status)
		return
	}

	writeJSON(w, http.StatusOK, decideResponse{DecideResult: res, KeptText: kept})
}

type classifyRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.svc.ClassifyText(req.Text))
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
