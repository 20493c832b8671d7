package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/a3tai/disclosure-trim/internal/cascade"
	"github.com/a3tai/disclosure-trim/internal/classify"
	"github.com/a3tai/disclosure-trim/internal/config"
	"github.com/a3tai/disclosure-trim/internal/engine"
	"github.com/a3tai/disclosure-trim/internal/httpapi"
	"github.com/a3tai/disclosure-trim/internal/marker"
	"github.com/a3tai/disclosure-trim/internal/mcp"
	"github.com/a3tai/disclosure-trim/internal/pdf"
	"github.com/a3tai/disclosure-trim/internal/pipeline"
	"github.com/a3tai/disclosure-trim/internal/policy"
	"github.com/a3tai/disclosure-trim/internal/service"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// newLogger builds the process logger. In stdio mode stdout carries the MCP
// protocol, so logs go to stderr and only errors are kept unless debug is on.
func newLogger(cfg *config.Config, stderr io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	if cfg.IsStdioMode() && !cfg.IsDebug() {
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

// buildService wires the marker catalog, the decision engine and the PDF
// collaborators into a service.
func buildService(cfg *config.Config, fs afero.Fs, log *slog.Logger) (*service.Service, error) {
	markers, err := cfg.Markers(fs)
	if err != nil {
		return nil, err
	}

	textCut, err := engine.ParseTextCut(cfg.TextCut)
	if err != nil {
		return nil, err
	}
	eng := engine.New(cascade.New(cfg.CascadeOptions()), policy.New(cfg.PolicyConfig()), textCut)

	form, err := markers.Get(marker.DisclosureForm)
	if err != nil {
		return nil, err
	}
	classifier := classify.New(form, cfg.Normalizer())

	return service.New(cfg.ServiceConfig(), fs, eng, markers, classifier, service.WithLogger(log))
}

// runBatch processes the input directory and writes the summary if asked
func runBatch(ctx context.Context, cfg *config.Config, fs afero.Fs, svc *service.Service, log *slog.Logger) error {
	summary, runErr := pipeline.New(svc, cfg.PipelineConfig(), log).Run(ctx)
	if summary == nil {
		return runErr
	}

	if cfg.SummaryFile != "" {
		if err := pipeline.WriteSummary(ctx, pdf.NewWriter(fs), cfg.SummaryFile, summary); err != nil {
			return err
		}
		log.Info("summary written", "file", cfg.SummaryFile)
	}

	if runErr != nil {
		return runErr
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", summary.Failed, summary.Total)
	}
	return nil
}

func run(ctx context.Context, cfg *config.Config, fs afero.Fs, log *slog.Logger) error {
	svc, err := buildService(cfg, fs, log)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	switch {
	case cfg.IsStdioMode():
		server, err := mcp.NewServer(cfg, svc)
		if err != nil {
			return fmt.Errorf("failed to create MCP server: %w", err)
		}
		return server.Run(ctx)
	case cfg.IsServerMode():
		return httpapi.NewServer(svc, log, cfg.Version).ListenAndServe(ctx, cfg.Address())
	default:
		return runBatch(ctx, cfg, fs, svc, log)
	}
}

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:], os.Stderr)
	switch {
	case errors.Is(err, config.ErrVersionRequested):
		printVersion()
		return
	case errors.Is(err, pflag.ErrHelp):
		return
	case err != nil:
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(2)
	}

	if version != "dev" {
		cfg.Version = version
	}

	log := newLogger(cfg, os.Stderr)
	slog.SetDefault(log)
	log.Debug("starting", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, afero.NewOsFs(), log); err != nil {
		log.Error("run failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("disclosure-trim\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
