package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/a3tai/disclosure-trim/internal/config"
	"github.com/a3tai/disclosure-trim/internal/descriptions"
	"github.com/a3tai/disclosure-trim/internal/pdf"
	"github.com/a3tai/disclosure-trim/internal/service"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	svc       *service.Service
	mcpServer *server.MCPServer
	tools     []mcp.Tool
	log       *slog.Logger
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, svc *service.Service) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:    cfg,
		svc:       svc,
		mcpServer: mcpServer,
		log:       slog.Default(),
	}

	s.registerTools()

	return s, nil
}

func pathArg() mcp.ToolOption {
	return mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Full path to the PDF file inside the input directory"),
	)
}

func markerArg(fallback string) mcp.ToolOption {
	return mcp.WithString("marker",
		mcp.Description(fmt.Sprintf("Marker name (defaults to %s)", fallback)),
	)
}

func outputArg() mcp.ToolOption {
	return mcp.WithString("output",
		mcp.Description("Destination path (derived from the configured output directory if empty)"),
	)
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	s.addTool(mcp.NewTool(
		descriptions.ClassifyFileTool,
		mcp.WithDescription(descriptions.ClassifyFileDescription),
		pathArg(),
	), s.handleClassifyFile)

	s.addTool(mcp.NewTool(
		descriptions.LocateMarkerTool,
		mcp.WithDescription(descriptions.LocateMarkerDescription),
		pathArg(),
		markerArg("signature"),
	), s.handleLocateMarker)

	s.addTool(mcp.NewTool(
		descriptions.DecideFileTool,
		mcp.WithDescription(descriptions.DecideFileDescription),
		pathArg(),
		markerArg("signature"),
	), s.handleDecideFile)

	s.addTool(mcp.NewTool(
		descriptions.ExtractTextTool,
		mcp.WithDescription(descriptions.ExtractTextDescription),
		pathArg(),
		markerArg("section"),
		outputArg(),
	), s.handleExtractText)

	s.addTool(mcp.NewTool(
		descriptions.DesensitizeFileTool,
		mcp.WithDescription(descriptions.DesensitizeFileDescription),
		pathArg(),
		markerArg("signature"),
		outputArg(),
	), s.handleDesensitizeFile)

	s.addTool(mcp.NewTool(
		descriptions.ServerInfoTool,
		mcp.WithDescription(descriptions.ServerInfoDescription),
	), s.handleServerInfo)
}

func (s *Server) addTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	s.tools = append(s.tools, tool)
	s.mcpServer.AddTool(tool, handler)
}

// Handler functions
func (s *Server) handleClassifyFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.svc.Classify(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("File: %s\n", result.Path)
	responseText += fmt.Sprintf("Disclosure form: %t\n", result.IsDisclosure)
	if result.Method != "" {
		responseText += fmt.Sprintf("Matched by: %s\n", result.Method)
	}
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleLocateMarker(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.svc.Locate(ctx, path, request.GetString("marker", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("File: %s\n", result.Path)
	responseText += fmt.Sprintf("Marker: %s\n", result.Marker)
	responseText += fmt.Sprintf("Pages: %d\n", result.TotalPages)
	if !result.Found {
		responseText += "Marker not found\n"
		return mcp.NewToolResultText(responseText), nil
	}
	responseText += fmt.Sprintf("Found on page %d by %s\n", result.Match.PageIndex+1, result.Match.Tier)
	if result.Match.Phrase != "" {
		responseText += fmt.Sprintf("Phrase: %s\n", result.Match.Phrase)
	}
	if result.Match.Score > 0 {
		responseText += fmt.Sprintf("Score: %.3f\n", result.Match.Score)
	}
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleDecideFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.svc.Decide(ctx, path, request.GetString("marker", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatDecideResult(result)), nil
}

func (s *Server) handleExtractText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.svc.ExtractText(ctx, path, request.GetString("marker", ""), request.GetString("output", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatDecideResult(&result.DecideResult)
	if result.Skipped != "" {
		responseText += fmt.Sprintf("Skipped: %s\n", result.Skipped)
		return mcp.NewToolResultText(responseText), nil
	}
	if result.Output != "" {
		responseText += fmt.Sprintf("Written to: %s\n", result.Output)
	}
	responseText += "\nText:\n" + result.Text + "\n"
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleDesensitizeFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.svc.Desensitize(ctx, path, request.GetString("marker", ""), request.GetString("output", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatDecideResult(&result.DecideResult)
	responseText += fmt.Sprintf("Written to: %s\n", result.Output)
	if result.Placeholder {
		responseText += "Output is a placeholder page\n"
	}
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleServerInfo(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	files, err := s.svc.FindPDFs(ctx, "", s.config.Recursive)
	if err != nil {
		s.log.Warn("failed to list input directory", "error", err)
	}

	text := fmt.Sprintf("%s v%s - Server Information\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("Input Directory: %s\n", s.config.InputDir)
	if s.config.OutputDir != "" {
		text += fmt.Sprintf("Output Directory: %s\n", s.config.OutputDir)
	}
	if s.config.TextDir != "" {
		text += fmt.Sprintf("Text Directory: %s\n", s.config.TextDir)
	}
	text += fmt.Sprintf("Markers: %s\n\n", strings.Join(s.svc.Markers().Names(), ", "))

	if len(files) > 0 {
		stats := pdf.Summarize(s.config.InputDir, files)
		text += fmt.Sprintf("Total size: %d bytes (average %d bytes)\n", stats.TotalSize, stats.AverageFileSize)
		text += fmt.Sprintf("Largest file: %s (%d bytes)\n", stats.LargestFileName, stats.LargestFileSize)
		text += fmt.Sprintf("Directory Contents (%d PDF files found):\n", len(files))
		for i, file := range files {
			if i >= 10 {
				text += fmt.Sprintf("   ... and %d more files\n", len(files)-10)
				break
			}
			text += fmt.Sprintf("   %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
		}
		text += "\n"
	} else {
		text += "Directory Contents: No PDF files found in input directory\n\n"
	}

	text += "Available Tools:\n"
	for _, tool := range s.tools {
		text += fmt.Sprintf("• %s\n  %s\n", tool.Name, descriptions.Summary(tool.Name))
	}

	return mcp.NewToolResultText(text), nil
}

func (s *Server) formatDecideResult(result *service.DecideResult) string {
	text := fmt.Sprintf("File: %s\n", result.Path)
	text += fmt.Sprintf("Marker: %s\n", result.Marker)
	if result.Title != "" {
		text += fmt.Sprintf("Title: %s\n", result.Title)
	}
	text += fmt.Sprintf("Pages: %d\n", result.TotalPages)
	if result.Tier != "" {
		text += fmt.Sprintf("Tier: %s\n", result.Tier)
	}
	text += fmt.Sprintf("Reason: %s\n", result.Decision.Reason)
	text += fmt.Sprintf("Pages kept: %d\n", result.Decision.PagesKept)
	return text
}

// Run serves MCP over standard I/O until the client disconnects
func (s *Server) Run(_ context.Context) error {
	s.log.Debug("starting MCP server in stdio mode", "input_dir", s.config.InputDir)

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
