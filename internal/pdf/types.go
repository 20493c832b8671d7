package pdf

import (
	"context"

	"github.com/a3tai/disclosure-trim/internal/document"
)

// FileInfo represents information about a discovered PDF file
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// DocumentReader turns a PDF file into per-page text
type DocumentReader interface {
	ReadDocument(ctx context.Context, path string) (*document.Document, error)
	FirstPageText(ctx context.Context, path string) (string, error)
}

// DocumentWriter produces output PDF files
type DocumentWriter interface {
	Copy(ctx context.Context, src, dst string) error
	Trim(ctx context.Context, src, dst string, keepPages int) error
	WritePlaceholder(ctx context.Context, dst, label string) error
	WriteText(ctx context.Context, dst, text string) error
}

var (
	_ DocumentReader = (*Reader)(nil)
	_ DocumentWriter = (*Writer)(nil)
)
