package pdf

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/spf13/afero"

	"github.com/a3tai/disclosure-trim/internal/document"
)

// Reader handles PDF text extraction
type Reader struct {
	fs          afero.Fs
	validator   *Validator
	maxTextSize int
	log         *slog.Logger
}

// NewReader creates a new PDF reader with the specified constraints
func NewReader(fs afero.Fs, maxFileSize int64, log *slog.Logger) *Reader {
	if log == nil {
		log = slog.Default()
	}
	return &Reader{
		fs:          fs,
		validator:   NewValidator(fs, maxFileSize),
		maxTextSize: 10 * 1024 * 1024, // 10MB text limit
		log:         log,
	}
}

// ReadDocument extracts the text of every page of a PDF file. Pages whose
// text cannot be extracted are kept as empty pages so page indices stay
// aligned with the file.
func (r *Reader) ReadDocument(ctx context.Context, path string) (*document.Document, error) {
	f, pdfReader, err := r.open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pageCount := numPages(pdfReader)
	texts := make([]string, pageCount)
	totalLength := 0

	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := r.pageText(pdfReader, pageNum)
		if err != nil {
			r.log.Debug("page text extraction failed",
				"file", path, "page", pageNum, "error", err)
			continue
		}

		if totalLength+len(content) > r.maxTextSize {
			r.log.Warn("text limit reached, remaining pages left empty",
				"file", path, "page", pageNum, "limit", r.maxTextSize)
			break
		}
		texts[pageNum-1] = content
		totalLength += len(content)
	}

	return document.New(path, documentTitle(pdfReader), texts), nil
}

// FirstPageText extracts the text of the first page only
func (r *Reader) FirstPageText(ctx context.Context, path string) (string, error) {
	f, pdfReader, err := r.open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if numPages(pdfReader) == 0 {
		return "", nil
	}

	content, err := r.pageText(pdfReader, 1)
	if err != nil {
		r.log.Debug("page text extraction failed", "file", path, "page", 1, "error", err)
		return "", nil
	}
	return content, nil
}

// PageCount returns the number of pages of a PDF file
func (r *Reader) PageCount(path string) (int, error) {
	f, pdfReader, err := r.open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return numPages(pdfReader), nil
}

func (r *Reader) open(path string) (afero.File, *pdf.Reader, error) {
	fileInfo, err := r.validator.ValidateFile(path)
	if err != nil {
		return nil, nil, err
	}

	f, err := r.fs.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open file: %w", err)
	}

	pdfReader, err := parse(f, fileInfo.Size())
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return f, pdfReader, nil
}

// parse opens the PDF structure and resolves the page tree once, converting
// parser panics on malformed files into errors.
func parse(f io.ReaderAt, size int64) (pdfReader *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pdfReader, err = nil, fmt.Errorf("malformed PDF: %v", rec)
		}
	}()

	pdfReader, err = pdf.NewReader(f, size)
	if err != nil {
		return nil, err
	}
	_ = pdfReader.NumPage()
	return pdfReader, nil
}

// numPages is NumPage without panics
func numPages(pdfReader *pdf.Reader) (n int) {
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()
	return pdfReader.NumPage()
}

// pageText extracts one page's plain text, converting parser panics on
// malformed content into errors.
func (r *Reader) pageText(pdfReader *pdf.Reader, pageNum int) (content string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			content, err = "", fmt.Errorf("panic extracting page %d: %v", pageNum, rec)
		}
	}()

	page := pdfReader.Page(pageNum)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

func documentTitle(pdfReader *pdf.Reader) (title string) {
	defer func() {
		if recover() != nil {
			title = ""
		}
	}()

	info := pdfReader.Trailer().Key("Info")
	if info.IsNull() {
		return ""
	}
	return strings.TrimSpace(info.Key("Title").Text())
}
