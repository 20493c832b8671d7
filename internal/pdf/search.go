package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Search handles PDF discovery under an input directory
type Search struct {
	fs afero.Fs
}

// NewSearch creates a new PDF search handler
func NewSearch(fs afero.Fs) *Search {
	return &Search{fs: fs}
}

// FindPDFs lists the PDF files under directory, sorted by path. The
// extension match is case-insensitive and hidden subdirectories are
// skipped. Subdirectories are only descended when recursive is set.
func (s *Search) FindPDFs(ctx context.Context, directory string, recursive bool) ([]FileInfo, error) {
	if directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	info, err := s.fs.Stat(directory)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", directory)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", directory)
	}

	root := filepath.Clean(directory)
	var pdfFiles []FileInfo

	err = afero.Walk(s.fs, root, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// Continue walking even if we encounter an error with a specific file
			return nil //nolint:nilerr // Intentionally continue on file errors
		}

		if info.IsDir() {
			if path == root {
				return nil
			}
			if !recursive || strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !isPDFFile(info.Name()) {
			return nil
		}

		pdfFiles = append(pdfFiles, FileInfo{
			Path:         path,
			Name:         info.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	sort.Slice(pdfFiles, func(i, j int) bool {
		return pdfFiles[i].Path < pdfFiles[j].Path
	})
	return pdfFiles, nil
}

// CountPDFs counts the PDF files under directory
func (s *Search) CountPDFs(ctx context.Context, directory string, recursive bool) (int, error) {
	files, err := s.FindPDFs(ctx, directory, recursive)
	if err != nil {
		return 0, err
	}
	return len(files), nil
}
