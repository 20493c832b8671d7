package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
)

var (
	// ErrNotPDF is returned for files without a .pdf extension or PDF header
	ErrNotPDF = errors.New("file is not a PDF")
	// ErrFileTooLarge is returned for files above the configured size limit
	ErrFileTooLarge = errors.New("file too large")
	// ErrEmptyFile is returned for zero-length files
	ErrEmptyFile = errors.New("file is empty")
)

var pdfHeader = []byte("%PDF-")

// Validator handles PDF file validation operations
type Validator struct {
	fs          afero.Fs
	maxFileSize int64
}

// NewValidator creates a new PDF validator with the specified constraints.
// A maxFileSize of zero or less disables the size check.
func NewValidator(fs afero.Fs, maxFileSize int64) *Validator {
	return &Validator{
		fs:          fs,
		maxFileSize: maxFileSize,
	}
}

// ValidateFile checks that path names a regular, non-empty PDF within the
// size limit whose content starts with the PDF header.
func (v *Validator) ValidateFile(path string) (os.FileInfo, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := v.fs.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if err := v.ValidateFileInfo(path, fileInfo); err != nil {
		return nil, err
	}

	f, err := v.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()

	head := make([]byte, 1024)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}
	if !bytes.Contains(head[:n], pdfHeader) {
		return nil, fmt.Errorf("%w: missing PDF header: %s", ErrNotPDF, path)
	}

	return fileInfo, nil
}

// ValidateFileInfo performs basic validation on file info without opening the PDF
func (v *Validator) ValidateFileInfo(path string, fileInfo os.FileInfo) error {
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	if !isPDFFile(path) {
		return fmt.Errorf("%w: %s", ErrNotPDF, path)
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	if v.maxFileSize > 0 && fileInfo.Size() > v.maxFileSize {
		return fmt.Errorf("%w: %d bytes (max: %d bytes)",
			ErrFileTooLarge, fileInfo.Size(), v.maxFileSize)
	}

	return nil
}

// IsValidPDF performs a quick check to see if a file is a valid PDF
func (v *Validator) IsValidPDF(path string) bool {
	_, err := v.ValidateFile(path)
	return err == nil
}

func isPDFFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}
