package service

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrPathOutside is returned for paths that escape the configured directory
var ErrPathOutside = errors.New("path is outside configured directory")

// PathValidator confines file paths to a configured directory
type PathValidator struct {
	configuredDirectory string
	resolveLinks        bool
}

// NewPathValidator creates a new path validator for the given directory.
// Symlinks are only resolved when fs is the OS filesystem.
func NewPathValidator(fs afero.Fs, configuredDirectory string) (*PathValidator, error) {
	if configuredDirectory == "" {
		return nil, fmt.Errorf("configured directory cannot be empty")
	}

	absDir, err := filepath.Abs(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configured directory: %w", err)
	}

	_, isOS := fs.(*afero.OsFs)
	return &PathValidator{
		configuredDirectory: filepath.Clean(absDir),
		resolveLinks:        isOS,
	}, nil
}

// ValidatePath checks if a path is within the configured directory
func (v *PathValidator) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	isWithin, err := v.IsPathWithinDirectory(path)
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}
	if !isWithin {
		return fmt.Errorf("%w: %s", ErrPathOutside, path)
	}
	return nil
}

// IsPathWithinDirectory checks if a path is within the configured directory
func (v *PathValidator) IsPathWithinDirectory(path string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}
	cleanPath := filepath.Clean(absPath)

	if !within(cleanPath, v.configuredDirectory) {
		return false, nil
	}
	if !v.resolveLinks {
		return true, nil
	}

	// Both the path and the directory may be symlinks; compare real locations
	// when they exist.
	realDir := v.configuredDirectory
	if resolved, err := filepath.EvalSymlinks(realDir); err == nil {
		realDir = resolved
	}
	realPath := cleanPath
	if resolved, err := filepath.EvalSymlinks(cleanPath); err == nil {
		realPath = resolved
	}
	return within(realPath, realDir) || within(realPath, v.configuredDirectory), nil
}

// GetConfiguredDirectory returns the configured directory path
func (v *PathValidator) GetConfiguredDirectory() string {
	return v.configuredDirectory
}

func within(path, dir string) bool {
	if path == dir {
		return true
	}
	dirWithSep := dir
	if !strings.HasSuffix(dirWithSep, string(filepath.Separator)) {
		dirWithSep += string(filepath.Separator)
	}
	return strings.HasPrefix(path, dirWithSep)
}
