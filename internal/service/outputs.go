package service

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultCleanSuffix is appended to the first directory of extracted text paths
const DefaultCleanSuffix = "-clean"

// relativeTo returns src relative to root, or its base name when src is not
// below root.
func relativeTo(root, src string) string {
	if root != "" {
		if rel, err := filepath.Rel(root, src); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	return filepath.Base(src)
}

// MirrorPath maps src under inputDir to the same relative location under
// outputDir.
func MirrorPath(inputDir, outputDir, src string) (string, error) {
	if outputDir == "" {
		return "", fmt.Errorf("output directory cannot be empty")
	}
	return filepath.Join(outputDir, relativeTo(inputDir, src)), nil
}

// TextPath maps src under inputDir to its text file under textDir. The first
// directory of the relative path gets suffix appended and the extension is
// replaced by .txt, so in/a/b/form.pdf becomes text/a-clean/b/form.txt.
func TextPath(inputDir, textDir, src, suffix string) (string, error) {
	if textDir == "" {
		return "", fmt.Errorf("text directory cannot be empty")
	}

	parts := strings.Split(filepath.ToSlash(relativeTo(inputDir, src)), "/")
	name := parts[len(parts)-1]
	dirs := parts[:len(parts)-1]
	if len(dirs) > 0 {
		dirs[0] += suffix
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	elems := append([]string{textDir}, dirs...)
	elems = append(elems, stem+".txt")
	return filepath.Join(elems...), nil
}
