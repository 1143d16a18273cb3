// Package utils holds small path-translation helpers shared by the loader
// and the driver, grounded in the teacher's internal/utils/path_utils.go.
package utils

import (
	"path/filepath"
	"strings"

	"github.com/erhanbaris/timu-sub002/internal/config"
)

// TrimSourceExt removes a recognized source extension from name, if
// present.
func TrimSourceExt(name string) string {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// HasSourceExt reports whether path ends in a recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// ExtractModuleName derives a bare module name from a file path: the base
// filename with its source extension trimmed.
func ExtractModuleName(path string) string {
	return TrimSourceExt(filepath.Base(path))
}

// FileToDottedPath turns a file path relative to root (e.g.
// "app/models/user.timu") into its dotted module path ("app.models.user").
func FileToDottedPath(root, file string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		rel = file
	}
	rel = TrimSourceExt(rel)
	rel = filepath.ToSlash(rel)
	return strings.ReplaceAll(rel, "/", ".")
}

