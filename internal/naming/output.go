// Package naming derives output artifact paths from source files.
package naming

import (
	"path/filepath"
	"strings"
)

// OutputPath builds the output file path for a source: the source directory
// plus the source base name, the configured suffix, and the container
// extension. Input directory depth never changes the shape of the name.
func OutputPath(source, suffix, container string) string {
	dir := filepath.Dir(source)
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	container = strings.TrimPrefix(strings.TrimSpace(container), ".")
	return filepath.Join(dir, stem+suffix+"."+container)
}

// HasSuffix reports whether a path's base name already carries the output
// suffix, meaning it is itself a produced artifact.
func HasSuffix(path, suffix string) bool {
	if strings.TrimSpace(suffix) == "" {
		return false
	}
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.HasSuffix(stem, suffix)
}
