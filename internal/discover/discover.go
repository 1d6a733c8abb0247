// Package discover expands user-supplied files and folders into the ordered
// list of video sources to enqueue.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"vidslim/internal/naming"
)

// Supported video file extensions (lowercase, with leading dot).
var videoExtensions = map[string]struct{}{
	".mp4": {},
	".mkv": {},
	".mov": {},
	".avi": {},
}

// IsVideoFile reports whether the path carries a supported video extension.
func IsVideoFile(path string) bool {
	_, ok := videoExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Collect resolves the given paths into absolute video file paths. Plain
// files must carry a supported extension; directories are scanned for video
// files, descending into subdirectories only when recurse is set. Files whose
// name already carries outputSuffix are skipped so produced artifacts are
// never re-queued. The result is deduplicated and sorted for deterministic
// processing order.
func Collect(paths []string, recurse bool, outputSuffix string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	add := func(path string) {
		if naming.HasSuffix(path, outputSuffix) {
			return
		}
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve path %q: %w", path, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("inspect %q: %w", abs, err)
		}

		if !info.IsDir() {
			if !IsVideoFile(abs) {
				return nil, fmt.Errorf("unsupported file extension %q", filepath.Ext(abs))
			}
			add(abs)
			continue
		}

		err = filepath.WalkDir(abs, func(entry string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				if !recurse && entry != abs {
					return filepath.SkipDir
				}
				return nil
			}
			if IsVideoFile(entry) {
				add(entry)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan directory %q: %w", abs, err)
		}
	}

	sort.Strings(files)
	return files, nil
}
