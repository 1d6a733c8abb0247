package staging

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCleanStaleRemovesOldFiles(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, "7-encoded.mp4")
	fresh := filepath.Join(dir, "8-encoded.mp4")
	for _, path := range []string{stale, fresh} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	result := CleanStale(dir, 24*time.Hour, nil)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %+v", result.Errors)
	}
	if len(result.Removed) != 1 || result.Removed[0] != stale {
		t.Fatalf("expected only stale file removed, got %v", result.Removed)
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Fatalf("fresh file must survive: %v", err)
	}
}

func TestCleanStaleSkipsDirectoriesAndMissingRoot(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "keep")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(sub, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	result := CleanStale(dir, time.Hour, nil)
	if len(result.Removed) != 0 {
		t.Fatalf("directories must be left alone: %v", result.Removed)
	}

	result = CleanStale(filepath.Join(dir, "does-not-exist"), time.Hour, nil)
	if len(result.Errors) != 0 || len(result.Removed) != 0 {
		t.Fatalf("missing root must be a no-op: %+v", result)
	}
}
