package discover

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestCollectFiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.mp4"))
	writeFile(t, filepath.Join(dir, "b.MKV"))
	writeFile(t, filepath.Join(dir, "notes.txt"))
	writeFile(t, filepath.Join(dir, "c.mov"))

	files, err := Collect([]string{dir}, false, "_x264")
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d: %v", len(files), files)
	}
	for _, f := range files {
		if filepath.Ext(f) == ".txt" {
			t.Fatalf("text file leaked into results: %s", f)
		}
	}
}

func TestCollectSkipsProducedOutputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "show.mkv"))
	writeFile(t, filepath.Join(dir, "show_x264.mp4"))

	files, err := Collect([]string{dir}, false, "_x264")
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %v", files)
	}
	if filepath.Base(files[0]) != "show.mkv" {
		t.Fatalf("unexpected file %s", files[0])
	}
}

func TestCollectRecurseFlag(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "top.mp4"))
	writeFile(t, filepath.Join(dir, "nested", "deep.mp4"))

	flat, err := Collect([]string{dir}, false, "_x264")
	if err != nil {
		t.Fatalf("Collect flat: %v", err)
	}
	if len(flat) != 1 {
		t.Fatalf("expected only top-level file, got %v", flat)
	}

	all, err := Collect([]string{dir}, true, "_x264")
	if err != nil {
		t.Fatalf("Collect recursive: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 files, got %v", all)
	}
}

func TestCollectRejectsUnsupportedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	writeFile(t, path)

	if _, err := Collect([]string{path}, false, "_x264"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestCollectDeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.mp4"))
	writeFile(t, filepath.Join(dir, "a.mp4"))
	writeFile(t, filepath.Join(dir, "c.mp4"))

	files, err := Collect([]string{dir, dir}, false, "_x264")
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected deduplicated 3 files, got %v", files)
	}
	for i := 1; i < len(files); i++ {
		if files[i-1] >= files[i] {
			t.Fatalf("results not sorted: %v", files)
		}
	}
}
