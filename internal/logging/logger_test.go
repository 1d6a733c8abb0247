package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestPrettyHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelInfo)

	logger := slog.New(newPrettyHandler(&buf, levelVar, false))
	logger = NewComponentLogger(logger, "runner")
	logger.Info("item queued", String("source", "/tmp/a.mp4"), Int64(FieldItemID, 3))

	line := buf.String()
	if !strings.Contains(line, "INFO runner: item queued") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "source=/tmp/a.mp4") || !strings.Contains(line, "item_id=3") {
		t.Fatalf("attrs missing from line: %q", line)
	}
}

func TestPrettyHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelInfo)

	logger := slog.New(newPrettyHandler(&buf, levelVar, false))
	logger.Warn("encode failed", String("message", "exit status 1"))

	if !strings.Contains(buf.String(), `message="exit status 1"`) {
		t.Fatalf("value not quoted: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"unknown": slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestWithContextAddsItemAndRunFields(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelInfo)
	logger := slog.New(newPrettyHandler(&buf, levelVar, false))

	ctx := WithRunID(WithItemID(context.Background(), 7), "run-1")
	WithContext(ctx, logger).Info("processing")

	line := buf.String()
	if !strings.Contains(line, "item_id=7") || !strings.Contains(line, "run_id=run-1") {
		t.Fatalf("context fields missing: %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestCleanupOldLogsPrunesByAgeAndPattern(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "vidslim-old.log")
	recent := filepath.Join(dir, "vidslim-new.log")
	other := filepath.Join(dir, "keep.txt")
	for _, path := range []string{old, recent, other} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	stale := time.Now().AddDate(0, 0, -10)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if err := os.Chtimes(other, stale, stale); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	CleanupOldLogs(NewNop(), 5, RetentionTarget{Dir: dir, Pattern: "vidslim-*.log"})

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatal("old log should have been pruned")
	}
	if _, err := os.Stat(recent); err != nil {
		t.Fatal("recent log should remain")
	}
	if _, err := os.Stat(other); err != nil {
		t.Fatal("non-matching file should remain")
	}
}

func TestProgressSampler(t *testing.T) {
	sampler := NewProgressSampler(5)
	if !sampler.ShouldLog(0, "encode") {
		t.Fatal("first event should log")
	}
	if sampler.ShouldLog(1, "encode") {
		t.Fatal("same bucket should not log")
	}
	if !sampler.ShouldLog(6, "encode") {
		t.Fatal("next bucket should log")
	}
	if !sampler.ShouldLog(6, "finalize") {
		t.Fatal("stage change should log")
	}
}
