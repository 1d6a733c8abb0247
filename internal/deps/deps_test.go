package deps

import (
	"os"
	"path/filepath"
	"testing"

	"vidslim/internal/config"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}

	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
}

func TestCheckBinariesEmptyCommand(t *testing.T) {
	results := CheckBinaries([]Requirement{{Name: "Blank", Command: "  "}})
	if results[0].Available {
		t.Fatal("blank command must be unavailable")
	}
	if results[0].Detail != "command not configured" {
		t.Fatalf("unexpected detail %q", results[0].Detail)
	}
}

func TestRequirementsUseConfiguredBinaries(t *testing.T) {
	cfg := config.Default()
	cfg.Encoder.FFmpegBinary = "/opt/ffmpeg/bin/ffmpeg"
	cfg.Encoder.FFprobeBinary = "/opt/ffmpeg/bin/ffprobe"

	reqs := Requirements(&cfg)
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}
	if reqs[0].Command != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("unexpected ffmpeg command %q", reqs[0].Command)
	}
	if reqs[1].Command != "/opt/ffmpeg/bin/ffprobe" {
		t.Fatalf("unexpected ffprobe command %q", reqs[1].Command)
	}
}

func TestParseHWAccels(t *testing.T) {
	output := []byte("Hardware acceleration methods:\ncuda\nvaapi\nunknownthing\n\n")
	accels := parseHWAccels(output)
	if len(accels) != 2 {
		t.Fatalf("expected 2 accelerators, got %v", accels)
	}
	if accels[0] != "cuda" || accels[1] != "vaapi" {
		t.Fatalf("unexpected accelerators %v", accels)
	}
}

func TestParseHWAccelsEmpty(t *testing.T) {
	if accels := parseHWAccels([]byte("Hardware acceleration methods:\n")); len(accels) != 0 {
		t.Fatalf("expected none, got %v", accels)
	}
}
