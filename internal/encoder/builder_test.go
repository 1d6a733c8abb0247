package encoder

import (
	"slices"
	"strings"
	"testing"

	"vidslim/internal/config"
)

func standardProfile() config.Profile {
	return config.Profile{
		Quality:          23.5,
		Preset:           "medium",
		KeyframeInterval: 600,
		RefFrames:        4,
		BFrames:          3,
	}
}

func TestBuildArgsStandardProfile(t *testing.T) {
	args := BuildArgs(Plan{
		Input:        "/videos/in.mkv",
		Output:       "/videos/in_x264.mp4",
		Profile:      standardProfile(),
		AudioBitrate: "128k",
	})

	want := []string{
		"-y",
		"-i", "/videos/in.mkv",
		"-c:v", "libx264",
		"-crf", "23.5",
		"-preset", "medium",
		"-keyint_min", "600",
		"-g", "600",
		"-refs", "4",
		"-bf", "3",
		"-me_method", "umh",
		"-sc_threshold", "60",
		"-b_strategy", "1",
		"-qcomp", "0.5",
		"-psy-rd", "0.3:0",
		"-aq-mode", "2",
		"-aq-strength", "0.8",
		"-c:a", "aac",
		"-b:a", "128k",
		"-movflags", "faststart",
		"-map", "0",
		"/videos/in_x264.mp4",
	}
	if !slices.Equal(args, want) {
		t.Fatalf("args mismatch\n got: %v\nwant: %v", args, want)
	}
}

func TestBuildArgsHardwareAccelBeforeInput(t *testing.T) {
	profile := standardProfile()
	profile.HardwareAccel = true
	args := BuildArgs(Plan{Input: "in.mp4", Output: "out.mp4", Profile: profile, AudioBitrate: "128k"})

	hwIdx := slices.Index(args, "-hwaccel")
	inIdx := slices.Index(args, "-i")
	if hwIdx < 0 {
		t.Fatal("expected -hwaccel flag")
	}
	if hwIdx >= inIdx {
		t.Fatalf("-hwaccel must precede -i: %v", args)
	}
	if args[hwIdx+1] != "auto" {
		t.Fatalf("expected -hwaccel auto, got %s", args[hwIdx+1])
	}
}

func TestBuildArgsStripAudio(t *testing.T) {
	args := BuildArgs(Plan{Input: "in.mp4", Output: "out.mp4", Profile: standardProfile(), AudioBitrate: "128k", StripAudio: true})
	if !slices.Contains(args, "-an") {
		t.Fatalf("expected -an flag: %v", args)
	}
	if slices.Contains(args, "aac") {
		t.Fatalf("audio codec flags must be absent when stripping audio: %v", args)
	}
}

func TestBuildArgsIntegerQuality(t *testing.T) {
	profile := standardProfile()
	profile.Quality = 21
	args := BuildArgs(Plan{Input: "in.mp4", Output: "out.mp4", Profile: profile, AudioBitrate: "128k"})
	crfIdx := slices.Index(args, "-crf")
	if args[crfIdx+1] != "21" {
		t.Fatalf("expected integer CRF rendering, got %s", args[crfIdx+1])
	}
}

func TestRotationFixArgs(t *testing.T) {
	cases := []struct {
		rotation int
		filter   string
	}{
		{90, "transpose=1"},
		{180, "transpose=1,transpose=1"},
		{270, "transpose=2"},
	}
	for _, tc := range cases {
		args, err := RotationFixArgs("in.mp4", "out.mp4", tc.rotation)
		if err != nil {
			t.Fatalf("rotation %d: %v", tc.rotation, err)
		}
		vfIdx := slices.Index(args, "-vf")
		if vfIdx < 0 || args[vfIdx+1] != tc.filter {
			t.Fatalf("rotation %d: expected filter %q in %v", tc.rotation, tc.filter, args)
		}
		if !slices.Contains(args, "rotate=0") {
			t.Fatalf("rotation %d: rotation metadata must be cleared: %v", tc.rotation, args)
		}
		joined := strings.Join(args, " ")
		if !strings.Contains(joined, "-c:a copy") {
			t.Fatalf("rotation %d: audio must be stream-copied: %v", tc.rotation, args)
		}
	}
}

func TestRotationFixArgsRejectsUnknownRotation(t *testing.T) {
	if _, err := RotationFixArgs("in.mp4", "out.mp4", 45); err == nil {
		t.Fatal("expected error for unsupported rotation")
	}
}
