package naming

import (
	"path/filepath"
	"testing"
)

func TestOutputPathAppendsSuffixBeforeExtension(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"/videos/holiday.mp4", "/videos/holiday_x264.mp4"},
		{"/a/b/c/deep/clip.MOV", "/a/b/c/deep/clip_x264.mp4"},
		{"relative/movie.mkv", filepath.Join("relative", "movie_x264.mp4")},
		{"/videos/no-extension", "/videos/no-extension_x264.mp4"},
		{"/videos/dots.in.name.avi", "/videos/dots.in.name_x264.mp4"},
	}
	for _, tc := range cases {
		if got := OutputPath(tc.source, "_x264", "mp4"); got != tc.want {
			t.Fatalf("OutputPath(%q) = %q, want %q", tc.source, got, tc.want)
		}
	}
}

func TestOutputPathHonorsContainer(t *testing.T) {
	if got := OutputPath("/v/clip.mp4", "_small", "mkv"); got != "/v/clip_small.mkv" {
		t.Fatalf("got %q", got)
	}
	if got := OutputPath("/v/clip.mp4", "_small", ".mkv"); got != "/v/clip_small.mkv" {
		t.Fatalf("dotted container: got %q", got)
	}
}

func TestHasSuffix(t *testing.T) {
	if !HasSuffix("/videos/holiday_x264.mp4", "_x264") {
		t.Fatal("expected suffix match")
	}
	if HasSuffix("/videos/holiday.mp4", "_x264") {
		t.Fatal("unexpected suffix match")
	}
	if HasSuffix("/videos/holiday.mp4", "") {
		t.Fatal("empty suffix should never match")
	}
}
