package encoder

import (
	"math"
	"testing"
)

func TestParseDuration(t *testing.T) {
	line := "  Duration: 00:01:30.50, start: 0.000000, bitrate: 4521 kb/s"
	seconds, ok := parseDuration(line)
	if !ok {
		t.Fatal("expected duration to parse")
	}
	if math.Abs(seconds-90.5) > 0.001 {
		t.Fatalf("expected 90.5 seconds, got %f", seconds)
	}
}

func TestParseTime(t *testing.T) {
	line := "frame= 1234 fps= 56 q=28.0 size=    2048kB time=00:00:45.25 bitrate= 370.9kbits/s speed=1.88x"
	seconds, ok := parseTime(line)
	if !ok {
		t.Fatal("expected time to parse")
	}
	if math.Abs(seconds-45.25) > 0.001 {
		t.Fatalf("expected 45.25 seconds, got %f", seconds)
	}
}

func TestParseClockRejectsMalformed(t *testing.T) {
	for _, value := range []string{"", "12:34", "aa:bb:cc", "1:2:3:4"} {
		if _, ok := parseClock(value); ok {
			t.Fatalf("expected %q to be rejected", value)
		}
	}
}

func TestProgressTracker(t *testing.T) {
	tracker := &progressTracker{stage: "Encoding"}

	if _, ok := tracker.Consume("time=00:00:10.00"); ok {
		t.Fatal("time line before duration must not emit an update")
	}
	if _, ok := tracker.Consume("  Duration: 00:01:40.00, start: 0.000000"); ok {
		t.Fatal("duration line itself must not emit an update")
	}
	update, ok := tracker.Consume("frame= 10 time=00:00:25.00 speed=2x")
	if !ok {
		t.Fatal("expected progress update")
	}
	if math.Abs(update.Percent-25) > 0.001 {
		t.Fatalf("expected 25%%, got %f", update.Percent)
	}
	if update.Stage != "Encoding" {
		t.Fatalf("unexpected stage %q", update.Stage)
	}

	update, ok = tracker.Consume("frame= 99 time=00:02:30.00 speed=2x")
	if !ok {
		t.Fatal("expected progress update")
	}
	if update.Percent != 100 {
		t.Fatalf("percent must clamp at 100, got %f", update.Percent)
	}
}
