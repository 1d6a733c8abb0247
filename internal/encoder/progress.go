package encoder

import (
	"strconv"
	"strings"
)

// ProgressUpdate captures ffmpeg progress output.
type ProgressUpdate struct {
	Stage   string
	Percent float64
	Message string
}

// parseDuration extracts the total duration in seconds from an ffmpeg banner
// line of the form "Duration: 00:01:23.45, start: ...".
func parseDuration(line string) (float64, bool) {
	idx := strings.Index(line, "Duration:")
	if idx < 0 {
		return 0, false
	}
	rest := strings.TrimSpace(line[idx+len("Duration:"):])
	if comma := strings.IndexByte(rest, ','); comma >= 0 {
		rest = rest[:comma]
	}
	return parseClock(strings.TrimSpace(rest))
}

// parseTime extracts the current position in seconds from an ffmpeg status
// line containing "time=HH:MM:SS.cc".
func parseTime(line string) (float64, bool) {
	idx := strings.Index(line, "time=")
	if idx < 0 {
		return 0, false
	}
	rest := line[idx+len("time="):]
	if space := strings.IndexByte(rest, ' '); space >= 0 {
		rest = rest[:space]
	}
	return parseClock(strings.TrimSpace(rest))
}

func parseClock(value string) (float64, bool) {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, false
	}
	hours, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, false
	}
	return hours*3600 + minutes*60 + seconds, true
}

// progressTracker folds ffmpeg stderr lines into percentage updates. The
// duration line arrives once near the start of the run; time= lines follow
// on carriage-return separated status updates.
type progressTracker struct {
	stage    string
	duration float64
}

func (p *progressTracker) Consume(line string) (ProgressUpdate, bool) {
	if p.duration <= 0 {
		if total, ok := parseDuration(line); ok && total > 0 {
			p.duration = total
		}
		return ProgressUpdate{}, false
	}
	position, ok := parseTime(line)
	if !ok {
		return ProgressUpdate{}, false
	}
	percent := position / p.duration * 100
	if percent > 100 {
		percent = 100
	}
	return ProgressUpdate{
		Stage:   p.stage,
		Percent: percent,
		Message: strings.TrimSpace(line),
	}, true
}
