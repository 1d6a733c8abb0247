package encoder

import (
	"fmt"
	"strconv"

	"vidslim/internal/config"
)

// Plan describes a single ffmpeg compression run.
type Plan struct {
	Input        string
	Output       string
	Profile      config.Profile
	AudioBitrate string
	StripAudio   bool
}

// BuildArgs assembles the x264 argument list for a compression plan. The
// ordering matters to ffmpeg: global flags and hardware acceleration come
// before the input, codec settings after it.
func BuildArgs(plan Plan) []string {
	args := []string{"-y"}
	if plan.Profile.HardwareAccel {
		args = append(args, "-hwaccel", "auto")
	}
	args = append(args, "-i", plan.Input)

	keyint := strconv.Itoa(plan.Profile.KeyframeInterval)
	args = append(args,
		"-c:v", "libx264",
		"-crf", formatQuality(plan.Profile.Quality),
		"-preset", plan.Profile.Preset,
		"-keyint_min", keyint,
		"-g", keyint,
		"-refs", strconv.Itoa(plan.Profile.RefFrames),
		"-bf", strconv.Itoa(plan.Profile.BFrames),
		"-me_method", "umh",
		"-sc_threshold", "60",
		"-b_strategy", "1",
		"-qcomp", "0.5",
		"-psy-rd", "0.3:0",
		"-aq-mode", "2",
		"-aq-strength", "0.8",
	)

	if plan.StripAudio || plan.Profile.StripAudio {
		args = append(args, "-an")
	} else {
		args = append(args, "-c:a", "aac", "-b:a", plan.AudioBitrate)
	}

	args = append(args,
		"-movflags", "faststart",
		"-map", "0",
		plan.Output,
	)
	return args
}

// RotationFixArgs assembles the rotation pre-pass argument list. The video is
// re-encoded through transpose filters so the pixels land upright, then the
// rotation metadata is cleared. Audio streams are copied untouched.
func RotationFixArgs(input, output string, rotation int) ([]string, error) {
	filter, err := transposeFilter(rotation)
	if err != nil {
		return nil, err
	}
	return []string{
		"-y",
		"-i", input,
		"-vf", filter,
		"-metadata:s:v:0", "rotate=0",
		"-c:a", "copy",
		output,
	}, nil
}

// transposeFilter maps a clockwise rotation to the ffmpeg filter chain that
// undoes it. transpose=1 rotates clockwise, transpose=2 counter-clockwise.
func transposeFilter(rotation int) (string, error) {
	switch rotation {
	case 90:
		return "transpose=1", nil
	case 180:
		return "transpose=1,transpose=1", nil
	case 270:
		return "transpose=2", nil
	default:
		return "", fmt.Errorf("no transpose filter for rotation %d", rotation)
	}
}

// formatQuality renders a CRF value, dropping a trailing ".0" so integer
// qualities round-trip cleanly through the command line.
func formatQuality(q float64) string {
	if q == float64(int64(q)) {
		return strconv.FormatInt(int64(q), 10)
	}
	return strconv.FormatFloat(q, 'f', -1, 64)
}
