package deps

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// knownAccelerators are the ffmpeg hwaccel names treated as usable GPU
// acceleration methods.
var knownAccelerators = map[string]struct{}{
	"cuda":         {},
	"qsv":          {},
	"vaapi":        {},
	"videotoolbox": {},
	"d3d11va":      {},
	"dxva2":        {},
	"opencl":       {},
	"vulkan":       {},
}

// DetectHWAccels runs `ffmpeg -hwaccels` and returns the recognized
// acceleration methods. An empty result means software-only encoding.
func DetectHWAccels(ctx context.Context, ffmpegBinary string) ([]string, error) {
	binary := strings.TrimSpace(ffmpegBinary)
	if binary == "" {
		binary = "ffmpeg"
	}
	out, err := exec.CommandContext(ctx, binary, "-hide_banner", "-hwaccels").Output() //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("list hardware accelerators: %w", err)
	}
	return parseHWAccels(out), nil
}

func parseHWAccels(output []byte) []string {
	var accels []string
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		name := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if _, ok := knownAccelerators[name]; ok {
			accels = append(accels, name)
		}
	}
	return accels
}
