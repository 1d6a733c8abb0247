// Package ffprobe wraps the external ffprobe binary to inspect media files.
//
// Inspection returns stream and container metadata as a typed Result,
// including the display rotation recorded in stream side data or legacy
// rotate tags, which drives the rotation pre-pass before encoding.
package ffprobe
