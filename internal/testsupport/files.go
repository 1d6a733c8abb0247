package testsupport

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile creates a fixture of the requested size. Paths with a video
// container extension get an ISO base media ftyp header (or the EBML magic
// for mkv) so the payload is recognizably video-shaped; everything else is
// padding. A size smaller than the header still produces a non-empty file.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}

	payload := fixtureHeader(path)
	if pad := size - int64(len(payload)); pad > 0 {
		payload = append(payload, bytes.Repeat([]byte{0x42}, int(pad))...)
	}
	if len(payload) == 0 {
		payload = []byte{0x42}
	}

	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func fixtureHeader(path string) []byte {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".mov":
		header := make([]byte, 4, 16)
		binary.BigEndian.PutUint32(header, 16)
		header = append(header, []byte("ftyp")...)
		return append(header, []byte("isom\x00\x00\x02\x00")...)
	case ".mkv":
		// EBML magic.
		return []byte{0x1A, 0x45, 0xDF, 0xA3}
	default:
		return nil
	}
}
