package ffprobe

import "testing"

const sampleJSON = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "h264",
      "codec_type": "video",
      "width": 1080,
      "height": 1920,
      "side_data_list": [
        {"side_data_type": "Display Matrix", "rotation": -90}
      ]
    },
    {
      "index": 1,
      "codec_name": "aac",
      "codec_type": "audio",
      "channels": 2,
      "sample_rate": "48000"
    }
  ],
  "format": {
    "filename": "clip.mp4",
    "nb_streams": 2,
    "duration": "93.430000",
    "size": "10485760",
    "bit_rate": "897654"
  }
}`

func TestParseExtractsStreamsAndFormat(t *testing.T) {
	result, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if result.VideoStreamCount() != 1 || result.AudioStreamCount() != 1 {
		t.Fatalf("stream counts video=%d audio=%d", result.VideoStreamCount(), result.AudioStreamCount())
	}
	if got := result.DurationSeconds(); got < 93.4 || got > 93.5 {
		t.Fatalf("duration = %f", got)
	}
	if result.SizeBytes() != 10485760 {
		t.Fatalf("size = %d", result.SizeBytes())
	}
}

func TestRotationFromDisplayMatrix(t *testing.T) {
	result, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// A -90 display matrix means the player rotates 90 counter-clockwise;
	// the correction applied here is a 90 degree clockwise bake-in.
	if got := result.Rotation(); got != 90 {
		t.Fatalf("rotation = %d, want 90", got)
	}
}

func TestRotationFromLegacyTag(t *testing.T) {
	payload := `{"streams":[{"index":0,"codec_type":"video","tags":{"rotate":"180"}}],"format":{}}`
	result, err := Parse([]byte(payload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := result.Rotation(); got != 180 {
		t.Fatalf("rotation = %d, want 180", got)
	}
}

func TestRotationDefaultsToZero(t *testing.T) {
	cases := map[string]string{
		"no video stream":  `{"streams":[{"index":0,"codec_type":"audio"}],"format":{}}`,
		"no rotation data": `{"streams":[{"index":0,"codec_type":"video"}],"format":{}}`,
		"non-right-angle":  `{"streams":[{"index":0,"codec_type":"video","tags":{"rotate":"45"}}],"format":{}}`,
	}
	for name, payload := range cases {
		result, err := Parse([]byte(payload))
		if err != nil {
			t.Fatalf("%s: Parse: %v", name, err)
		}
		if got := result.Rotation(); got != 0 {
			t.Fatalf("%s: rotation = %d, want 0", name, got)
		}
	}
}

func TestNormalizeRotation(t *testing.T) {
	cases := map[float64]int{
		0:    0,
		-90:  90,
		90:   270,
		-180: 180,
		180:  180,
		-270: 270,
		360:  0,
		45:   0,
	}
	for input, want := range cases {
		if got := normalizeRotation(input); got != want {
			t.Fatalf("normalizeRotation(%v) = %d, want %d", input, got, want)
		}
	}
}

func TestParseRejectsMalformedPayload(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatal("expected parse error")
	}
}
