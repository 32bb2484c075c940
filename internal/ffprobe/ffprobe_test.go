package ffprobe

import "testing"

const sample1080p30 = `{
  "format": {"duration": "120.500000"},
  "streams": [
    {
      "codec_type": "video",
      "codec_name": "h264",
      "width": 1920,
      "height": 1080,
      "pix_fmt": "yuv420p",
      "r_frame_rate": "30000/1001",
      "nb_frames": "3612"
    },
    {
      "codec_type": "audio",
      "codec_name": "aac",
      "channels": 2,
      "sample_rate": "48000",
      "duration": "120.480000"
    }
  ]
}`

const sampleVideoOnly = `{
  "format": {"duration": "10.000000"},
  "streams": [
    {
      "codec_type": "video",
      "codec_name": "mjpeg",
      "width": 640,
      "height": 480,
      "pix_fmt": "yuvj420p",
      "r_frame_rate": "25/1"
    }
  ]
}`

const sampleNoVideo = `{
  "format": {"duration": "5.000000"},
  "streams": [
    {"codec_type": "audio", "codec_name": "mp3", "channels": 2, "sample_rate": "44100"}
  ]
}`

func TestParseFFprobeOutputValid(t *testing.T) {
	probe, err := parseFFprobeOutput([]byte(sample1080p30))
	if err != nil {
		t.Fatalf("parseFFprobeOutput() error = %v", err)
	}
	if probe.Format.Duration != "120.500000" {
		t.Errorf("Duration = %q, want %q", probe.Format.Duration, "120.500000")
	}
	if len(probe.Streams) != 2 {
		t.Fatalf("len(Streams) = %d, want 2", len(probe.Streams))
	}
}

func TestParseFFprobeOutputInvalidJSON(t *testing.T) {
	if _, err := parseFFprobeOutput([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestParseFrameRate(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"30000/1001", 30000.0 / 1001.0},
		{"25/1", 25},
		{"", 0},
		{"30", 0},
		{"1/0", 0},
	}
	for _, c := range cases {
		if got := parseFrameRate(c.in); got != c.want {
			t.Errorf("parseFrameRate(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestGetVideoPropertiesFromParsed(t *testing.T) {
	probe, err := parseFFprobeOutput([]byte(sample1080p30))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	var videoStream *ffprobeStream
	for i := range probe.Streams {
		if probe.Streams[i].CodecType == "video" {
			videoStream = &probe.Streams[i]
		}
	}
	if videoStream == nil {
		t.Fatal("expected video stream")
	}
	if videoStream.Width != 1920 || videoStream.Height != 1080 {
		t.Errorf("unexpected dimensions %dx%d", videoStream.Width, videoStream.Height)
	}
	if got := parseFrameRate(videoStream.RFrameRate); got < 29.9 || got > 30 {
		t.Errorf("unexpected frame rate %v", got)
	}
}

func TestParseFFprobeOutputWithoutAudioStream(t *testing.T) {
	probe, err := parseFFprobeOutput([]byte(sampleVideoOnly))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	for _, s := range probe.Streams {
		if s.CodecType == "audio" {
			t.Fatal("expected no audio stream in fixture")
		}
	}
}

func TestParseFFprobeOutputWithoutVideoStream(t *testing.T) {
	probe, err := parseFFprobeOutput([]byte(sampleNoVideo))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	for _, s := range probe.Streams {
		if s.CodecType == "video" {
			t.Fatal("expected no video stream in fixture")
		}
	}
}
