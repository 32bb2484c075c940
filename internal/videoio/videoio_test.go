package videoio

import "testing"

func TestCodecBinary(t *testing.T) {
	cases := map[string]string{
		"h264": "libx264",
		"":     "libx264",
		"h265": "libx265",
		"hevc": "libx265",
	}
	for in, want := range cases {
		if got := CodecBinary(in); got != want {
			t.Errorf("CodecBinary(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAudioFrameSampleCount(t *testing.T) {
	f := &AudioFrame{Channels: 2, Samples: make([]float32, 8)}
	if got := f.SampleCount(); got != 4 {
		t.Errorf("SampleCount() = %d, want 4", got)
	}
}

func TestAudioFrameSampleCountZeroChannels(t *testing.T) {
	f := &AudioFrame{Channels: 0, Samples: make([]float32, 8)}
	if got := f.SampleCount(); got != 0 {
		t.Errorf("SampleCount() = %d, want 0", got)
	}
}

func TestFloat32RoundTrip(t *testing.T) {
	samples := []float32{0, 1, -1, 0.5, -0.5, 3.14159, -123.456}
	buf := EncodeFloat32LE(samples)
	if len(buf) != len(samples)*4 {
		t.Fatalf("expected %d bytes, got %d", len(samples)*4, len(buf))
	}
	decoded := DecodeFloat32LE(buf)
	if len(decoded) != len(samples) {
		t.Fatalf("expected %d samples, got %d", len(samples), len(decoded))
	}
	for i, s := range samples {
		if decoded[i] != s {
			t.Errorf("sample %d: got %v, want %v", i, decoded[i], s)
		}
	}
}
