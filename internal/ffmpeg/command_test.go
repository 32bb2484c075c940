package ffmpeg

import (
	"strings"
	"testing"
)

func TestBuildEncodeArgsIncludesCodecParams(t *testing.T) {
	params := NewCodecParamsBuilder().WithKeyintSeconds(2).WithSceneCutDisabled().Build()
	args := BuildEncodeArgs(EncodeParams{
		Width:       100,
		Height:      50,
		FPS:         30,
		Codec:       "libx264",
		CodecParams: params,
		OutputPath:  "out.mp4",
	})

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-x264-params "+params) {
		t.Errorf("expected -x264-params %q in args, got %q", params, joined)
	}
}

func TestBuildEncodeArgsOmitsCodecParamsFlagWhenEmpty(t *testing.T) {
	args := BuildEncodeArgs(EncodeParams{Width: 100, Height: 50, FPS: 30, Codec: "libx264", OutputPath: "out.mp4"})
	for _, a := range args {
		if a == "-x264-params" {
			t.Errorf("did not expect -x264-params flag, got %v", args)
		}
	}
}

func TestCodecParamsFlagPicksEncoder(t *testing.T) {
	params := "keyint=48"
	args := BuildEncodeArgs(EncodeParams{Codec: "libx265", CodecParams: params, OutputPath: "out.mp4"})
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-x265-params "+params) {
		t.Errorf("expected -x265-params for libx265, got %q", joined)
	}
}

func TestBuildAudioEncodeArgsDefaultsBitrateFromChannels(t *testing.T) {
	args := BuildAudioEncodeArgs(AudioEncodeParams{SampleRate: 48000, Channels: 2, Codec: "aac", OutputPath: "out.m4a"})
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-b:a 128k") {
		t.Errorf("expected default stereo bitrate 128k, got %q", joined)
	}
}

func TestBuildAudioEncodeArgsHonorsExplicitBitrate(t *testing.T) {
	args := BuildAudioEncodeArgs(AudioEncodeParams{SampleRate: 48000, Channels: 2, Bitrate: "256k", OutputPath: "out.m4a"})
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-b:a 256k") {
		t.Errorf("expected explicit bitrate 256k, got %q", joined)
	}
}

func TestCalculateAudioBitrate(t *testing.T) {
	tests := []struct {
		channels int
		want     int
	}{
		{1, 64},
		{2, 128},
		{6, 256},
		{8, 384},
		{4, 192},
	}
	for _, tt := range tests {
		if got := CalculateAudioBitrate(tt.channels); got != tt.want {
			t.Errorf("CalculateAudioBitrate(%d) = %d, want %d", tt.channels, got, tt.want)
		}
	}
}
