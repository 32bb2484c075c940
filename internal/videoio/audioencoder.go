package videoio

import (
	"context"

	"github.com/five82/cascaler/internal/ffmpeg"
)

// AudioEncoder streams raw interleaved float32 samples to an ffmpeg
// subprocess that encodes them to AAC-LC. Framing and packet
// timestamps are ffmpeg's responsibility: stdin is one continuous
// f32le byte stream, and the aac encoder reads and frames it in its
// own 1024-sample-per-channel blocks regardless of how Submit's
// callers chunk their writes.
type AudioEncoder struct {
	pipe *ffmpeg.Pipe
}

// NewAudioEncoder starts an ffmpeg subprocess that reads raw f32le
// samples from stdin and encodes them to outputPath as AAC-LC.
func NewAudioEncoder(ctx context.Context, outputPath string, sampleRate, channels int) (*AudioEncoder, error) {
	args := ffmpeg.BuildAudioEncodeArgs(ffmpeg.AudioEncodeParams{
		SampleRate: sampleRate,
		Channels:   channels,
		Codec:      "aac",
		OutputPath: outputPath,
	})
	pipe, err := ffmpeg.StartPipe(ctx, "ffmpeg", args, true, false)
	if err != nil {
		return nil, err
	}
	return &AudioEncoder{pipe: pipe}, nil
}

// Submit writes frame's samples to the encoder.
func (e *AudioEncoder) Submit(frame *AudioFrame) error {
	_, err := e.pipe.Stdin.Write(EncodeFloat32LE(frame.Samples))
	return err
}

// Flush closes stdin and waits for the encode to finish.
func (e *AudioEncoder) Flush() error {
	if err := e.pipe.Stdin.Close(); err != nil {
		return err
	}
	return e.pipe.Wait()
}
