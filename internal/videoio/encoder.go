package videoio

import (
	"context"
	"math"
	"strconv"

	"github.com/five82/cascaler/internal/ffmpeg"
	"github.com/five82/cascaler/internal/pixfmt"
)

// VideoEncoder accepts RGB24 frames in strict index order and
// encodes them to an elementary video stream file.
type VideoEncoder struct {
	pipe *ffmpeg.Pipe
}

// NewVideoEncoder starts an ffmpeg subprocess that reads raw RGB24
// frames from stdin and encodes them to outputPath using codec,
// CRF, preset, and pixelFormat (e.g. yuv420p). keyframeIntervalSeconds
// sets a fixed GOP length with scene-cut detection disabled, since the
// Frame Ordering Buffer already delivers frames in a fixed, gapless
// sequence ffmpeg's own scene-cut heuristic has no use for.
func NewVideoEncoder(ctx context.Context, outputPath string, width, height int, fps float64, codec string, crf int, preset, pixelFormat string, keyframeIntervalSeconds uint32) (*VideoEncoder, error) {
	codecBinary := CodecBinary(codec)
	var codecParams string
	if keyframeIntervalSeconds > 0 && fps > 0 {
		// x264/x265 read keyint as a frame count.
		keyintFrames := int(math.Round(float64(keyframeIntervalSeconds) * fps))
		codecParams = ffmpeg.NewCodecParamsBuilder().
			AddParam("keyint", strconv.Itoa(keyintFrames)).
			WithSceneCutDisabled().
			Build()
	}
	args := ffmpeg.BuildEncodeArgs(ffmpeg.EncodeParams{
		Width:       width,
		Height:      height,
		FPS:         fps,
		Codec:       codecBinary,
		CRF:         crf,
		Preset:      preset,
		PixelFormat: pixelFormat,
		CodecParams: codecParams,
		OutputPath:  outputPath,
	})
	pipe, err := ffmpeg.StartPipe(ctx, "ffmpeg", args, true, false)
	if err != nil {
		return nil, err
	}
	return &VideoEncoder{pipe: pipe}, nil
}

// Submit writes one frame's raw pixels to the encoder. Frames must
// arrive in strictly increasing index order; the Frame Ordering
// Buffer upstream guarantees this.
func (e *VideoEncoder) Submit(frame *pixfmt.RGB24) error {
	_, err := e.pipe.Stdin.Write(frame.Pix)
	return err
}

// Flush closes stdin (signaling end-of-stream to ffmpeg) and waits
// for the encode to finish.
func (e *VideoEncoder) Flush() error {
	if err := e.pipe.Stdin.Close(); err != nil {
		return err
	}
	return e.pipe.Wait()
}
