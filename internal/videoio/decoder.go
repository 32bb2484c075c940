// Package videoio implements the Video Decoder, Audio Decoder, Video
// Encoder, Audio Encoder, and Media Muxer as ffmpeg subprocess
// pipelines streaming raw frames and samples over pipes.
package videoio

import (
	"context"
	"io"

	"github.com/five82/cascaler/internal/ffmpeg"
	"github.com/five82/cascaler/internal/ffprobe"
	"github.com/five82/cascaler/internal/pixfmt"
)

// CodecBinary resolves a configured codec name ("h264"/"h265") to the
// ffmpeg encoder it should invoke.
func CodecBinary(codec string) string {
	switch codec {
	case "h265", "hevc":
		return "libx265"
	default:
		return "libx264"
	}
}

// VideoDecoder demuxes and decodes a video file's first video stream
// to RGB24 frames, in decode order, honoring an optional [start,end]
// trim window and an optional output frame rate.
type VideoDecoder struct {
	pipe        *ffmpeg.Pipe
	Width       int
	Height      int
	FrameRate   float64
	TotalFrames uint64
	frameSize   int
	index       int64
	outputFPS   float64
}

// NewVideoDecoder probes inputPath and starts an ffmpeg subprocess
// decoding its video stream to raw RGB24 frames. fps of 0 keeps the
// source's native frame rate.
func NewVideoDecoder(ctx context.Context, inputPath string, startSecs, endSecs, fps float64) (*VideoDecoder, error) {
	props, err := ffprobe.GetVideoProperties(inputPath)
	if err != nil {
		return nil, err
	}

	outputFPS := fps
	if outputFPS <= 0 {
		outputFPS = props.FrameRate
	}

	args := ffmpeg.BuildDecodeArgs(ffmpeg.DecodeParams{
		InputPath: inputPath,
		StartSecs: startSecs,
		EndSecs:   endSecs,
		FPS:       fps,
	})
	pipe, err := ffmpeg.StartPipe(ctx, "ffmpeg", args, false, true)
	if err != nil {
		return nil, err
	}

	totalFrames := props.TotalFrames
	if endSecs > 0 && outputFPS > 0 {
		totalFrames = uint64((endSecs - startSecs) * outputFPS)
	}

	return &VideoDecoder{
		pipe:        pipe,
		Width:       props.Width,
		Height:      props.Height,
		FrameRate:   outputFPS,
		TotalFrames: totalFrames,
		frameSize:   props.Width * props.Height * 3,
		outputFPS:   outputFPS,
	}, nil
}

// NextFrame reads the next raw frame from the decode pipe. It returns
// ok=false once the stream is exhausted.
func (d *VideoDecoder) NextFrame() (frame *pixfmt.RGB24, ok bool, err error) {
	buf := make([]byte, d.frameSize)
	_, err = io.ReadFull(d.pipe.Stdout, buf)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, false, nil
		}
		return nil, false, err
	}

	var pts int64
	if d.outputFPS > 0 {
		pts = int64(float64(d.index) / d.outputFPS * 1000)
	}
	f := &pixfmt.RGB24{
		Width:  d.Width,
		Height: d.Height,
		Stride: d.Width * 3,
		Pix:    buf,
		PTS:    pts,
	}
	d.index++
	return f, true, nil
}

// Close waits for the decode subprocess to exit.
func (d *VideoDecoder) Close() error {
	return d.pipe.Wait()
}
