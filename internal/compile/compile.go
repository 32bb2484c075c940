// Package compile implements the Video Compilation streaming sink:
// it orchestrates the Video Encoder, the optional Audio Decoder,
// Audio Filter, and Audio Encoder, and the Media Muxer as a single
// submit-in-order sink for carved frames.
package compile

import (
	"context"
	"os"

	"github.com/five82/cascaler/internal/audiofilter"
	cerrors "github.com/five82/cascaler/internal/errors"
	"github.com/five82/cascaler/internal/pixfmt"
	"github.com/five82/cascaler/internal/util"
	"github.com/five82/cascaler/internal/videoio"
)

// Options configures a Sink run.
type Options struct {
	SourceVideoPath         string // empty means no source audio (directory-to-video)
	OutputPath              string
	Width                   int
	Height                  int
	FPS                     float64
	TotalFrames             uint64
	Codec                   string
	CRF                     int
	Preset                  string
	PixelFormat             string
	KeyframeIntervalSeconds uint32
	Vibrato                 bool
	StartSecs               float64
	EndSecs                 float64
	TempDir                 string
}

// Sink is a Video Compilation instance: submit frames in strictly
// increasing index order, then call Finish.
type Sink struct {
	opts         Options
	videoEncoder *videoio.VideoEncoder
	videoTemp    string
	audioDecoder *videoio.AudioDecoder
	audioFilter  *audiofilter.Graph
	audioEncoder *videoio.AudioEncoder
	audioTemp    string
	audioErrCh   chan error
}

// Start initializes the encoders, the optional audio pipeline, and
// begins draining source audio concurrently with video submission.
func Start(ctx context.Context, opts Options) (*Sink, error) {
	if opts.TempDir == "" {
		opts.TempDir = os.TempDir()
	}
	videoTemp, err := util.CreateTempFilePath(opts.TempDir, "cascaler-video", "mp4")
	if err != nil {
		return nil, cerrors.NewIOError("failed to reserve temp video path", err)
	}

	videoEncoder, err := videoio.NewVideoEncoder(ctx, videoTemp, opts.Width, opts.Height, opts.FPS, opts.Codec, opts.CRF, opts.Preset, opts.PixelFormat, opts.KeyframeIntervalSeconds)
	if err != nil {
		return nil, err
	}

	sink := &Sink{opts: opts, videoEncoder: videoEncoder, videoTemp: videoTemp}

	if opts.SourceVideoPath != "" {
		audioDecoder, err := videoio.NewAudioDecoder(ctx, opts.SourceVideoPath, opts.StartSecs, opts.EndSecs)
		if err != nil {
			return nil, err
		}
		if audioDecoder != nil {
			filterGraph, err := audiofilter.New(ctx, opts.Vibrato, audioDecoder.SampleRate, audioDecoder.Channels)
			if err != nil {
				return nil, err
			}
			audioTemp, err := util.CreateTempFilePath(opts.TempDir, "cascaler-audio", "m4a")
			if err != nil {
				return nil, cerrors.NewIOError("failed to reserve temp audio path", err)
			}
			audioEncoder, err := videoio.NewAudioEncoder(ctx, audioTemp, audioDecoder.SampleRate, audioDecoder.Channels)
			if err != nil {
				return nil, err
			}

			sink.audioDecoder = audioDecoder
			sink.audioFilter = filterGraph
			sink.audioEncoder = audioEncoder
			sink.audioTemp = audioTemp
			sink.audioErrCh = make(chan error, 1)

			go sink.drainAudio()
		}
	}

	return sink, nil
}

// drainAudio runs the audio decode→filter→encode pipeline to
// completion independently of video submission, per the streaming
// sink's concurrent audio/video contract.
func (s *Sink) drainAudio() {
	for {
		frame, ok, err := s.audioDecoder.NextFrame()
		if err != nil {
			s.audioErrCh <- err
			return
		}
		if !ok {
			break
		}
		filtered, err := s.audioFilter.Apply(frame)
		if err != nil {
			s.audioErrCh <- err
			return
		}
		if err := s.audioEncoder.Submit(filtered); err != nil {
			s.audioErrCh <- err
			return
		}
	}
	s.audioErrCh <- nil
}

// Submit writes one carved frame to the video encoder. Callers must
// submit in strictly increasing frame index order.
func (s *Sink) Submit(frame *pixfmt.RGB24) error {
	return s.videoEncoder.Submit(frame)
}

// Finish flushes the video stream (and the audio stream, if present),
// muxes the two elementary streams into the final output, and removes
// the intermediate files. Any stage failure aborts the whole sink and
// removes partial output.
func (s *Sink) Finish(ctx context.Context) error {
	videoErr := s.videoEncoder.Flush()
	defer os.Remove(s.videoTemp)

	var audioErr error
	if s.audioEncoder != nil {
		if err := <-s.audioErrCh; err != nil {
			audioErr = err
		}
		_ = s.audioDecoder.Close()
		if s.audioFilter != nil {
			_ = s.audioFilter.Close()
		}
		if audioErr == nil {
			audioErr = s.audioEncoder.Flush()
		}
		defer os.Remove(s.audioTemp)
	}

	if videoErr != nil {
		return videoErr
	}
	if audioErr != nil {
		return audioErr
	}

	audioPath := ""
	if s.audioEncoder != nil {
		audioPath = s.audioTemp
	}
	if err := videoio.Mux(ctx, s.videoTemp, audioPath, s.opts.OutputPath); err != nil {
		_ = os.Remove(s.opts.OutputPath)
		return err
	}
	return nil
}

// Abort removes any intermediate output produced so far, for
// cancellation paths that must not leave a partial result behind.
func (s *Sink) Abort() {
	if s.videoTemp != "" {
		_ = os.Remove(s.videoTemp)
	}
	if s.audioTemp != "" {
		_ = os.Remove(s.audioTemp)
	}
	_ = os.Remove(s.opts.OutputPath)
}
