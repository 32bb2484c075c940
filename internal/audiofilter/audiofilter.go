// Package audiofilter implements the Audio Filter: an optional
// vibrato+tremolo filter graph applied to interleaved float32 audio frames in
// pts order, or an identity pass-through when disabled.
package audiofilter

import (
	"context"
	"io"
	"strconv"

	"github.com/five82/cascaler/internal/ffmpeg"
	"github.com/five82/cascaler/internal/videoio"
)

const (
	vibratoFreq  = 5
	vibratoDepth = 0.5
	tremoloFreq  = 5
	tremoloDepth = 0.5
)

// Graph applies the configured audio filter chain to a sequence of
// frames. A disabled Graph is the identity function.
type Graph struct {
	enabled    bool
	pipe       *ffmpeg.Pipe
	sampleRate int
	channels   int
}

// New starts the vibrato+tremolo filter pipeline for the given
// sample rate and channel count. If enabled is false, New returns a
// Graph whose Apply is the identity and that spawns no subprocess.
func New(ctx context.Context, enabled bool, sampleRate, channels int) (*Graph, error) {
	if !enabled {
		return &Graph{enabled: false, sampleRate: sampleRate, channels: channels}, nil
	}

	filterGraph := ffmpeg.NewAudioFilterChain().
		AddVibrato(vibratoFreq, vibratoDepth).
		AddTremolo(tremoloFreq, tremoloDepth).
		Build()

	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-f", ffmpeg.RawAudioFormat,
		"-ar", strconv.Itoa(sampleRate),
		"-ac", strconv.Itoa(channels),
		"-i", "-",
		"-af", filterGraph,
		"-f", ffmpeg.RawAudioFormat,
		"-",
	}
	pipe, err := ffmpeg.StartPipe(ctx, "ffmpeg", args, true, true)
	if err != nil {
		return nil, err
	}
	return &Graph{enabled: true, pipe: pipe, sampleRate: sampleRate, channels: channels}, nil
}

// Enabled reports whether this graph applies a non-identity filter.
func (g *Graph) Enabled() bool {
	return g.enabled
}

// Apply returns a new filtered frame when enabled, or frame itself
// unchanged when disabled.
func (g *Graph) Apply(frame *videoio.AudioFrame) (*videoio.AudioFrame, error) {
	if !g.enabled {
		return frame, nil
	}

	payload := videoio.EncodeFloat32LE(frame.Samples)
	if _, err := g.pipe.Stdin.Write(payload); err != nil {
		return nil, err
	}
	out := make([]byte, len(payload))
	n, err := io.ReadFull(g.pipe.Stdout, out)
	if err != nil {
		return nil, err
	}
	samples := videoio.DecodeFloat32LE(out[:n])

	return &videoio.AudioFrame{
		SampleRate: frame.SampleRate,
		Channels:   frame.Channels,
		Samples:    samples,
		PTS:        frame.PTS,
	}, nil
}

// Close flushes stdin and waits for the filter subprocess to exit.
// A no-op on a disabled graph.
func (g *Graph) Close() error {
	if !g.enabled {
		return nil
	}
	if err := g.pipe.Stdin.Close(); err != nil {
		return err
	}
	return g.pipe.Wait()
}
