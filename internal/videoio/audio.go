package videoio

import (
	"context"
	"encoding/binary"
	"io"
	"math"

	"github.com/five82/cascaler/internal/ffmpeg"
	"github.com/five82/cascaler/internal/ffprobe"
)

// AudioFrame carries a chunk of interleaved float32 samples at a
// known rate, channel count, and presentation timestamp (milliseconds).
type AudioFrame struct {
	SampleRate int
	Channels   int
	Samples    []float32 // interleaved, len == SampleCount*Channels
	PTS        int64
}

// SampleCount returns the number of per-channel samples in the frame.
func (f *AudioFrame) SampleCount() int {
	if f.Channels == 0 {
		return 0
	}
	return len(f.Samples) / f.Channels
}

const audioChunkSamples = 4096

// AudioDecoder demuxes and decodes a file's first audio stream to
// float32 frames, honoring the same trim window as the Video Decoder.
type AudioDecoder struct {
	pipe       *ffmpeg.Pipe
	SampleRate int
	Channels   int
	CodecName  string
	index      int64
}

// NewAudioDecoder returns nil, nil if inputPath carries no audio
// stream.
func NewAudioDecoder(ctx context.Context, inputPath string, startSecs, endSecs float64) (*AudioDecoder, error) {
	props, err := ffprobe.GetAudioProperties(inputPath)
	if err != nil {
		return nil, err
	}
	if !props.Present {
		return nil, nil
	}

	sampleRate := props.SampleRate
	if sampleRate == 0 {
		sampleRate = 48000
	}
	channels := props.Channels
	if channels == 0 {
		channels = 2
	}

	args := ffmpeg.BuildAudioDecodeArgs(ffmpeg.AudioDecodeParams{
		InputPath:  inputPath,
		StartSecs:  startSecs,
		EndSecs:    endSecs,
		SampleRate: sampleRate,
		Channels:   channels,
	})
	pipe, err := ffmpeg.StartPipe(ctx, "ffmpeg", args, false, true)
	if err != nil {
		return nil, err
	}

	return &AudioDecoder{
		pipe:       pipe,
		SampleRate: sampleRate,
		Channels:   channels,
		CodecName:  props.CodecName,
	}, nil
}

// NextFrame reads up to audioChunkSamples per-channel samples.
func (d *AudioDecoder) NextFrame() (*AudioFrame, bool, error) {
	buf := make([]byte, audioChunkSamples*d.Channels*4)
	n, err := io.ReadFull(d.pipe.Stdout, buf)
	if n == 0 {
		if err == io.EOF {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
	}
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, false, err
	}

	samples := DecodeFloat32LE(buf[:n-(n%4)])
	frameCount := len(samples) / d.Channels
	pts := int64(float64(d.index) / float64(d.SampleRate) * 1000)
	d.index += int64(frameCount)

	return &AudioFrame{
		SampleRate: d.SampleRate,
		Channels:   d.Channels,
		Samples:    samples,
		PTS:        pts,
	}, true, nil
}

// Close waits for the decode subprocess to exit.
func (d *AudioDecoder) Close() error {
	return d.pipe.Wait()
}

func DecodeFloat32LE(buf []byte) []float32 {
	out := make([]float32, len(buf)/4)
	for i := range out {
		bits := binary.LittleEndian.Uint32(buf[i*4 : i*4+4])
		out[i] = math.Float32frombits(bits)
	}
	return out
}

func EncodeFloat32LE(samples []float32) []byte {
	buf := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(s))
	}
	return buf
}
