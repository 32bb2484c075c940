// Package ffmpeg builds and runs ffmpeg subprocess pipelines for raw
// frame decode and encode. It never links against libav*; every
// capability is a command line built here and executed via exec.
package ffmpeg

import "fmt"

// RawVideoFormat names the pixel format ffmpeg should use for raw
// frame pipes between cascaler and ffmpeg.
const RawVideoFormat = "rgb24"

// RawAudioFormat names the sample format ffmpeg should use for raw
// audio pipes, matching the interleaved float32 frames the audio
// filter graph operates on.
const RawAudioFormat = "f32le"

// DecodeParams configures a video-to-raw-frames decode pipeline.
type DecodeParams struct {
	InputPath string
	StartSecs float64
	EndSecs   float64 // 0 means "to end of stream"
	FPS       float64 // 0 means "native frame rate"
}

// BuildDecodeArgs builds the ffmpeg argument list that decodes
// InputPath to a stream of raw RGB24 frames on stdout.
func BuildDecodeArgs(p DecodeParams) []string {
	args := []string{"-hide_banner", "-loglevel", "error"}
	if p.StartSecs > 0 {
		args = append(args, "-ss", fmt.Sprintf("%f", p.StartSecs))
	}
	args = append(args, "-i", p.InputPath)
	if p.EndSecs > 0 {
		duration := p.EndSecs - p.StartSecs
		args = append(args, "-t", fmt.Sprintf("%f", duration))
	}
	if p.FPS > 0 {
		args = append(args, "-vf", fmt.Sprintf("fps=%f", p.FPS))
	}
	args = append(args, "-an", "-f", "rawvideo", "-pix_fmt", RawVideoFormat, "-")
	return args
}

// EncodeParams configures a raw-frames-to-video encode pipeline.
type EncodeParams struct {
	Width       int
	Height      int
	FPS         float64
	Codec       string
	CRF         int
	Preset      string
	PixelFormat string
	// CodecParams is a pre-built -x264-params/-x265-params value (see
	// CodecParamsBuilder). Empty means no codec-specific tuning flag.
	CodecParams string
	OutputPath  string
}

// codecParamsFlag names the ffmpeg flag that carries CodecParams for
// a given -c:v encoder name.
func codecParamsFlag(codec string) string {
	switch codec {
	case "libx265":
		return "-x265-params"
	default:
		return "-x264-params"
	}
}

// BuildEncodeArgs builds the ffmpeg argument list that reads raw
// RGB24 frames from stdin and encodes them to OutputPath.
func BuildEncodeArgs(p EncodeParams) []string {
	args := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-f", "rawvideo",
		"-pix_fmt", RawVideoFormat,
		"-s", fmt.Sprintf("%dx%d", p.Width, p.Height),
		"-r", fmt.Sprintf("%f", p.FPS),
		"-i", "-",
		"-c:v", p.Codec,
	}
	if p.CRF > 0 {
		args = append(args, "-crf", fmt.Sprintf("%d", p.CRF))
	}
	if p.Preset != "" {
		args = append(args, "-preset", p.Preset)
	}
	if p.PixelFormat != "" {
		args = append(args, "-pix_fmt", p.PixelFormat)
	}
	if p.CodecParams != "" {
		args = append(args, codecParamsFlag(p.Codec), p.CodecParams)
	}
	args = append(args, p.OutputPath)
	return args
}

// AudioDecodeParams configures an audio-to-raw-samples decode pipeline.
type AudioDecodeParams struct {
	InputPath  string
	StartSecs  float64
	EndSecs    float64
	SampleRate int
	Channels   int
}

// BuildAudioDecodeArgs builds the ffmpeg argument list that decodes
// an input's audio track to raw f32le samples on stdout.
func BuildAudioDecodeArgs(p AudioDecodeParams) []string {
	args := []string{"-hide_banner", "-loglevel", "error"}
	if p.StartSecs > 0 {
		args = append(args, "-ss", fmt.Sprintf("%f", p.StartSecs))
	}
	args = append(args, "-i", p.InputPath)
	if p.EndSecs > 0 {
		duration := p.EndSecs - p.StartSecs
		args = append(args, "-t", fmt.Sprintf("%f", duration))
	}
	args = append(args, "-vn", "-f", RawAudioFormat,
		"-ar", fmt.Sprintf("%d", p.SampleRate),
		"-ac", fmt.Sprintf("%d", p.Channels),
		"-")
	return args
}

// AudioEncodeParams configures a raw-samples-to-audio encode pipeline.
type AudioEncodeParams struct {
	SampleRate int
	Channels   int
	Codec      string // e.g. "aac"; empty lets ffmpeg pick from the output extension
	Bitrate    string // e.g. "192k"; empty means CalculateAudioBitrate(Channels)
	OutputPath string
}

// BuildAudioEncodeArgs builds the ffmpeg argument list that reads raw
// f32le samples from stdin and writes OutputPath.
func BuildAudioEncodeArgs(p AudioEncodeParams) []string {
	args := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-f", RawAudioFormat,
		"-ar", fmt.Sprintf("%d", p.SampleRate),
		"-ac", fmt.Sprintf("%d", p.Channels),
		"-i", "-",
	}
	if p.Codec != "" {
		args = append(args, "-c:a", p.Codec)
	}
	bitrate := p.Bitrate
	if bitrate == "" {
		bitrate = fmt.Sprintf("%dk", CalculateAudioBitrate(p.Channels))
	}
	args = append(args, "-b:a", bitrate)
	args = append(args, p.OutputPath)
	return args
}

// MuxParams configures combining an elementary video stream and an
// elementary audio stream into a single output container.
type MuxParams struct {
	VideoPath  string
	AudioPath  string // empty means video-only
	OutputPath string
}

// BuildMuxArgs builds the ffmpeg argument list that stream-copies
// VideoPath (and AudioPath, if present) into OutputPath without
// re-encoding either stream.
func BuildMuxArgs(p MuxParams) []string {
	args := []string{"-hide_banner", "-loglevel", "error", "-y", "-i", p.VideoPath}
	if p.AudioPath != "" {
		args = append(args, "-i", p.AudioPath, "-map", "0:v:0", "-map", "1:a:0")
	}
	args = append(args, "-c", "copy", "-shortest", p.OutputPath)
	return args
}

// CalculateAudioBitrate returns a reasonable audio bitrate in kbps for
// the given channel count, used by callers that re-encode audio.
func CalculateAudioBitrate(channels int) int {
	switch channels {
	case 1:
		return 64
	case 2:
		return 128
	case 6:
		return 256
	case 8:
		return 384
	default:
		return channels * 48
	}
}
