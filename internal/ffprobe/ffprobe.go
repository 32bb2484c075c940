// Package ffprobe provides functions for extracting media information using ffprobe.
package ffprobe

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// VideoProperties describes the video stream of an input file.
type VideoProperties struct {
	Width        int
	Height       int
	DurationSecs float64
	FrameRate    float64
	TotalFrames  uint64
	CodecName    string
	PixelFormat  string
}

// AudioProperties describes the first audio stream of an input file,
// if any.
type AudioProperties struct {
	Present      bool
	CodecName    string
	Channels     int
	SampleRate   int
	DurationSecs float64
}

// ffprobeOutput represents the JSON output from ffprobe.
type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	CodecType    string `json:"codec_type"`
	CodecName    string `json:"codec_name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Channels     int    `json:"channels"`
	SampleRate   string `json:"sample_rate"`
	NbFrames     string `json:"nb_frames"`
	PixFmt       string `json:"pix_fmt"`
	RFrameRate   string `json:"r_frame_rate"`
	Duration     string `json:"duration"`
}

// runFFprobe executes ffprobe and returns the parsed output.
func runFFprobe(inputPath string) (*ffprobeOutput, error) {
	cmd := exec.Command("ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		inputPath,
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	return parseFFprobeOutput(output)
}

// parseFFprobeOutput parses raw ffprobe JSON, split out from
// runFFprobe so fixture-driven tests don't need a real ffprobe binary.
func parseFFprobeOutput(data []byte) (*ffprobeOutput, error) {
	var result ffprobeOutput
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	return &result, nil
}

// parseFrameRate parses an ffprobe "num/den" rational frame rate.
func parseFrameRate(s string) float64 {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0
	}
	num, err1 := strconv.ParseFloat(parts[0], 64)
	den, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil || den == 0 {
		return 0
	}
	return num / den
}

// GetVideoProperties returns video stream properties for inputPath.
func GetVideoProperties(inputPath string) (*VideoProperties, error) {
	probe, err := runFFprobe(inputPath)
	if err != nil {
		return nil, err
	}

	var formatDuration float64
	if probe.Format.Duration != "" {
		if d, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil {
			formatDuration = d
		}
	}

	var videoStream *ffprobeStream
	for i := range probe.Streams {
		if probe.Streams[i].CodecType == "video" {
			videoStream = &probe.Streams[i]
			break
		}
	}
	if videoStream == nil {
		return nil, fmt.Errorf("no video stream found in %s", inputPath)
	}
	if videoStream.Width <= 0 || videoStream.Height <= 0 {
		return nil, fmt.Errorf("invalid dimensions in %s: %dx%d", inputPath, videoStream.Width, videoStream.Height)
	}

	props := &VideoProperties{
		Width:        videoStream.Width,
		Height:       videoStream.Height,
		DurationSecs: formatDuration,
		FrameRate:    parseFrameRate(videoStream.RFrameRate),
		CodecName:    videoStream.CodecName,
		PixelFormat:  videoStream.PixFmt,
	}
	if videoStream.Duration != "" && props.DurationSecs == 0 {
		if d, err := strconv.ParseFloat(videoStream.Duration, 64); err == nil {
			props.DurationSecs = d
		}
	}
	if videoStream.NbFrames != "" {
		if frames, err := strconv.ParseUint(videoStream.NbFrames, 10, 64); err == nil {
			props.TotalFrames = frames
		}
	}
	if props.TotalFrames == 0 && props.FrameRate > 0 && props.DurationSecs > 0 {
		props.TotalFrames = uint64(props.FrameRate*props.DurationSecs + 0.5)
	}

	return props, nil
}

// GetAudioProperties returns the first audio stream's properties for
// inputPath, or a zero-value AudioProperties with Present=false if the
// file carries no audio.
func GetAudioProperties(inputPath string) (*AudioProperties, error) {
	probe, err := runFFprobe(inputPath)
	if err != nil {
		return nil, err
	}

	for _, stream := range probe.Streams {
		if stream.CodecType != "audio" {
			continue
		}
		props := &AudioProperties{
			Present:   true,
			CodecName: stream.CodecName,
			Channels:  stream.Channels,
		}
		if stream.SampleRate != "" {
			if rate, err := strconv.Atoi(stream.SampleRate); err == nil {
				props.SampleRate = rate
			}
		}
		if stream.Duration != "" {
			if d, err := strconv.ParseFloat(stream.Duration, 64); err == nil {
				props.DurationSecs = d
			}
		}
		return props, nil
	}

	return &AudioProperties{Present: false}, nil
}
