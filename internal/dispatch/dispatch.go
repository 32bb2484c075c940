// Package dispatch classifies a run's Processing Mode and computes
// its default output path and source list.
package dispatch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/five82/cascaler/internal/config"
	"github.com/five82/cascaler/internal/discovery"
	cerrors "github.com/five82/cascaler/internal/errors"
	"github.com/five82/cascaler/internal/util"
)

// Mode is the classified shape of a run.
type Mode int

const (
	// SingleImage rescales one image file to one image file.
	SingleImage Mode = iota
	// ImageSequence interpolates dimensions across a synthetic
	// duration (single image + duration) or across a directory of
	// frames compiled into a video (directory-to-video).
	ImageSequence
	// ImageBatch rescales every image in a directory independently,
	// each to the same target, writing a mirrored directory of images.
	ImageBatch
	// Video decodes, rescales, and reencodes a video file.
	Video
)

func (m Mode) String() string {
	switch m {
	case SingleImage:
		return "single image"
	case ImageSequence:
		return "image sequence"
	case ImageBatch:
		return "image batch"
	case Video:
		return "video"
	default:
		return "unknown"
	}
}

// SinkKind is the shape of the consumer at the end of the pipeline.
type SinkKind int

const (
	// SinkImageFiles writes one image file per processed frame.
	SinkImageFiles SinkKind = iota
	// SinkVideoMuxer feeds encoded frames into a Media Muxer.
	SinkVideoMuxer
)

// Plan is the dispatched job: mode, source list, and output target.
type Plan struct {
	Mode       Mode
	InputPath  string
	OutputPath string
	// Sources is the ordered list of input identifiers to process.
	// For SingleImage and Video it holds exactly InputPath. For
	// ImageBatch and directory-backed ImageSequence it holds every
	// discovered frame/image file, sorted.
	Sources []string
	Sink    SinkKind
}

// Dispatch validates opts and classifies the run per the rules in
// order: a video file is Video; an image file with Duration set is
// ImageSequence; an image file alone is SingleImage; a directory
// whose output ends in a recognized video extension is ImageSequence
// (directory-to-video); any other directory is ImageBatch.
func Dispatch(opts *config.Options, cfg *config.Config) (*Plan, error) {
	if err := opts.Validate(); err != nil {
		return nil, cerrors.NewValidationError(err.Error())
	}

	info, err := os.Stat(opts.InputPath)
	if err != nil {
		return nil, cerrors.NewNotFoundError(fmt.Sprintf("input path does not exist: %s", opts.InputPath))
	}

	if !info.IsDir() {
		ext := strings.ToLower(filepath.Ext(opts.InputPath))
		videoOutput := config.InputVideoExtensions[ext] || (config.InputImageExtensions[ext] && opts.Duration != nil)
		if videoOutput && opts.OutputPath != "" &&
			!config.OutputVideoExtensions[strings.ToLower(filepath.Ext(opts.OutputPath))] {
			return nil, cerrors.NewValidationError(config.ErrUnsupportedOutputExt.Error())
		}
		switch {
		case config.InputVideoExtensions[ext]:
			return dispatchVideo(opts, cfg)
		case config.InputImageExtensions[ext] && opts.Duration != nil:
			return dispatchImageSequence(opts, cfg)
		case config.InputImageExtensions[ext]:
			return dispatchSingleImage(opts, cfg)
		default:
			return nil, cerrors.NewValidationError(
				fmt.Sprintf("unrecognized input file extension: %s", ext))
		}
	}

	if opts.OutputPath != "" && config.OutputVideoExtensions[strings.ToLower(filepath.Ext(opts.OutputPath))] {
		return dispatchDirectoryToVideo(opts, cfg)
	}
	return dispatchImageBatch(opts, cfg)
}

func dispatchVideo(opts *config.Options, cfg *config.Config) (*Plan, error) {
	output := opts.OutputPath
	if output == "" {
		output = defaultVideoOutputPath(opts.InputPath, cfg.Output.Suffix)
	}
	return &Plan{
		Mode:       Video,
		InputPath:  opts.InputPath,
		OutputPath: output,
		Sources:    []string{opts.InputPath},
		Sink:       SinkVideoMuxer,
	}, nil
}

func dispatchImageSequence(opts *config.Options, cfg *config.Config) (*Plan, error) {
	output := opts.OutputPath
	if output == "" {
		output = defaultVideoOutputPath(opts.InputPath, cfg.Output.Suffix)
	}
	return &Plan{
		Mode:       ImageSequence,
		InputPath:  opts.InputPath,
		OutputPath: output,
		Sources:    []string{opts.InputPath},
		Sink:       SinkVideoMuxer,
	}, nil
}

func dispatchSingleImage(opts *config.Options, cfg *config.Config) (*Plan, error) {
	output := opts.OutputPath
	if output == "" {
		output = defaultImageOutputPath(opts.InputPath, cfg.Output.Suffix)
	}
	return &Plan{
		Mode:       SingleImage,
		InputPath:  opts.InputPath,
		OutputPath: output,
		Sources:    []string{opts.InputPath},
		Sink:       SinkImageFiles,
	}, nil
}

func dispatchDirectoryToVideo(opts *config.Options, cfg *config.Config) (*Plan, error) {
	sources, err := discovery.FindFiles(opts.InputPath, config.InputImageExtensions)
	if err != nil {
		return nil, cerrors.NewNotFoundError(err.Error())
	}
	return &Plan{
		Mode:       ImageSequence,
		InputPath:  opts.InputPath,
		OutputPath: opts.OutputPath,
		Sources:    sources,
		Sink:       SinkVideoMuxer,
	}, nil
}

func dispatchImageBatch(opts *config.Options, cfg *config.Config) (*Plan, error) {
	sources, err := discovery.FindFiles(opts.InputPath, config.InputImageExtensions)
	if err != nil {
		return nil, cerrors.NewNotFoundError(err.Error())
	}
	output := opts.OutputPath
	if output == "" {
		output = defaultBatchOutputDir(opts.InputPath, cfg.Output.Suffix)
	}
	return &Plan{
		Mode:       ImageBatch,
		InputPath:  opts.InputPath,
		OutputPath: output,
		Sources:    sources,
		Sink:       SinkImageFiles,
	}, nil
}

func defaultImageOutputPath(inputPath, suffix string) string {
	return util.ResolveImageOutputPath(inputPath, suffix)
}

func defaultVideoOutputPath(inputPath, suffix string) string {
	return util.ResolveVideoOutputPath(inputPath, suffix, config.OutputVideoExtensions)
}

func defaultBatchOutputDir(inputDir, suffix string) string {
	return util.ResolveBatchOutputDir(inputDir, suffix)
}
