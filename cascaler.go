// Package cascaler provides a Go library for content-aware liquid
// rescaling of images, image batches, and video.
//
// cascaler applies seam carving to shrink or grow media to a target
// size while preserving visually salient content, with gradual
// dimension interpolation for continuous video and image sequences,
// and optional video reassembly with the original audio track.
//
// Basic usage:
//
//	r, err := cascaler.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := r.Rescale(ctx, "input.mp4", "output.mp4", cascaler.WithWidth(1280))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Processed %d of %d items\n", result.SuccessCount, len(result.Results))
package cascaler

import (
	"context"

	"github.com/five82/cascaler/internal/config"
	"github.com/five82/cascaler/internal/dispatch"
	"github.com/five82/cascaler/internal/imageop"
	"github.com/five82/cascaler/internal/processor"
	"github.com/five82/cascaler/internal/reporter"
)

// Result is the outcome of a Rescale run, re-exported from the Media
// Processor.
type Result = processor.RunResult

// ItemResult is one processed item's outcome, re-exported from the
// Media Processor.
type ItemResult = processor.ItemResult

// Rescaler drives media rescaling runs against a configured carver,
// reporter, and temp directory.
type Rescaler struct {
	carver   imageop.SeamCarver
	reporter reporter.Reporter
	cfg      *config.Config
	tempDir  string
}

// Option configures a Rescaler at construction time.
type Option func(*Rescaler)

// WithCarver overrides the SeamCarver implementation. Defaults to
// MagickCarver resolved from PATH.
func WithCarver(carver imageop.SeamCarver) Option {
	return func(r *Rescaler) { r.carver = carver }
}

// WithReporter overrides the progress/status reporter. Defaults to a
// NullReporter (silent).
func WithReporter(rep reporter.Reporter) Option {
	return func(r *Rescaler) { r.reporter = rep }
}

// WithConfig overrides the layered configuration. Defaults to
// config.Default().
func WithConfig(cfg *config.Config) Option {
	return func(r *Rescaler) { r.cfg = cfg }
}

// WithTempDir overrides the staging directory used for intermediate
// video/audio elementary streams. Defaults to os.TempDir() (applied
// by the video compilation sink when empty).
func WithTempDir(dir string) Option {
	return func(r *Rescaler) { r.tempDir = dir }
}

// New creates a Rescaler with the given options applied over defaults.
func New(opts ...Option) (*Rescaler, error) {
	r := &Rescaler{
		carver:   imageop.NewMagickCarver(""),
		reporter: reporter.NullReporter{},
		cfg:      config.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// RescaleOption configures a single Rescale call's processing options.
type RescaleOption func(*config.Options)

// WithWidth sets an exact target width (mutually exclusive with WithPercent).
func WithWidth(w int) RescaleOption { return func(o *config.Options) { o.Width = &w } }

// WithHeight sets an exact target height (mutually exclusive with WithPercent).
func WithHeight(h int) RescaleOption { return func(o *config.Options) { o.Height = &h } }

// WithPercent sets a target size as a percentage of the original.
func WithPercent(p float64) RescaleOption { return func(o *config.Options) { o.Percent = &p } }

// WithStartWidth sets a gradual run's starting width.
func WithStartWidth(w int) RescaleOption { return func(o *config.Options) { o.StartWidth = &w } }

// WithStartHeight sets a gradual run's starting height.
func WithStartHeight(h int) RescaleOption { return func(o *config.Options) { o.StartHeight = &h } }

// WithStartPercent sets a gradual run's starting size as a percentage.
func WithStartPercent(p float64) RescaleOption {
	return func(o *config.Options) { o.StartPercent = &p }
}

// WithWindow sets the source time window in seconds for video input.
func WithWindow(start, end float64) RescaleOption {
	return func(o *config.Options) { o.Start = &start; o.End = &end }
}

// WithDuration sets an explicit output duration in seconds, used for
// single-image-to-video synthetic sequences.
func WithDuration(seconds float64) RescaleOption {
	return func(o *config.Options) { o.Duration = &seconds }
}

// WithFormat sets the per-frame output format for image batch/sequence sinks.
func WithFormat(format string) RescaleOption { return func(o *config.Options) { o.Format = format } }

// WithFPS sets the output frame rate.
func WithFPS(fps float64) RescaleOption { return func(o *config.Options) { o.FPS = fps } }

// WithDeltaX sets the seam curvature freedom (0..1).
func WithDeltaX(deltaX float64) RescaleOption { return func(o *config.Options) { o.DeltaX = deltaX } }

// WithRigidity sets the seam straightness bias (0..10).
func WithRigidity(rigidity int) RescaleOption {
	return func(o *config.Options) { o.Rigidity = rigidity }
}

// WithThreads overrides the worker pool size for this run, taking
// precedence over the mode's configured max (Processing.MaxImageThreads
// or Processing.MaxVideoThreads).
func WithThreads(threads int) RescaleOption {
	return func(o *config.Options) { o.Threads = threads }
}

// WithScaleBack uniformly resamples each carved result to one common
// size: the component-wise max of the start and end dimensions for a
// gradual run, or the original dimensions for a static single image.
func WithScaleBack() RescaleOption { return func(o *config.Options) { o.ScaleBack = true } }

// WithVibrato enables the vibrato+tremolo audio filter on video runs.
func WithVibrato() RescaleOption { return func(o *config.Options) { o.Vibrato = true } }

// WithCodec sets the output video codec ("h264" or "h265").
func WithCodec(codec string) RescaleOption { return func(o *config.Options) { o.Codec = codec } }

// WithCRF sets the output video CRF (0..51).
func WithCRF(crf int) RescaleOption { return func(o *config.Options) { o.CRF = crf } }

// WithPreset sets the output video encoder preset name.
func WithPreset(preset string) RescaleOption { return func(o *config.Options) { o.Preset = preset } }

// Rescale classifies input, applies opts over the Rescaler's
// configuration defaults, and drives the run to completion, writing
// to output (or a computed default path/directory when output is
// empty).
func (r *Rescaler) Rescale(ctx context.Context, input, output string, opts ...RescaleOption) (*Result, error) {
	options := &config.Options{InputPath: input, OutputPath: output}
	for _, opt := range opts {
		opt(options)
	}
	options.ApplyDefaults(r.cfg)

	plan, err := dispatch.Dispatch(options, r.cfg)
	if err != nil {
		return nil, err
	}

	proc := processor.New(r.carver, r.reporter, r.tempDir)
	return proc.Run(ctx, plan, options, r.cfg)
}
