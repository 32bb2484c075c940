package config

import (
	"fmt"
)

// Options holds a single run's processing options: the CLI surface
// plus whatever Config defaults were layered underneath it. Pointer
// fields distinguish "unset" from the zero value so mutual-exclusion
// and default-filling rules can be applied deterministically.
type Options struct {
	InputPath  string
	OutputPath string // optional; Mode Dispatcher fills in the default when empty

	// End target: width/height XOR percent.
	Width   *int
	Height  *int
	Percent *float64

	// Start target: start-width/start-height XOR start-percent.
	StartWidth   *int
	StartHeight  *int
	StartPercent *float64

	// Time window: {Start,End} XOR {Start,Duration}, in seconds.
	Start    *float64
	End      *float64
	Duration *float64

	Format    string // output frame format for image-sequence/batch sinks
	FPS       float64
	DeltaX    float64 // seam curvature freedom, 0..1
	Rigidity  int     // seam straightness bias, 0..10
	Threads   int // explicit worker count override; 0 means use the mode's configured max
	Progress  bool
	ScaleBack bool

	CRF    int    // 0..51
	Preset string // encoder preset name (e.g. "medium")
	Codec  string // "h264" or "h265"

	Vibrato bool
}

// Validate checks the mutual-exclusion and range invariants from the
// processing options data model. It does not touch the filesystem;
// input-existence is checked by the Mode Dispatcher, which needs a
// os.Stat anyway to classify the run.
func (o *Options) Validate() error {
	if o.Percent != nil && (o.Width != nil || o.Height != nil) {
		return ErrMutuallyExclusiveDims
	}
	if o.StartPercent != nil && (o.StartWidth != nil || o.StartHeight != nil) {
		return ErrMutuallyExclusiveStartDims
	}
	if o.End != nil && o.Duration != nil {
		return ErrMutuallyExclusiveWindow
	}
	if o.FPS <= 0 {
		return ErrInvalidFPS
	}
	if o.Start != nil && o.End != nil && *o.Start >= *o.End {
		return ErrInvalidWindow
	}
	if o.DeltaX < 0 || o.DeltaX > 1 {
		return ErrInvalidDeltaX
	}
	if o.Rigidity < 0 || o.Rigidity > 10 {
		return ErrInvalidRigidity
	}
	if o.CRF < 0 || o.CRF > 51 {
		return ErrInvalidCRF
	}
	return nil
}

// ApplyDefaults fills zero-valued fields from cfg. Explicit CLI values
// (already set on o) always win over configured/embedded defaults.
func (o *Options) ApplyDefaults(cfg *Config) {
	if o.Format == "" {
		o.Format = cfg.Processing.DefaultImageOutputFormat
	}
	if o.FPS == 0 {
		o.FPS = cfg.Processing.DefaultFps
	}
	if o.DeltaX == 0 {
		o.DeltaX = cfg.Processing.DefaultDeltaX
	}
	if o.Rigidity == 0 {
		o.Rigidity = cfg.Processing.DefaultRigidity
	}
	if o.CRF == 0 {
		o.CRF = cfg.VideoEncoding.DefaultCRF
	}
	if o.Preset == "" {
		o.Preset = cfg.VideoEncoding.DefaultPreset
	}
	if o.Codec == "" {
		o.Codec = cfg.VideoEncoding.DefaultCodec
	}
	if !o.ScaleBack {
		o.ScaleBack = cfg.Processing.DefaultScaleBack
	}
	if !o.Vibrato {
		o.Vibrato = cfg.Processing.DefaultVibrato
	}
}

// String renders the options for debug logging.
func (o *Options) String() string {
	return fmt.Sprintf("Options{input=%s output=%s fps=%g deltaX=%g rigidity=%d crf=%d preset=%s codec=%s}",
		o.InputPath, o.OutputPath, o.FPS, o.DeltaX, o.Rigidity, o.CRF, o.Preset, o.Codec)
}
