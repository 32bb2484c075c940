// Package dimension computes per-frame target dimensions for gradual
// seam-carving scale changes.
package dimension

import (
	"math"

	"github.com/five82/cascaler/internal/config"
)

// Plan is a fully resolved start/end dimension pair for a run, derived
// from Options and the source's intrinsic size.
type Plan struct {
	StartW, StartH int
	EndW, EndH     int
}

// Gradual reports whether the plan changes dimensions across frames,
// as opposed to every frame sharing one target size.
func (p Plan) Gradual() bool {
	return p.StartW != p.EndW || p.StartH != p.EndH
}

// Resolve derives a Plan from opts and the source's intrinsic
// (origW, origH). Unspecified start dimensions default to the
// original size; percent forms resolve to round(original*pct/100),
// clamped to at least 1.
func Resolve(opts *config.Options, origW, origH int) Plan {
	endW, endH := origW, origH
	switch {
	case opts.Percent != nil:
		endW = clampAtLeastOne(roundPercent(origW, *opts.Percent))
		endH = clampAtLeastOne(roundPercent(origH, *opts.Percent))
	default:
		if opts.Width != nil {
			endW = *opts.Width
		}
		if opts.Height != nil {
			endH = *opts.Height
		}
	}

	startW, startH := origW, origH
	switch {
	case opts.StartPercent != nil:
		startW = clampAtLeastOne(roundPercent(origW, *opts.StartPercent))
		startH = clampAtLeastOne(roundPercent(origH, *opts.StartPercent))
	default:
		if opts.StartWidth != nil {
			startW = *opts.StartWidth
		}
		if opts.StartHeight != nil {
			startH = *opts.StartHeight
		}
	}

	return Plan{StartW: startW, StartH: startH, EndW: endW, EndH: endH}
}

// Interpolate returns the target (w,h) for frame i of totalFrames.
// For totalFrames>1 it's round(start + (end-start)*i/(totalFrames-1));
// for a single frame it's simply the end dimensions.
func (p Plan) Interpolate(frame, totalFrames int) (int, int) {
	if totalFrames <= 1 {
		return p.EndW, p.EndH
	}
	t := float64(frame) / float64(totalFrames-1)
	w := int(math.Round(float64(p.StartW) + float64(p.EndW-p.StartW)*t))
	h := int(math.Round(float64(p.StartH) + float64(p.EndH-p.StartH)*t))
	return clampAtLeastOne(w), clampAtLeastOne(h)
}

// ScaleBackTarget returns the uniform dimensions the Image Operation
// should resample to after carving when scale-back is enabled: the
// component-wise max of start/end for a gradual plan, or the original
// dimensions for a static single-image scale-back.
func (p Plan) ScaleBackTarget(origW, origH int) (int, int) {
	if !p.Gradual() {
		return origW, origH
	}
	return max(p.StartW, p.EndW), max(p.StartH, p.EndH)
}

func roundPercent(dim int, pct float64) int {
	return int(math.Round(float64(dim) * pct / 100))
}

func clampAtLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
