package dimension

import (
	"testing"

	"github.com/five82/cascaler/internal/config"
)

func TestResolveWidthHeight(t *testing.T) {
	w, h := 200, 100
	opts := &config.Options{Width: &w, Height: &h}
	p := Resolve(opts, 400, 200)
	if p.EndW != 200 || p.EndH != 100 {
		t.Errorf("got end %dx%d, want 200x100", p.EndW, p.EndH)
	}
	if p.StartW != 400 || p.StartH != 200 {
		t.Errorf("expected start to default to original, got %dx%d", p.StartW, p.StartH)
	}
}

func TestResolvePercent(t *testing.T) {
	pct := 50.0
	opts := &config.Options{Percent: &pct}
	p := Resolve(opts, 400, 201)
	if p.EndW != 200 {
		t.Errorf("expected EndW=200, got %d", p.EndW)
	}
	if p.EndH != 101 {
		t.Errorf("expected EndH=101 (round), got %d", p.EndH)
	}
}

func TestResolvePercentClampsToOne(t *testing.T) {
	pct := 0.1
	opts := &config.Options{Percent: &pct}
	p := Resolve(opts, 10, 10)
	if p.EndW < 1 || p.EndH < 1 {
		t.Errorf("expected clamped dimensions >= 1, got %dx%d", p.EndW, p.EndH)
	}
}

func TestGradual(t *testing.T) {
	p := Plan{StartW: 100, StartH: 100, EndW: 100, EndH: 100}
	if p.Gradual() {
		t.Error("expected not gradual when start == end")
	}
	p.EndW = 50
	if !p.Gradual() {
		t.Error("expected gradual when start != end")
	}
}

func TestInterpolateSingleFrame(t *testing.T) {
	p := Plan{StartW: 400, StartH: 200, EndW: 200, EndH: 100}
	w, h := p.Interpolate(0, 1)
	if w != 200 || h != 100 {
		t.Errorf("single-frame interpolate should equal end dims, got %dx%d", w, h)
	}
}

func TestInterpolateEndpoints(t *testing.T) {
	p := Plan{StartW: 400, StartH: 200, EndW: 200, EndH: 100}
	w0, h0 := p.Interpolate(0, 10)
	if w0 != 400 || h0 != 200 {
		t.Errorf("frame 0 should equal start dims, got %dx%d", w0, h0)
	}
	w9, h9 := p.Interpolate(9, 10)
	if w9 != 200 || h9 != 100 {
		t.Errorf("last frame should equal end dims, got %dx%d", w9, h9)
	}
}

func TestInterpolateMidpoint(t *testing.T) {
	p := Plan{StartW: 0, StartH: 0, EndW: 100, EndH: 100}
	w, h := p.Interpolate(5, 11)
	if w != 50 || h != 50 {
		t.Errorf("midpoint of 11 frames should be 50x50, got %dx%d", w, h)
	}
}

func TestScaleBackTargetGradual(t *testing.T) {
	p := Plan{StartW: 400, StartH: 100, EndW: 200, EndH: 300}
	w, h := p.ScaleBackTarget(0, 0)
	if w != 400 || h != 300 {
		t.Errorf("expected component-wise max 400x300, got %dx%d", w, h)
	}
}

func TestScaleBackTargetStatic(t *testing.T) {
	p := Plan{StartW: 200, StartH: 200, EndW: 200, EndH: 200}
	w, h := p.ScaleBackTarget(800, 600)
	if w != 800 || h != 600 {
		t.Errorf("expected original dims 800x600 for static plan, got %dx%d", w, h)
	}
}
