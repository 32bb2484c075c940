package imageop

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fakeCarver struct {
	delay   time.Duration
	err     error
	gotW    int
	gotH    int
	gotDX   float64
	gotRig  int
}

func (f *fakeCarver) Carve(ctx context.Context, img image.Image, targetW, targetH int, deltaX float64, rigidity int) (image.Image, error) {
	f.gotW, f.gotH, f.gotDX, f.gotRig = targetW, targetH, deltaX, rigidity
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return image.NewRGBA(image.Rect(0, 0, targetW, targetH)), nil
}

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	return img
}

func TestProcessSuccess(t *testing.T) {
	carver := &fakeCarver{}
	out, err := Process(context.Background(), carver, solid(20, 10), 16, 8, 0.5, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := out.Bounds()
	if b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("expected 16x8 output, got %dx%d", b.Dx(), b.Dy())
	}
	if carver.gotW != 16 || carver.gotH != 8 || carver.gotDX != 0.5 || carver.gotRig != 2 {
		t.Errorf("carver did not receive expected params: %+v", carver)
	}
}

func TestProcessCarverError(t *testing.T) {
	carver := &fakeCarver{err: errors.New("boom")}
	_, err := Process(context.Background(), carver, solid(4, 4), 2, 2, 0, 0)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestProcessTimeout(t *testing.T) {
	carver := &fakeCarver{delay: 50 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	_, err := Process(ctx, carver, solid(4, 4), 2, 2, 0, 0)
	if err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestResize(t *testing.T) {
	out := Resize(solid(20, 10), 10, 5)
	b := out.Bounds()
	if b.Dx() != 10 || b.Dy() != 5 {
		t.Errorf("expected 10x5, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.png")
	if err := Save(solid(6, 4), path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 6 || b.Dy() != 4 {
		t.Errorf("expected 6x4, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
