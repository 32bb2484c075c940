package cascaler

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/five82/cascaler/internal/config"
)

type fakeCarver struct{}

func (fakeCarver) Carve(ctx context.Context, img image.Image, targetW, targetH int, deltaX float64, rigidity int) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, targetW, targetH)), nil
}

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 1, G: 2, B: 3, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestNewAppliesOptionsOverDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Processing.MaxImageThreads = 1

	r, err := New(WithCarver(fakeCarver{}), WithConfig(cfg))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if r.cfg.Processing.MaxImageThreads != 1 {
		t.Errorf("expected WithConfig to override defaults, got %d", r.cfg.Processing.MaxImageThreads)
	}
	if _, ok := r.carver.(fakeCarver); !ok {
		t.Errorf("expected WithCarver to install fakeCarver, got %T", r.carver)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Processing.MaxImageThreads = 0

	if _, err := New(WithConfig(cfg)); err == nil {
		t.Fatal("expected New() to reject an invalid config")
	}
}

func TestRescaleSingleImage(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	writeTestPNG(t, input, 40, 20)
	output := filepath.Join(dir, "out.png")

	r, err := New(WithCarver(fakeCarver{}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := r.Rescale(context.Background(), input, output, WithWidth(20), WithHeight(10))
	if err != nil {
		t.Fatalf("Rescale() error = %v", err)
	}
	if result.SuccessCount != 1 {
		t.Fatalf("expected success, got %+v", result)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("expected output file to exist: %v", err)
	}
}

func TestRescaleRejectsMutuallyExclusiveDimensions(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	writeTestPNG(t, input, 40, 20)

	r, err := New(WithCarver(fakeCarver{}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = r.Rescale(context.Background(), input, "", WithWidth(20), WithPercent(50))
	if err == nil {
		t.Fatal("expected an error for width+percent mutual exclusion")
	}
}
