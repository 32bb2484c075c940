// Package imageop implements the Image Operation: format-aware image
// I/O, content-aware liquid rescaling via an external collaborator,
// and uniform resampling.
package imageop

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // registers webp decoding for image.Decode; imaging covers jpg/png/gif/bmp/tiff natively

	cerrors "github.com/five82/cascaler/internal/errors"
	"github.com/five82/cascaler/internal/pixfmt"
)

// SeamCarver is the external collaborator that performs content-aware
// liquid rescaling. Implementations invoke a native library or CLI
// tool; the algorithm itself is never implemented here.
type SeamCarver interface {
	// Carve rescales img to exactly targetW x targetH, preserving the
	// most visually salient content per deltaX (seam curvature
	// freedom, 0..1) and rigidity (seam straightness bias, 0..10).
	Carve(ctx context.Context, img image.Image, targetW, targetH int, deltaX float64, rigidity int) (image.Image, error)
}

// DefaultTimeout bounds a single carving call absent an explicit
// deadline on ctx.
const DefaultTimeout = 30 * time.Second

// Load reads an image file, inferring its format from the extension.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, cerrors.NewIOError(fmt.Sprintf("failed to load image %s", path), err)
	}
	return img, nil
}

// Save writes img to path, inferring its format from the extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return cerrors.NewIOError(fmt.Sprintf("failed to save image %s", path), err)
	}
	return nil
}

// Resize uniformly resamples img to exactly (width, height) with a
// bilinear filter, the non-carving resize path used for scale-back
// and for frames whose decoded size doesn't match the target.
func Resize(img image.Image, width, height int) image.Image {
	return pixfmt.Resize(img, width, height)
}

// Process carves img to (targetW, targetH) using carver, bounded by
// DefaultTimeout unless ctx already carries a deadline. A timeout or
// carver failure is reported as a carving error.
func Process(ctx context.Context, carver SeamCarver, img image.Image, targetW, targetH int, deltaX float64, rigidity int) (image.Image, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	type result struct {
		img image.Image
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := carver.Carve(ctx, img, targetW, targetH, deltaX, rigidity)
		done <- result{img: out, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, cerrors.NewCarvingError("seam carving timed out", ctx.Err())
	case r := <-done:
		if r.err != nil {
			return nil, cerrors.NewCarvingError("seam carving failed", r.err)
		}
		return r.img, nil
	}
}
