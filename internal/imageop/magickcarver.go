package imageop

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"strconv"

	cerrors "github.com/five82/cascaler/internal/errors"
)

// MagickCarver implements SeamCarver by piping frames through
// ImageMagick's liquid-rescale operator, the same external-binary
// subprocess pattern used for ffmpeg elsewhere in this module. It
// never touches pixels itself; LqrCarver inside ImageMagick does the
// actual seam computation.
type MagickCarver struct {
	// BinaryPath is the magick/convert executable to invoke. Empty
	// means "magick" resolved from PATH.
	BinaryPath string
}

// NewMagickCarver creates a carver that shells out to binaryPath. An
// empty binaryPath resolves "magick" from PATH at call time.
func NewMagickCarver(binaryPath string) *MagickCarver {
	return &MagickCarver{BinaryPath: binaryPath}
}

func (c *MagickCarver) binary() string {
	if c.BinaryPath != "" {
		return c.BinaryPath
	}
	return "magick"
}

// Carve rescales img to targetW x targetH via:
//
//	magick png:- -liquid-rescale <W>x<H>! -define delta-x=<deltaX> -define rigidity=<rigidity> png:-
func (c *MagickCarver) Carve(ctx context.Context, img image.Image, targetW, targetH int, deltaX float64, rigidity int) (image.Image, error) {
	var input bytes.Buffer
	if err := png.Encode(&input, img); err != nil {
		return nil, fmt.Errorf("encode frame for carving: %w", err)
	}

	geometry := fmt.Sprintf("%dx%d!", targetW, targetH)
	args := []string{
		"png:-",
		"-liquid-rescale", geometry,
		"-define", "delta-x=" + strconv.FormatFloat(deltaX, 'f', -1, 64),
		"-define", "rigidity=" + strconv.Itoa(rigidity),
		"png:-",
	}

	cmd := exec.CommandContext(ctx, c.binary(), args...)
	cmd.Stdin = &input
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, cerrors.WrapExecError(c.binary(), err, stderr.String())
	}

	out, err := png.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("decode carved frame: %w", err)
	}
	return out, nil
}
