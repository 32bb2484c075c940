// Package pixfmt materializes raw RGB24 decode/encode frames to and
// from Go's image.Image, the boundary between the native ffmpeg pipes
// and the in-process Image Operation and seam-carving step. RGB<->YUV
// conversion is ffmpeg's job (via -pix_fmt on the decode/encode
// commands, see internal/ffmpeg); this package never touches YUV.
package pixfmt

import (
	"image"

	"golang.org/x/image/draw"
)

// RGB24 is a packed RGB frame: 3 bytes per pixel, row-major, with an
// explicit stride so a frame can be a view into a larger decode
// buffer without a copy.
type RGB24 struct {
	Width, Height int
	Stride        int
	Pix           []byte
	PTS           int64
}

// NewRGB24 allocates a tightly-packed RGB24 frame of the given size.
func NewRGB24(width, height int) *RGB24 {
	return &RGB24{
		Width:  width,
		Height: height,
		Stride: width * 3,
		Pix:    make([]byte, width*height*3),
	}
}

// ToImage materializes an RGB24 frame as a Go image.Image, the form
// the seam-carving operation and format-specific encoders consume.
func (f *RGB24) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		srcRow := f.Pix[y*f.Stride : y*f.Stride+f.Width*3]
		dstRow := img.Pix[y*img.Stride : y*img.Stride+f.Width*4]
		for x := 0; x < f.Width; x++ {
			dstRow[x*4+0] = srcRow[x*3+0]
			dstRow[x*4+1] = srcRow[x*3+1]
			dstRow[x*4+2] = srcRow[x*3+2]
			dstRow[x*4+3] = 0xff
		}
	}
	return img
}

// FromImage packs a Go image.Image into a tightly-strided RGB24
// frame, dropping alpha. pts is carried through unchanged.
func FromImage(img image.Image, pts int64) *RGB24 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	f := NewRGB24(w, h)
	f.PTS = pts

	if rgba, ok := img.(*image.RGBA); ok && bounds.Min == (image.Point{}) {
		for y := 0; y < h; y++ {
			srcRow := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
			dstRow := f.Pix[y*f.Stride : y*f.Stride+w*3]
			for x := 0; x < w; x++ {
				dstRow[x*3+0] = srcRow[x*4+0]
				dstRow[x*3+1] = srcRow[x*4+1]
				dstRow[x*3+2] = srcRow[x*4+2]
			}
		}
		return f
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			off := y*f.Stride + x*3
			f.Pix[off+0] = byte(r >> 8)
			f.Pix[off+1] = byte(g >> 8)
			f.Pix[off+2] = byte(b >> 8)
		}
	}
	return f
}

// Resize scales src to exactly (width, height) using a bilinear
// filter, the uniform non-carving resampling step used for scale-back
// and for any target-size mismatch at the pipeline boundary.
func Resize(src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

