//go:build vips

package resample

import (
	"image"

	"github.com/cshum/vipsgen/vips"
	"github.com/pkg/errors"
)

func init() {
	Register("vips", func() Resampler { return NewVips() })
}

// Vips resizes with libvips' Lanczos3 kernel. It is only built with the vips
// tag since it links against a local libvips.
type Vips struct{}

// NewVips returns a libvips-backed resampler.
func NewVips() *Vips {
	return &Vips{}
}

// Name implements Resampler.
func (*Vips) Name() string { return "vips" }

// Resize implements Resampler. The horizontal and vertical scales are set
// independently so the output matches width x height exactly.
func (*Vips) Resize(src *image.NRGBA, width, height int) (*image.NRGBA, error) {
	if err := validateSize(width, height); err != nil {
		return nil, err
	}
	src = ToNRGBA(src)
	srcW, srcH := src.Rect.Dx(), src.Rect.Dy()

	img, err := vips.NewImageFromMemory(src.Pix, srcW, srcH, 4)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load pixels into vips")
	}
	defer img.Close()

	err = img.Resize(float64(width)/float64(srcW), &vips.ResizeOptions{
		Kernel: vips.KernelLanczos3,
		Vscale: float64(height) / float64(srcH),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to resize image")
	}
	if img.Width() != width || img.Height() != height || img.Bands() != 4 {
		return nil, errors.Errorf("vips resize produced %dx%d with %d bands, want %dx%d RGBA",
			img.Width(), img.Height(), img.Bands(), width, height)
	}

	pix, err := img.RawsaveBuffer(nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to export resized pixels")
	}
	if len(pix) != width*height*4 {
		return nil, errors.Errorf("vips exported %d bytes, want %d", len(pix), width*height*4)
	}

	return &image.NRGBA{Pix: pix, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}, nil
}
