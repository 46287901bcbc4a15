package resample

import (
	"image"

	"github.com/nfnt/resize"
)

func init() {
	Register("nfnt", func() Resampler { return NewLanczos() })
}

// Lanczos resizes with a 3-lobe Lanczos kernel.
type Lanczos struct{}

// NewLanczos returns the default Lanczos3 resampler.
func NewLanczos() *Lanczos {
	return &Lanczos{}
}

// Name implements Resampler.
func (*Lanczos) Name() string { return "nfnt" }

// Resize implements Resampler.
func (*Lanczos) Resize(src *image.NRGBA, width, height int) (*image.NRGBA, error) {
	if err := validateSize(width, height); err != nil {
		return nil, err
	}
	// The result is premultiplied; convert back to straight alpha.
	return ToNRGBA(resize.Resize(uint(width), uint(height), src, resize.Lanczos3)), nil
}
