package resample

import (
	"image"

	"github.com/disintegration/gift"
)

func init() {
	Register("gift", func() Resampler { return NewGift() })
}

// Gift resizes with gift's Lanczos filter, which works in straight alpha.
type Gift struct{}

// NewGift returns a gift-backed Lanczos resampler.
func NewGift() *Gift {
	return &Gift{}
}

// Name implements Resampler.
func (*Gift) Name() string { return "gift" }

// Resize implements Resampler.
func (*Gift) Resize(src *image.NRGBA, width, height int) (*image.NRGBA, error) {
	if err := validateSize(width, height); err != nil {
		return nil, err
	}
	g := gift.New(gift.Resize(width, height, gift.LanczosResampling))
	dst := image.NewNRGBA(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return dst, nil
}
