// Package resample aligns image dimensions to the block-compression grid and
// resizes pixel data to the aligned size.
package resample

import (
	"image"

	"github.com/pkg/errors"
)

// BlockAlignment is the granularity required by 4x4 block compression.
const BlockAlignment = 4

// ErrInvalidSize is returned for non-positive target dimensions.
var ErrInvalidSize = errors.New("invalid resample size")

// AlignUp rounds value up to the next multiple of multiple, which must be a
// power of two.
func AlignUp(multiple, value uint32) uint32 {
	return (value + multiple - 1) &^ (multiple - 1)
}

// AlignedSize returns the block-aligned working dimensions for a source of
// width x height.
func AlignedSize(width, height uint32) (uint32, uint32) {
	return AlignUp(BlockAlignment, width), AlignUp(BlockAlignment, height)
}

// IsAligned reports whether both dimensions already sit on the block grid.
func IsAligned(width, height uint32) bool {
	w, h := AlignedSize(width, height)
	return w == width && h == height
}

// Align returns img resized to its block-aligned dimensions. An image that is
// already aligned is returned as is, without copying. The aligned canvas is a
// resampled version of the whole image, never a padded one.
func Align(img *image.NRGBA, r Resampler) (*image.NRGBA, error) {
	b := img.Bounds()
	width, height := uint32(b.Dx()), uint32(b.Dy())
	if IsAligned(width, height) {
		return img, nil
	}
	w, h := AlignedSize(width, height)
	resized, err := r.Resize(img, int(w), int(h))
	if err != nil {
		return nil, errors.Wrapf(err, "align %dx%d to %dx%d", width, height, w, h)
	}
	return resized, nil
}
