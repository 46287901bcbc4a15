package texture

import (
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-texconv/bc"
)

// Routine fills dst with the encoding of the surface.
type Routine func(s bc.Surface, dst []byte) error

func bc7Routine(s bc.Surface, dst []byte) error {
	return bc.CompressBC7Into(bc.AlphaUltraFastSettings(), s, dst)
}

func bc3Routine(s bc.Surface, dst []byte) error {
	return bc.CompressBC3Into(s, dst)
}

// identityRoutine copies the rows of the surface unchanged.
func identityRoutine(s bc.Surface, dst []byte) error {
	if err := s.Validate(); err != nil {
		return err
	}
	row := s.Width * 4
	for y := 0; y < s.Height; y++ {
		copy(dst[y*row:(y+1)*row], s.Data[y*s.Stride:])
	}
	return nil
}

// unknownFormatRoutine fails for out-of-range formats.
func unknownFormatRoutine(f CompressionFormat) Routine {
	return func(bc.Surface, []byte) error {
		return errors.Wrapf(ErrUnknownFormat, "%s", f)
	}
}

// CompressorFor returns the routine that produces format f.
func CompressorFor(f CompressionFormat) Routine {
	switch f {
	case Bc7:
		return bc7Routine
	case Dxt5:
		return bc3Routine
	case Rgba8, Rgba8Unorm:
		return identityRoutine
	default:
		return unknownFormatRoutine(f)
	}
}

// Compress runs routine over a width x height RGBA8 buffer and returns the
// block data sized for pixel format p. Both dimensions must be multiples of 4.
func Compress(width, height int, rgba []byte, p PixelFormat, routine Routine) (int, int, []byte, error) {
	if width%bc.BlockDim != 0 || height%bc.BlockDim != 0 {
		return 0, 0, nil, errors.Wrapf(ErrDimensions, "%dx%d is not block aligned", width, height)
	}
	if len(rgba) != width*height*4 {
		return 0, 0, nil, errors.Wrapf(ErrDimensions, "source holds %d bytes, want %d", len(rgba), width*height*4)
	}

	size, err := DataSize(p, width, height)
	if err != nil {
		return 0, 0, nil, err
	}
	dst := make([]byte, size)

	if err := routine(bc.NewSurface(width, height, rgba), dst); err != nil {
		return 0, 0, nil, errors.Wrapf(err, "compress %dx%d to %s", width, height, p)
	}
	return width, height, dst, nil
}
