package texture

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-texconv/bc"
)

// PixelFormat is a DXGI_FORMAT code as written into a DX10 texture container.
type PixelFormat uint32

// The DXGI codes produced by the registry.
const (
	R8G8B8A8_UNorm PixelFormat = 28
	R8G8B8A8_UInt  PixelFormat = 30
	BC3_UNorm_sRGB PixelFormat = 78
	BC7_UNorm_sRGB PixelFormat = 99
)

var (
	// ErrUnsupportedPixelFormat is returned when sizing a code the registry
	// never produces.
	ErrUnsupportedPixelFormat = errors.New("unsupported pixel format")
	// ErrDimensions signals a source or destination buffer whose size does
	// not match the requested dimensions.
	ErrDimensions = errors.New("dimension mismatch")
)

// String returns the DXGI name of the format.
func (p PixelFormat) String() string {
	switch p {
	case R8G8B8A8_UNorm:
		return "R8G8B8A8_UNorm"
	case R8G8B8A8_UInt:
		return "R8G8B8A8_UInt"
	case BC3_UNorm_sRGB:
		return "BC3_UNorm_sRGB"
	case BC7_UNorm_sRGB:
		return "BC7_UNorm_sRGB"
	default:
		return fmt.Sprintf("PixelFormat(%d)", uint32(p))
	}
}

// ContainerFormatFor returns the container pixel format for f, or zero for
// values outside the registry.
func ContainerFormatFor(f CompressionFormat) PixelFormat {
	switch f {
	case Bc7:
		return BC7_UNorm_sRGB
	case Dxt5:
		return BC3_UNorm_sRGB
	case Rgba8Unorm:
		return R8G8B8A8_UNorm
	case Rgba8:
		return R8G8B8A8_UInt
	default:
		return PixelFormat(0)
	}
}

// BlockSize returns the number of bytes per 4x4 block for block-compressed
// formats and zero otherwise.
func (p PixelFormat) BlockSize() int {
	switch p {
	case BC3_UNorm_sRGB, BC7_UNorm_sRGB:
		return bc.BlockBytes
	default:
		return 0
	}
}

// DataSize returns the byte length of a single mip level of a width x height
// 2D surface in pixel format p: no header, one array layer, no mip chain.
func DataSize(p PixelFormat, width, height int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, errors.Wrapf(ErrDimensions, "%dx%d", width, height)
	}
	switch p {
	case BC3_UNorm_sRGB, BC7_UNorm_sRGB:
		return bc.BlockCount(width, height) * p.BlockSize(), nil
	case R8G8B8A8_UNorm, R8G8B8A8_UInt:
		return width * height * 4, nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedPixelFormat, "%s", p)
	}
}
