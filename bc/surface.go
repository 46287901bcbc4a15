// Package bc implements the block-compression routines that turn RGBA8
// surfaces into BC3 (DXT5) and BC7 block data.
//
// Both formats encode 4x4 pixel blocks into 16 bytes. The routines write into
// a caller-owned destination buffer and never retain the source or destination
// after returning.
package bc

import (
	"github.com/pkg/errors"
)

// BlockBytes is the size of one compressed 4x4 block for BC3 and BC7.
const BlockBytes = 16

// BlockDim is the edge length of a compression block in pixels.
const BlockDim = 4

var (
	// ErrInvalidSurface is returned when a surface's buffer does not match its
	// stride and height.
	ErrInvalidSurface = errors.New("invalid surface")
	// ErrShortDestination is returned when the destination cannot hold every block.
	ErrShortDestination = errors.New("destination buffer too small")
)

// Surface is a read-only view over RGBA8 pixels.
type Surface struct {
	// Width of the surface in pixels.
	Width int
	// Height of the surface in pixels.
	Height int
	// Stride is the number of bytes between the start of two rows.
	Stride int
	// Data holds Stride*Height bytes of RGBA8 pixels.
	Data []byte
}

// NewSurface wraps tightly packed RGBA8 pixels (stride = width*4) without copying.
func NewSurface(width, height int, data []byte) Surface {
	return Surface{
		Width:  width,
		Height: height,
		Stride: width * 4,
		Data:   data,
	}
}

// Validate checks that the surface describes its buffer exactly.
func (s Surface) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return errors.Wrapf(ErrInvalidSurface, "dimensions %dx%d", s.Width, s.Height)
	}
	if s.Stride < s.Width*4 {
		return errors.Wrapf(ErrInvalidSurface, "stride %d shorter than row of %d pixels", s.Stride, s.Width)
	}
	if len(s.Data) != s.Stride*s.Height {
		return errors.Wrapf(ErrInvalidSurface, "buffer holds %d bytes, want %d", len(s.Data), s.Stride*s.Height)
	}
	return nil
}

// DivideUp returns value/multiple rounded up.
func DivideUp(value, multiple int) int {
	return (value + multiple - 1) / multiple
}

// BlockCount returns the number of 4x4 blocks covering a width x height surface.
func BlockCount(width, height int) int {
	return DivideUp(width, BlockDim) * DivideUp(height, BlockDim)
}

// CompressedSize returns the number of bytes needed to hold the BC3 or BC7
// blocks of a width x height surface.
func CompressedSize(width, height int) int {
	return BlockCount(width, height) * BlockBytes
}

// block holds the 16 pixels of one 4x4 tile in row-major order.
type block [16][4]uint8

// loadBlock copies the tile at block coordinates (bx, by). Pixels past the
// right or bottom edge replicate the last column or row.
func (s Surface) loadBlock(bx, by int, blk *block) {
	for dy := 0; dy < BlockDim; dy++ {
		y := by*BlockDim + dy
		if y >= s.Height {
			y = s.Height - 1
		}
		row := s.Data[y*s.Stride:]
		for dx := 0; dx < BlockDim; dx++ {
			x := bx*BlockDim + dx
			if x >= s.Width {
				x = s.Width - 1
			}
			copy(blk[dy*BlockDim+dx][:], row[x*4:x*4+4])
		}
	}
}

// compressBlocksInto walks the surface block by block in row-major order and
// hands each tile to encode together with its 16-byte destination slot.
func compressBlocksInto(s Surface, dst []byte, encode func(blk *block, out []byte)) error {
	if err := s.Validate(); err != nil {
		return err
	}
	need := CompressedSize(s.Width, s.Height)
	if len(dst) < need {
		return errors.Wrapf(ErrShortDestination, "have %d bytes, need %d", len(dst), need)
	}

	var blk block
	blocksWide := DivideUp(s.Width, BlockDim)
	blocksHigh := DivideUp(s.Height, BlockDim)
	offset := 0
	for by := 0; by < blocksHigh; by++ {
		for bx := 0; bx < blocksWide; bx++ {
			s.loadBlock(bx, by, &blk)
			encode(&blk, dst[offset:offset+BlockBytes])
			offset += BlockBytes
		}
	}
	return nil
}
