package resample

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidNRGBA(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func TestAlignUp(t *testing.T) {
	tests := []struct {
		value, want uint32
	}{
		{0, 0},
		{1, 4},
		{3, 4},
		{4, 4},
		{5, 8},
		{255, 256},
		{256, 256},
		{300, 300},
		{301, 304},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AlignUp(4, tt.value), "AlignUp(4, %d)", tt.value)
	}
	assert.Equal(t, uint32(16), AlignUp(16, 9))
}

func TestAlignUpIdempotent(t *testing.T) {
	for v := uint32(0); v < 1024; v++ {
		once := AlignUp(BlockAlignment, v)
		assert.Equal(t, once, AlignUp(BlockAlignment, once))
		assert.Zero(t, once%BlockAlignment)
		assert.GreaterOrEqual(t, once, v)
		assert.Less(t, once-v, uint32(BlockAlignment))
	}
}

func TestAlignedSize(t *testing.T) {
	w, h := AlignedSize(257, 255)
	assert.Equal(t, uint32(260), w)
	assert.Equal(t, uint32(256), h)
	assert.True(t, IsAligned(300, 300))
	assert.False(t, IsAligned(300, 301))
}

func TestAlignKeepsAlignedImage(t *testing.T) {
	img := solidNRGBA(8, 12, color.NRGBA{R: 10, A: 255})
	out, err := Align(img, NewLanczos())
	require.NoError(t, err)
	assert.Same(t, img, out)
}

func TestAlignResizesUnalignedImage(t *testing.T) {
	img := solidNRGBA(257, 255, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	out, err := Align(img, NewLanczos())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 260, 256), out.Bounds())
	assert.Len(t, out.Pix, 260*256*4)
}

type failingResampler struct{}

func (failingResampler) Name() string { return "failing" }

func (failingResampler) Resize(*image.NRGBA, int, int) (*image.NRGBA, error) {
	return nil, ErrInvalidSize
}

func TestAlignPropagatesResampleError(t *testing.T) {
	_, err := Align(solidNRGBA(5, 5, color.NRGBA{}), failingResampler{})
	assert.ErrorIs(t, err, ErrInvalidSize)
}
