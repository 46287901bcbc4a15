//go:build vips

package resample

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVipsResize(t *testing.T) {
	r, err := New("vips")
	require.NoError(t, err)

	src := solidNRGBA(257, 255, color.NRGBA{R: 10, G: 20, B: 30, A: 128})
	out, err := r.Resize(src, 260, 256)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 260, 256), out.Bounds())
	c := out.NRGBAAt(130, 128)
	assert.InDelta(t, 10, c.R, 2)
	assert.InDelta(t, 128, c.A, 2)
}

func TestVipsRejectsInvalidSize(t *testing.T) {
	_, err := NewVips().Resize(solidNRGBA(8, 8, color.NRGBA{A: 255}), 0, 8)
	assert.ErrorIs(t, err, ErrInvalidSize)
}
