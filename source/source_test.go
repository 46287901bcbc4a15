package source

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 7, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodePNG(t *testing.T) {
	src := testImage(20, 10)
	img, err := Decode(encodePNG(t, src))
	require.NoError(t, err)

	assert.Equal(t, "png", img.Format)
	assert.Equal(t, uint32(20), img.Width())
	assert.Equal(t, uint32(10), img.Height())
	assert.Equal(t, uint64(200), img.Area())
	assert.Equal(t, src.Pix, img.ToRGBA8().Pix)
}

func TestDecodeKeepsStraightAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 128, B: 0, A: 64})

	img, err := Decode(encodePNG(t, src))
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, G: 128, B: 0, A: 64}, img.ToRGBA8().NRGBAAt(0, 0))
}

func TestDecodeOtherFormats(t *testing.T) {
	src := testImage(16, 16)

	var jpg bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpg, src, &jpeg.Options{Quality: 90}))
	var bm bytes.Buffer
	require.NoError(t, bmp.Encode(&bm, src))
	var wp bytes.Buffer
	require.NoError(t, webp.Encode(&wp, src, &webp.Options{Lossless: true}))

	tests := []struct {
		format string
		data   []byte
	}{
		{"jpeg", jpg.Bytes()},
		{"bmp", bm.Bytes()},
		{"webp", wp.Bytes()},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			img, err := Decode(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.format, img.Format)
			rgba := img.ToRGBA8()
			assert.Equal(t, image.Rect(0, 0, 16, 16), rgba.Bounds())
			assert.Len(t, rgba.Pix, 16*16*4)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(nil)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Decode([]byte("not an image"))
	assert.Error(t, err)

	truncated := encodePNG(t, testImage(32, 32))
	_, err = Decode(truncated[:len(truncated)/2])
	assert.Error(t, err)
}

func TestToRGBA8Conversions(t *testing.T) {
	n := testImage(4, 4)
	assert.Same(t, n, FromImage(n).ToRGBA8())

	sub := n.SubImage(image.Rect(1, 1, 3, 3)).(*image.NRGBA)
	out := FromImage(sub).ToRGBA8()
	assert.Equal(t, image.Rect(0, 0, 2, 2), out.Bounds())
	assert.Equal(t, n.NRGBAAt(1, 1), out.NRGBAAt(0, 0))

	gray := image.NewGray(image.Rect(0, 0, 3, 3))
	gray.SetGray(0, 0, color.Gray{Y: 200})
	assert.Equal(t, color.NRGBA{R: 200, G: 200, B: 200, A: 255}, FromImage(gray).ToRGBA8().NRGBAAt(0, 0))
}
