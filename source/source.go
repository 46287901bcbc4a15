// Package source decodes encoded images into straight-alpha RGBA8 pixels.
//
// PNG, JPEG and GIF use the standard library decoders, BMP and TIFF come from
// golang.org/x/image and WebP from chai2010/webp. The format is sniffed from
// the leading bytes; file extensions are never consulted.
package source

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/chai2010/webp"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/nvr-ai/go-texconv/resample"
)

var (
	// ErrEmpty is returned for a zero-length input buffer.
	ErrEmpty = errors.New("empty image data")
	// ErrZeroSize is returned for images with no pixels.
	ErrZeroSize = errors.New("image has zero width or height")
)

// Image is a decoded image with its detected container format.
type Image struct {
	// Format is the name the decoder registered, e.g. "png" or "webp".
	Format string
	img    image.Image
}

// Decode sniffs and decodes buf. Unrecognized, truncated or corrupt data is
// reported as an error.
func Decode(buf []byte) (*Image, error) {
	if len(buf) == 0 {
		return nil, ErrEmpty
	}
	img, format, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode image")
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, errors.Wrapf(ErrZeroSize, "%s %dx%d", format, b.Dx(), b.Dy())
	}
	return &Image{Format: format, img: img}, nil
}

// FromImage wraps an already decoded image.
func FromImage(img image.Image) *Image {
	return &Image{Format: "memory", img: img}
}

// Width returns the width in pixels.
func (i *Image) Width() uint32 {
	return uint32(i.img.Bounds().Dx())
}

// Height returns the height in pixels.
func (i *Image) Height() uint32 {
	return uint32(i.img.Bounds().Dy())
}

// Area returns width*height.
func (i *Image) Area() uint64 {
	return uint64(i.Width()) * uint64(i.Height())
}

// ToRGBA8 returns the pixels as straight-alpha RGBA8 with stride width*4 and
// origin (0, 0). Images already in that layout are returned without copying.
func (i *Image) ToRGBA8() *image.NRGBA {
	return resample.ToNRGBA(i.img)
}
