// Package pipeline converts encoded images into GPU texture payloads.
//
// A conversion decodes the input, returns small images as raw RGBA8 and
// otherwise aligns the image to the 4x4 block grid (resampling when needed)
// before block-compressing it into the requested format. Conversions share no
// state and may run concurrently.
package pipeline

import (
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-texconv/bc"
	"github.com/nvr-ai/go-texconv/profiler"
	"github.com/nvr-ai/go-texconv/resample"
	"github.com/nvr-ai/go-texconv/source"
	"github.com/nvr-ai/go-texconv/texture"
)

// ErrDecode marks failures to decode the input image.
var ErrDecode = errors.New("decode error")

// Converter runs conversions with a fixed configuration.
type Converter struct {
	config Config
}

// NewConverter creates a converter, filling unset config fields with defaults.
func NewConverter(config Config) *Converter {
	return &Converter{config: config.withDefaults()}
}

// Config returns the effective configuration.
func (c *Converter) Config() Config {
	return c.config
}

var defaultConverter = NewConverter(Config{})

// Convert converts buf with the default configuration. See Converter.Convert.
func Convert(buf []byte, formatName string) (*texture.Payload, error) {
	return defaultConverter.Convert(buf, formatName)
}

// Convert decodes buf and produces a texture payload.
//
// Images with fewer pixels than the passthrough threshold are returned as raw
// RGBA8 with their original dimensions regardless of formatName. Larger images
// are resampled to block-aligned dimensions if needed and compressed into the
// format named by formatName; unknown names select BC7.
//
// Arguments:
//   - buf: The encoded image (PNG, JPEG, GIF, BMP, TIFF or WebP).
//   - formatName: One of "bc7", "dxt5", "rgba8", "rgba8_unorm", case-insensitive.
//
// Returns:
//   - *texture.Payload: The produced dimensions, data and format.
//   - error: ErrDecode if the input is not a decodable image.
func (c *Converter) Convert(buf []byte, formatName string) (*texture.Payload, error) {
	defer c.config.Profiler.StartOperation(profiler.StageConvert)()

	stop := c.config.Profiler.StartOperation(profiler.StageDecode)
	img, err := source.Decode(buf)
	stop()
	if err != nil {
		return nil, errors.Wrapf(ErrDecode, "%v", err)
	}

	return c.ConvertImage(img, texture.FormatFromName(formatName))
}

// ConvertImage runs the size check, alignment and compression stages on an
// already decoded image.
func (c *Converter) ConvertImage(img *source.Image, format texture.CompressionFormat) (*texture.Payload, error) {
	width, height := img.Width(), img.Height()
	c.debugf("Decoded %s image: %dx%d", img.Format, width, height)

	var (
		payload *texture.Payload
		err     error
	)
	if img.Area() < c.config.PassthroughThreshold {
		payload = c.passthrough(img)
	} else {
		payload, err = c.compress(img, format)
		if err != nil {
			return nil, err
		}
	}

	c.config.Profiler.RecordMetric("payload_bytes", float64(len(payload.Data)))
	return payload, nil
}

// passthrough returns the RGBA8 pixels untouched, tagged Rgba8.
func (c *Converter) passthrough(img *source.Image) *texture.Payload {
	defer c.config.Profiler.StartOperation(profiler.StagePassthrough)()

	c.debugf("Image below %d pixels, skipping compression", c.config.PassthroughThreshold)
	return &texture.Payload{
		Width:  img.Width(),
		Height: img.Height(),
		Data:   img.ToRGBA8().Pix,
		Format: texture.Rgba8,
	}
}

func (c *Converter) compress(img *source.Image, format texture.CompressionFormat) (*texture.Payload, error) {
	stop := c.config.Profiler.StartOperation(profiler.StageResample)
	aligned, err := resample.Align(img.ToRGBA8(), c.config.Resampler)
	stop()
	if err != nil {
		return nil, errors.Wrap(err, "image alignment failed")
	}

	width, height := aligned.Rect.Dx(), aligned.Rect.Dy()
	if uint32(width) != img.Width() || uint32(height) != img.Height() {
		c.debugf("Resampled %dx%d to %dx%d with %s", img.Width(), img.Height(), width, height, c.config.Resampler.Name())
	}
	c.debugf("Block count: %d", bc.BlockCount(width, height))
	c.debugf("width %d - height %d", width, height)
	c.debugf("Compressing to %s...", format)

	stop = c.config.Profiler.StartOperation(profiler.StageCompress)
	w, h, data, err := texture.Compress(width, height, aligned.Pix, texture.ContainerFormatFor(format), texture.CompressorFor(format))
	stop()
	if err != nil {
		return nil, errors.Wrap(err, "surface compression failed")
	}
	c.debugf("  Done!")

	return &texture.Payload{
		Width:  uint32(w),
		Height: uint32(h),
		Data:   data,
		Format: format,
	}, nil
}

func (c *Converter) debugf(format string, args ...any) {
	if c.config.Debug {
		c.config.Logf("[DEBUG] "+format, args...)
	}
}
