// Package texture maps format names to compression formats and GPU pixel
// formats, sizes block-data payloads and runs the surface compressor.
package texture

import (
	"strings"

	"github.com/pkg/errors"
)

// CompressionFormat is the closed set of payload encodings a conversion can
// produce.
type CompressionFormat int

const (
	// Rgba8 is raw RGBA8 with unsigned-integer channels.
	Rgba8 CompressionFormat = iota
	// Rgba8Unorm is raw RGBA8 with normalized channels.
	Rgba8Unorm
	// Dxt5 is BC3 block compression with interpolated alpha.
	Dxt5
	// Bc7 is BC7 block compression, the highest-quality format.
	Bc7
)

// DefaultFormat is selected for any unrecognized format name.
const DefaultFormat = Bc7

// ErrUnknownFormat is returned by ParseFormat for names outside the registry.
var ErrUnknownFormat = errors.New("unknown compression format")

var formatNames = map[string]CompressionFormat{
	"bc7":         Bc7,
	"rgba8":       Rgba8,
	"rgba8_unorm": Rgba8Unorm,
	"dxt5":        Dxt5,
}

// Formats lists every compression format in declaration order.
func Formats() []CompressionFormat {
	return []CompressionFormat{Rgba8, Rgba8Unorm, Dxt5, Bc7}
}

// String returns the canonical lower-case name accepted by FormatFromName.
func (f CompressionFormat) String() string {
	switch f {
	case Rgba8:
		return "rgba8"
	case Rgba8Unorm:
		return "rgba8_unorm"
	case Dxt5:
		return "dxt5"
	case Bc7:
		return "bc7"
	default:
		return "unknown"
	}
}

// IsBlockCompressed reports whether the format encodes 4x4 blocks.
func (f CompressionFormat) IsBlockCompressed() bool {
	switch f {
	case Dxt5, Bc7:
		return true
	default:
		return false
	}
}

// FormatFromName looks up a format name case-insensitively. Unrecognized
// names, including the empty string, select DefaultFormat.
func FormatFromName(name string) CompressionFormat {
	if f, ok := formatNames[strings.ToLower(name)]; ok {
		return f
	}
	return DefaultFormat
}

// ParseFormat is the strict counterpart of FormatFromName: unrecognized names
// are reported instead of defaulting.
func ParseFormat(name string) (CompressionFormat, error) {
	if f, ok := formatNames[strings.ToLower(name)]; ok {
		return f, nil
	}
	return DefaultFormat, errors.Wrapf(ErrUnknownFormat, "%q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (f CompressionFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using the strict lookup.
func (f *CompressionFormat) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
