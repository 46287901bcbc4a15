// Package store persists texture payloads as a raw data file plus a JSON
// metadata sidecar, optionally supercompressed with zstd.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-texconv/texture"
)

// Supercompression schemes recorded in metadata.
const (
	SupercompressionNone = "none"
	SupercompressionZstd = "zstd"
)

const (
	dataExt     = ".bin"
	metadataExt = ".json"
)

// ErrCorrupt is returned when stored data does not match its metadata.
var ErrCorrupt = errors.New("stored payload does not match metadata")

// Metadata describes a stored payload.
type Metadata struct {
	Name             string                    `json:"name"`
	Width            uint32                    `json:"width"`
	Height           uint32                    `json:"height"`
	Format           texture.CompressionFormat `json:"format"`
	PixelFormat      string                    `json:"pixel_format"`
	DXGIFormat       uint32                    `json:"dxgi_format"`
	BlockCount       int                       `json:"block_count"`
	DataSize         int                       `json:"data_size"`
	Supercompression string                    `json:"supercompression"`
	StoredSize       int                       `json:"stored_size"`
}

// Options configures a Writer.
type Options struct {
	// Supercompress wraps payload data in a zstd frame.
	Supercompress bool
	// ZstdLevel is the zstd level (1-22); zero selects the library default.
	ZstdLevel int
}

// Writer writes payloads into a directory. It is safe for concurrent use.
type Writer struct {
	dir string
	enc *zstd.Encoder
}

// NewWriter creates dir if needed and returns a writer into it.
func NewWriter(dir string, opts Options) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", dir)
	}
	w := &Writer{dir: dir}
	if opts.Supercompress {
		level := zstd.SpeedDefault
		if opts.ZstdLevel > 0 {
			level = zstd.EncoderLevelFromZstd(opts.ZstdLevel)
		}
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create zstd encoder")
		}
		w.enc = enc
	}
	return w, nil
}

// Close releases the encoder.
func (w *Writer) Close() error {
	if w.enc != nil {
		return w.enc.Close()
	}
	return nil
}

// Write stores p as <name>.bin and <name>.json and returns the metadata.
func (w *Writer) Write(name string, p *texture.Payload) (*Metadata, error) {
	meta := &Metadata{
		Name:             name,
		Width:            p.Width,
		Height:           p.Height,
		Format:           p.Format,
		PixelFormat:      p.PixelFormat().String(),
		DXGIFormat:       uint32(p.PixelFormat()),
		BlockCount:       p.BlockCount(),
		DataSize:         len(p.Data),
		Supercompression: SupercompressionNone,
	}

	data := p.Data
	if w.enc != nil {
		data = w.enc.EncodeAll(p.Data, make([]byte, 0, len(p.Data)/2))
		meta.Supercompression = SupercompressionZstd
	}
	meta.StoredSize = len(data)

	if err := os.WriteFile(filepath.Join(w.dir, name+dataExt), data, 0o644); err != nil {
		return nil, errors.Wrapf(err, "failed to write payload %s", name)
	}
	encoded, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode metadata")
	}
	if err := os.WriteFile(filepath.Join(w.dir, name+metadataExt), encoded, 0o644); err != nil {
		return nil, errors.Wrapf(err, "failed to write metadata %s", name)
	}
	return meta, nil
}

// Read loads the payload stored under name in dir.
func Read(dir, name string) (*texture.Payload, *Metadata, error) {
	encoded, err := os.ReadFile(filepath.Join(dir, name+metadataExt))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to read metadata %s", name)
	}
	var meta Metadata
	if err := json.Unmarshal(encoded, &meta); err != nil {
		return nil, nil, errors.Wrapf(err, "failed to decode metadata %s", name)
	}

	data, err := os.ReadFile(filepath.Join(dir, name+dataExt))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to read payload %s", name)
	}

	switch meta.Supercompression {
	case SupercompressionNone, "":
	case SupercompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to create zstd decoder")
		}
		defer dec.Close()
		data, err = dec.DecodeAll(data, make([]byte, 0, meta.DataSize))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "failed to decompress payload %s", name)
		}
	default:
		return nil, nil, errors.Wrapf(ErrCorrupt, "unknown supercompression %q", meta.Supercompression)
	}

	if len(data) != meta.DataSize {
		return nil, nil, errors.Wrapf(ErrCorrupt, "%s holds %d bytes, metadata says %d", name, len(data), meta.DataSize)
	}

	return &texture.Payload{
		Width:  meta.Width,
		Height: meta.Height,
		Data:   data,
		Format: meta.Format,
	}, &meta, nil
}
