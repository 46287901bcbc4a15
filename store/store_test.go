package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-texconv/texture"
)

func testPayload() *texture.Payload {
	data := make([]byte, 64*64)
	for i := range data {
		data[i] = byte(i % 7)
	}
	return &texture.Payload{Width: 64, Height: 64, Data: data, Format: texture.Bc7}
}

func TestWriteRead(t *testing.T) {
	for _, opts := range []Options{{}, {Supercompress: true, ZstdLevel: 19}, {Supercompress: true}} {
		dir := t.TempDir()
		w, err := NewWriter(dir, opts)
		require.NoError(t, err)

		p := testPayload()
		meta, err := w.Write("brick", p)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		assert.Equal(t, "BC7_UNorm_sRGB", meta.PixelFormat)
		assert.Equal(t, uint32(99), meta.DXGIFormat)
		assert.Equal(t, 256, meta.BlockCount)
		assert.Equal(t, len(p.Data), meta.DataSize)
		if opts.Supercompress {
			assert.Equal(t, SupercompressionZstd, meta.Supercompression)
			assert.Less(t, meta.StoredSize, meta.DataSize)
		} else {
			assert.Equal(t, SupercompressionNone, meta.Supercompression)
			assert.Equal(t, meta.DataSize, meta.StoredSize)
		}

		got, gotMeta, err := Read(dir, "brick")
		require.NoError(t, err)
		assert.Equal(t, p, got)
		assert.Equal(t, meta, gotMeta)
	}
}

func TestWriteKeepsNamesWithExtensionsApart(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, Options{})
	require.NoError(t, err)

	png := testPayload()
	jpg := &texture.Payload{Width: 4, Height: 4, Data: make([]byte, 64), Format: texture.Rgba8}
	_, err = w.Write("wood.png", png)
	require.NoError(t, err)
	_, err = w.Write("wood.jpg", jpg)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	for _, name := range []string{"wood.png.bin", "wood.png.json", "wood.jpg.bin", "wood.jpg.json"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	got, _, err := Read(dir, "wood.png")
	require.NoError(t, err)
	assert.Equal(t, png, got)
	got, _, err = Read(dir, "wood.jpg")
	require.NoError(t, err)
	assert.Equal(t, jpg, got)
}

func TestMetadataJSON(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, Options{})
	require.NoError(t, err)
	_, err = w.Write("icon", &texture.Payload{Width: 2, Height: 2, Data: make([]byte, 16), Format: texture.Rgba8})
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "icon.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"format": "rgba8"`)
	assert.Contains(t, string(raw), `"pixel_format": "R8G8B8A8_UInt"`)
}

func TestReadCorrupt(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, Options{})
	require.NoError(t, err)
	_, err = w.Write("tile", testPayload())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "tile.bin"), []byte{1, 2, 3}, 0o644))
	_, _, err = Read(dir, "tile")
	assert.ErrorIs(t, err, ErrCorrupt)

	_, _, err = Read(dir, "missing")
	assert.Error(t, err)
}
