package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-texconv/pipeline"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "bc7", cfg.Format)
	assert.Equal(t, uint64(pipeline.DefaultPassthroughThreshold), cfg.PassthroughThreshold)
	assert.Equal(t, "nfnt", cfg.Resampler)
	require.NoError(t, cfg.Validate())
}

func TestParseYAML(t *testing.T) {
	cfg, err := Parse([]byte(`
format: dxt5
passthrough_threshold: 1024
resampler: gift
workers: 4
output_dir: out
supercompress: true
zstd_level: 9
debug: true
`))
	require.NoError(t, err)
	assert.Equal(t, "dxt5", cfg.Format)
	assert.Equal(t, uint64(1024), cfg.PassthroughThreshold)
	assert.Equal(t, "gift", cfg.Resampler)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.True(t, cfg.Supercompress)
	assert.Equal(t, 9, cfg.ZstdLevel)
	assert.True(t, cfg.Debug)
}

func TestParseJSONKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`{"format": "rgba8", "profile": true}`))
	require.NoError(t, err)
	assert.Equal(t, "rgba8", cfg.Format)
	assert.True(t, cfg.Profile)
	assert.Equal(t, "nfnt", cfg.Resampler)
	assert.Equal(t, "textures", cfg.OutputDir)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown resampler", "resampler: bicubic"},
		{"negative workers", "workers: -1"},
		{"zero threshold", "passthrough_threshold: 0"},
		{"zstd level", "supercompress: true\nzstd_level: 40"},
		{"strict format", "strict_format: true\nformat: bc6h"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := Parse([]byte("format: [unterminated"))
	assert.Error(t, err)
}

func TestPermissiveFormatAccepted(t *testing.T) {
	cfg, err := Parse([]byte("format: bc6h"))
	require.NoError(t, err)
	assert.Equal(t, "bc6h", cfg.Format)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texconv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: dxt5\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dxt5", cfg.Format)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPipelineConfig(t *testing.T) {
	cfg := Default()
	cfg.Resampler = "gift"
	cfg.Debug = true

	pc, err := cfg.PipelineConfig()
	require.NoError(t, err)
	assert.Equal(t, "gift", pc.Resampler.Name())
	assert.True(t, pc.Debug)
	assert.Equal(t, cfg.PassthroughThreshold, pc.PassthroughThreshold)
}
