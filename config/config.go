// Package config loads texconv settings from YAML or JSON files.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nvr-ai/go-texconv/pipeline"
	"github.com/nvr-ai/go-texconv/resample"
	"github.com/nvr-ai/go-texconv/texture"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// File is the on-disk configuration of the texconv command.
type File struct {
	// Format is the requested compression format name.
	Format string `json:"format" yaml:"format"`
	// StrictFormat rejects unknown format names instead of defaulting to bc7.
	StrictFormat bool `json:"strict_format" yaml:"strict_format"`
	// PassthroughThreshold is the pixel area below which images stay raw.
	// It must be at least 1; 1 compresses every image.
	PassthroughThreshold uint64 `json:"passthrough_threshold" yaml:"passthrough_threshold"`
	// Resampler names the backend used to align unaligned images.
	Resampler string `json:"resampler" yaml:"resampler"`
	// Workers is the number of concurrent conversions.
	Workers int `json:"workers" yaml:"workers"`
	// OutputDir receives payloads and metadata.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
	// Supercompress wraps payloads in zstd.
	Supercompress bool `json:"supercompress" yaml:"supercompress"`
	// ZstdLevel is the zstd compression level (1-22) when Supercompress is set.
	ZstdLevel int `json:"zstd_level" yaml:"zstd_level"`
	// Debug enables pipeline progress logging.
	Debug bool `json:"debug" yaml:"debug"`
	// Profile prints a stage timing report after the run.
	Profile bool `json:"profile" yaml:"profile"`
}

// Default returns the configuration used when no file is given.
func Default() *File {
	return &File{
		Format:               texture.DefaultFormat.String(),
		PassthroughThreshold: pipeline.DefaultPassthroughThreshold,
		Resampler:            resample.DefaultBackend,
		Workers:              0,
		OutputDir:            "textures",
		ZstdLevel:            3,
	}
}

// Load reads path over the defaults. YAML is a superset of JSON, so both
// encodings are accepted.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}
	return Parse(data)
}

// Parse decodes data over the defaults and validates the result.
func Parse(data []byte) (*File, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges and names.
func (f *File) Validate() error {
	if f.StrictFormat {
		if _, err := texture.ParseFormat(f.Format); err != nil {
			return errors.Wrap(ErrInvalidConfig, err.Error())
		}
	}
	if _, err := resample.New(f.Resampler); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if f.PassthroughThreshold == 0 {
		return errors.Wrap(ErrInvalidConfig, "passthrough_threshold must be >= 1")
	}
	if f.Workers < 0 {
		return errors.Wrapf(ErrInvalidConfig, "workers must be >= 0, got %d", f.Workers)
	}
	if f.Supercompress && (f.ZstdLevel < 1 || f.ZstdLevel > 22) {
		return errors.Wrapf(ErrInvalidConfig, "zstd_level must be 1-22, got %d", f.ZstdLevel)
	}
	return nil
}

// PipelineConfig builds the converter configuration described by f.
func (f *File) PipelineConfig() (pipeline.Config, error) {
	r, err := resample.New(f.Resampler)
	if err != nil {
		return pipeline.Config{}, err
	}
	return pipeline.Config{
		PassthroughThreshold: f.PassthroughThreshold,
		Resampler:            r,
		Debug:                f.Debug,
	}, nil
}
