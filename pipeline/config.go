package pipeline

import (
	"log"

	"github.com/nvr-ai/go-texconv/profiler"
	"github.com/nvr-ai/go-texconv/resample"
)

// DefaultPassthroughThreshold is the pixel area below which images are
// returned as raw RGBA8 instead of being compressed.
const DefaultPassthroughThreshold = 256 * 256

// Config configures a Converter.
type Config struct {
	// PassthroughThreshold is the pixel area below which compression is
	// skipped. Zero selects DefaultPassthroughThreshold; 1 compresses every
	// non-empty image.
	PassthroughThreshold uint64
	// Resampler resizes images whose dimensions are not block aligned.
	// Nil selects the Lanczos3 default.
	Resampler resample.Resampler
	// Debug enables progress logging through Logf.
	Debug bool
	// Logf receives debug output. Nil selects log.Printf.
	Logf func(format string, args ...any)
	// Profiler, when set, records per-stage timings and payload metrics.
	Profiler *profiler.Profiler
}

// DefaultConfig returns the configuration used by the package-level Convert.
func DefaultConfig() Config {
	return Config{
		PassthroughThreshold: DefaultPassthroughThreshold,
		Resampler:            resample.NewLanczos(),
		Logf:                 log.Printf,
	}
}

func (c Config) withDefaults() Config {
	if c.PassthroughThreshold == 0 {
		c.PassthroughThreshold = DefaultPassthroughThreshold
	}
	if c.Resampler == nil {
		c.Resampler = resample.NewLanczos()
	}
	if c.Logf == nil {
		c.Logf = log.Printf
	}
	return c
}
