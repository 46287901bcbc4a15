// Command texconv converts images into block-compressed GPU texture payloads.
//
// Usage:
//
//	texconv -input textures/src -format bc7 -output textures/out
//
// Each input file, e.g. wood.png, produces wood.png.bin holding the payload and
// wood.png.json holding its dimensions and format.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/nvr-ai/go-texconv/config"
	"github.com/nvr-ai/go-texconv/pipeline"
	"github.com/nvr-ai/go-texconv/profiler"
	"github.com/nvr-ai/go-texconv/resample"
	"github.com/nvr-ai/go-texconv/store"
	"github.com/nvr-ai/go-texconv/texture"
	"github.com/nvr-ai/go-texconv/util"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to a YAML or JSON configuration file")
		input      = flag.String("input", "", "Image file or directory of images to convert")
		format     = flag.String("format", texture.DefaultFormat.String(), "Compression format: bc7, dxt5, rgba8, rgba8_unorm")
		strict     = flag.Bool("strict", false, "Reject unknown format names instead of defaulting to bc7")
		outputDir  = flag.String("output", "textures", "Output directory for payloads and metadata")
		threshold  = flag.Uint64("threshold", pipeline.DefaultPassthroughThreshold, "Pixel area below which images are stored uncompressed (>= 1; 1 compresses everything)")
		resampler  = flag.String("resampler", resample.DefaultBackend, "Resampler backend: "+strings.Join(resample.Backends(), ", "))
		workers    = flag.Int("workers", 0, "Concurrent conversions (0 = number of CPUs)")
		zstdOut    = flag.Bool("zstd", false, "Supercompress payloads with zstd")
		zstdLevel  = flag.Int("zstd-level", 3, "zstd compression level (1-22)")
		debug      = flag.Bool("debug", false, "Log pipeline progress")
		profile    = flag.Bool("profile", false, "Print a stage timing report")
		timeout    = flag.Duration("timeout", 0, "Stop starting new conversions after this duration (0 = no limit)")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("Input path is required (-input)")
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	// Explicit flags override the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Format = *format
		case "strict":
			cfg.StrictFormat = *strict
		case "output":
			cfg.OutputDir = *outputDir
		case "threshold":
			cfg.PassthroughThreshold = *threshold
		case "resampler":
			cfg.Resampler = *resampler
		case "workers":
			cfg.Workers = *workers
		case "zstd":
			cfg.Supercompress = *zstdOut
		case "zstd-level":
			cfg.ZstdLevel = *zstdLevel
		case "debug":
			cfg.Debug = *debug
		case "profile":
			cfg.Profile = *profile
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	files, err := util.LoadImageFiles(*input)
	if err != nil {
		log.Fatalf("Failed to load input: %v", err)
	}
	if len(files) == 0 {
		log.Fatalf("No supported images found in %s", *input)
	}

	pipelineConfig, err := cfg.PipelineConfig()
	if err != nil {
		log.Fatal(err)
	}
	var prof *profiler.Profiler
	if cfg.Profile {
		prof = profiler.New(profiler.Options{})
		pipelineConfig.Profiler = prof
	}
	converter := pipeline.NewConverter(pipelineConfig)

	writer, err := store.NewWriter(cfg.OutputDir, store.Options{
		Supercompress: cfg.Supercompress,
		ZstdLevel:     cfg.ZstdLevel,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer writer.Close()

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	jobs := make([]pipeline.Job, len(files))
	for i, file := range files {
		jobs[i] = pipeline.Job{Name: file.Name, Data: file.Data, Format: cfg.Format}
	}

	start := time.Now()
	failed := 0
	for _, result := range converter.ConvertBatch(ctx, jobs, cfg.Workers) {
		if result.Err != nil {
			fmt.Printf("FAIL %s: %v\n", result.Name, result.Err)
			failed++
			continue
		}
		meta, err := writer.Write(result.Name, result.Payload)
		if err != nil {
			fmt.Printf("FAIL %s: %v\n", result.Name, err)
			failed++
			continue
		}
		fmt.Printf("OK   %s: %dx%d %s, %s", meta.Name, meta.Width, meta.Height, meta.Format, profiler.FormatBytes(uint64(meta.DataSize)))
		if meta.Supercompression != store.SupercompressionNone {
			fmt.Printf(" (%s %s)", meta.Supercompression, profiler.FormatBytes(uint64(meta.StoredSize)))
		}
		fmt.Printf("\n")
	}

	fmt.Printf("Converted %d/%d images in %v\n", len(files)-failed, len(files), time.Since(start).Truncate(time.Millisecond))
	if prof != nil {
		prof.Report(os.Stdout)
	}
	if failed > 0 {
		writer.Close()
		os.Exit(1)
	}
}
