package pipeline

import (
	"context"
	"runtime"
	"sync"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-texconv/texture"
)

// Job is one independent conversion request.
type Job struct {
	// Name identifies the job in results, typically the source path.
	Name string
	// Data is the encoded image.
	Data []byte
	// Format is the requested compression format name.
	Format string
}

// Result pairs a job with its outcome.
type Result struct {
	Name    string
	Payload *texture.Payload
	Err     error
}

// ConvertBatch converts jobs on a pool of workers and returns results in job
// order. Conversions themselves cannot be interrupted; once ctx is done,
// jobs that have not started fail with the context error.
//
// Arguments:
//   - ctx: Bounds the batch; checked before each job starts.
//   - jobs: The conversions to run.
//   - workers: Pool size; values <= 0 select runtime.NumCPU().
//
// Returns:
//   - []Result: One result per job, in the same order.
func (c *Converter) ConvertBatch(ctx context.Context, jobs []Job, workers int) []Result {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	results := make([]Result, len(jobs))
	indices := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				job := jobs[i]
				results[i].Name = job.Name
				if err := ctx.Err(); err != nil {
					results[i].Err = errors.Wrapf(err, "%s not started", job.Name)
					continue
				}
				payload, err := c.Convert(job.Data, job.Format)
				if err != nil {
					results[i].Err = errors.Wrap(err, job.Name)
					continue
				}
				results[i].Payload = payload
			}
		}()
	}

	for i := range jobs {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return results
}
