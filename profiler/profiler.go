// Package profiler records per-stage timings and size metrics for texture
// conversions and renders them as a report.
package profiler

import (
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"
	"time"
)

// Stage names recorded by the conversion pipeline.
const (
	StageDecode      = "decode"
	StageResample    = "resample"
	StageCompress    = "compress"
	StagePassthrough = "passthrough"
	StageConvert     = "convert"
)

// Profiler collects operation timings and custom metrics. It is safe for
// concurrent use by multiple conversions.
type Profiler struct {
	mu         sync.RWMutex
	startTime  time.Time
	maxSamples int

	customMetrics  map[string]*MetricTracker
	operationTimes map[string]*TimeTracker
}

// MetricTracker tracks statistics for a custom metric.
type MetricTracker struct {
	values []float64
	sum    float64
	min    float64
	max    float64
	count  int64
}

// TimeTracker tracks operation timing statistics.
type TimeTracker struct {
	durations []time.Duration
	totalTime time.Duration
	minTime   time.Duration
	maxTime   time.Duration
	count     int64
}

// Options configures the profiler.
type Options struct {
	// MaxSamples is the number of most recent samples kept per tracker (default: 600).
	MaxSamples int
}

// OperationStats is a snapshot of one operation's timings.
type OperationStats struct {
	Name  string
	Count int64
	Avg   time.Duration
	Min   time.Duration
	Max   time.Duration
	Total time.Duration
}

// New creates a profiler with the given options.
//
// Arguments:
// - opts: Configuration options for the profiler
//
// Returns:
// - A configured Profiler instance
func New(opts Options) *Profiler {
	if opts.MaxSamples == 0 {
		opts.MaxSamples = 600
	}
	return &Profiler{
		startTime:      time.Now(),
		maxSamples:     opts.MaxSamples,
		customMetrics:  make(map[string]*MetricTracker),
		operationTimes: make(map[string]*TimeTracker),
	}
}

// StartOperation begins timing an operation. A nil profiler returns a no-op
// so callers need not check whether profiling is enabled.
//
// Arguments:
// - name: The name of the operation to track
//
// Returns:
// - A function to call when the operation completes
func (p *Profiler) StartOperation(name string) func() {
	if p == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		p.recordOperationTime(name, time.Since(start))
	}
}

func (p *Profiler) recordOperationTime(name string, duration time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tracker, exists := p.operationTimes[name]
	if !exists {
		tracker = &TimeTracker{minTime: duration, maxTime: duration}
		p.operationTimes[name] = tracker
	}

	tracker.durations = append(tracker.durations, duration)
	tracker.totalTime += duration
	if len(tracker.durations) > p.maxSamples {
		// Remove oldest sample
		tracker.totalTime -= tracker.durations[0]
		tracker.durations = tracker.durations[1:]
	}
	tracker.count++

	if duration < tracker.minTime {
		tracker.minTime = duration
	}
	if duration > tracker.maxTime {
		tracker.maxTime = duration
	}
}

// RecordMetric records a value for a named metric. Safe on a nil profiler.
//
// Arguments:
// - name: The name of the metric
// - value: The metric value to record
func (p *Profiler) RecordMetric(name string, value float64) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	tracker, exists := p.customMetrics[name]
	if !exists {
		tracker = &MetricTracker{min: value, max: value}
		p.customMetrics[name] = tracker
	}

	tracker.values = append(tracker.values, value)
	tracker.sum += value
	if len(tracker.values) > p.maxSamples {
		tracker.sum -= tracker.values[0]
		tracker.values = tracker.values[1:]
	}
	tracker.count++

	if value < tracker.min {
		tracker.min = value
	}
	if value > tracker.max {
		tracker.max = value
	}
}

// Operation returns the timing snapshot for name.
func (p *Profiler) Operation(name string) (OperationStats, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	tracker, ok := p.operationTimes[name]
	if !ok || len(tracker.durations) == 0 {
		return OperationStats{}, false
	}
	return OperationStats{
		Name:  name,
		Count: tracker.count,
		Avg:   tracker.totalTime / time.Duration(len(tracker.durations)),
		Min:   tracker.minTime,
		Max:   tracker.maxTime,
		Total: tracker.totalTime,
	}, true
}

// Report writes operation timings, custom metrics and memory usage to w.
func (p *Profiler) Report(w io.Writer) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	fmt.Fprintf(w, "CONVERSION PROFILE - uptime %v\n", time.Since(p.startTime).Truncate(time.Millisecond))

	if len(p.operationTimes) > 0 {
		fmt.Fprintf(w, "\nOPERATION TIMINGS:\n")
		for _, name := range sortedKeys(p.operationTimes) {
			tracker := p.operationTimes[name]
			if len(tracker.durations) == 0 {
				continue
			}
			avgTime := tracker.totalTime / time.Duration(len(tracker.durations))
			fmt.Fprintf(w, "  %s: avg=%v, min=%v, max=%v, count=%d\n",
				name, avgTime.Truncate(time.Microsecond),
				tracker.minTime.Truncate(time.Microsecond),
				tracker.maxTime.Truncate(time.Microsecond),
				tracker.count)
		}
	}

	if len(p.customMetrics) > 0 {
		fmt.Fprintf(w, "\nCUSTOM METRICS:\n")
		for _, name := range sortedKeys(p.customMetrics) {
			tracker := p.customMetrics[name]
			if len(tracker.values) == 0 {
				continue
			}
			avg := tracker.sum / float64(len(tracker.values))
			fmt.Fprintf(w, "  %s: avg=%.2f, min=%.2f, max=%.2f, samples=%d\n",
				name, avg, tracker.min, tracker.max, tracker.count)
		}
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	fmt.Fprintf(w, "\nMEMORY USAGE:\n")
	fmt.Fprintf(w, "  Total Alloc: %s\n", FormatBytes(mem.TotalAlloc))
	fmt.Fprintf(w, "  Heap Alloc: %s\n", FormatBytes(mem.HeapAlloc))
	fmt.Fprintf(w, "  GC Cycles: %d\n", mem.NumGC)
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatBytes formats byte counts in human-readable format.
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
