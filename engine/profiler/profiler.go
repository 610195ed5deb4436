package profiler

import (
	"fmt"
	"log"
	"runtime"
	"strings"
	"time"
)

// SurfaceSample is one surface's cumulative frame counters, reported by the
// engine's sampler each interval. Rates are derived from the deltas between
// consecutive samples with the same name.
type SurfaceSample struct {
	Name    string
	Frames  uint64
	Skipped uint64
	Dropped uint64
}

// Profiler tracks loop rate, per-surface frame statistics, and memory
// statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	surfaceSampler func() []SurfaceSample
	lastSamples    map[string]SurfaceSample
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		frameCount:     0,
		lastTime:       time.Now(),
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
		lastSamples:    make(map[string]SurfaceSample),
	}
}

// SetSurfaceSampler registers a function that snapshots per-surface frame
// counters. When set, each interval report appends a per-surface line with
// presented fps and skip/drop counts since the previous report.
//
// Parameters:
//   - fn: sampler returning the current cumulative counters, or nil to disable
func (p *Profiler) SetSurfaceSampler(fn func() []SurfaceSample) {
	p.surfaceSampler = fn
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed >= p.updateInterval {
		fps := float64(p.frameCount) / elapsed.Seconds()

		runtime.ReadMemStats(&p.memStats)
		// Alloc: Bytes of allocated heap objects (live memory)
		// TotalAlloc: Cumulative bytes allocated for heap objects (increases forever, tracks churn)
		// Sys: Total bytes of memory obtained from the OS (actual process footprint)
		allocMB := float64(p.memStats.Alloc) / 1024 / 1024
		sysMB := float64(p.memStats.Sys) / 1024 / 1024

		// Calculate allocation rate (MB/sec)
		allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
		allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

		// Calculate GC pause stats (last pause and max recent pause)
		gcCount := p.memStats.NumGC
		var lastPauseUs, maxPauseUs uint64
		if gcCount > 0 {
			// PauseNs is a circular buffer of last 256 GC pauses
			lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

			// Find max pause since last tick
			startIdx := p.lastGCCount
			if gcCount-startIdx > 256 {
				startIdx = gcCount - 256
			}
			for i := startIdx; i < gcCount; i++ {
				pause := p.memStats.PauseNs[i%256] / 1000
				if pause > maxPauseUs {
					maxPauseUs = pause
				}
			}
		}

		log.Printf("[Profiler] FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
			fps, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)
		p.logSurfaces(elapsed)

		p.frameCount = 0
		p.lastTime = currentTime
		p.lastGCCount = gcCount
		p.lastTotalAlloc = p.memStats.TotalAlloc
		return true
	}

	return false
}

// logSurfaces reports each surface's presented rate and skip/drop deltas
// since the previous interval.
func (p *Profiler) logSurfaces(elapsed time.Duration) {
	if p.surfaceSampler == nil {
		return
	}
	samples := p.surfaceSampler()
	if len(samples) == 0 {
		return
	}

	var b strings.Builder
	for i, s := range samples {
		prev := p.lastSamples[s.Name]
		p.lastSamples[s.Name] = s

		if i > 0 {
			b.WriteString(" | ")
		}
		surfaceFPS := float64(s.Frames-prev.Frames) / elapsed.Seconds()
		fmt.Fprintf(&b, "%s: %.1f fps (skip %d, drop %d)",
			s.Name, surfaceFPS, s.Skipped-prev.Skipped, s.Dropped-prev.Dropped)
	}
	log.Printf("[Profiler] surfaces: %s", b.String())
}
