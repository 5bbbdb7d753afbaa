package profiler

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-life/engine/renderer"
)

// Stats is one interval of frame statistics.
type Stats struct {
	Elapsed   time.Duration
	Presented int
	Recovered int
	Skipped   int
	FPS       float64
	HeapMB    float64
	GCCount   uint32
}

// Profiler counts frame outcomes and logs them at debug level once per interval.
type Profiler struct {
	logger         *slog.Logger
	updateInterval time.Duration
	now            func() time.Time

	lastTime time.Time
	counts   map[renderer.FrameOutcome]int
	memStats runtime.MemStats
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Parameters:
//   - logger: destination of the statistics
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(logger *slog.Logger) *Profiler {
	p := &Profiler{
		logger:         logger,
		updateInterval: time.Second,
		now:            time.Now,
		counts:         make(map[renderer.FrameOutcome]int),
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame with the frame's outcome.
// Logs statistics when the update interval has elapsed.
//
// Parameters:
//   - outcome: the result of the frame
//
// Returns:
//   - Stats: the interval statistics, valid when ok is true
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(outcome renderer.FrameOutcome) (Stats, bool) {
	p.counts[outcome]++
	current := p.now()
	elapsed := current.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return Stats{}, false
	}

	runtime.ReadMemStats(&p.memStats)
	stats := Stats{
		Elapsed:   elapsed,
		Presented: p.counts[renderer.FramePresented],
		Recovered: p.counts[renderer.FrameRecovered],
		Skipped:   p.counts[renderer.FrameSkipped],
		FPS:       float64(p.counts[renderer.FramePresented]) / elapsed.Seconds(),
		HeapMB:    float64(p.memStats.Alloc) / 1024 / 1024,
		GCCount:   p.memStats.NumGC,
	}

	p.logger.Debug("frame stats",
		"fps", stats.FPS,
		"presented", stats.Presented,
		"recovered", stats.Recovered,
		"skipped", stats.Skipped,
		"heap_mb", stats.HeapMB,
		"gc", stats.GCCount,
	)

	clear(p.counts)
	p.lastTime = current
	return stats, true
}
