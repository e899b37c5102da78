// Package memdiag provides memory diagnostics for benchmark sweeps.
//
// Enable debug logging with ASSOCBENCH_MEM_DEBUG=1
// Enable pprof server with ASSOCBENCH_MEM_PPROF=1 (listens on :6060)
package memdiag

import (
	"fmt"
	"net/http"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	// Registers pprof handlers on DefaultServeMux for the pprof HTTP server.
	_ "net/http/pprof"

	"github.com/eunmann/assoc-bench/pkg/logging"
)

// Config holds configuration for memory diagnostics.
type Config struct {
	// Enabled controls whether memory diagnostics are active.
	Enabled bool

	// PprofEnabled controls whether pprof server is started.
	PprofEnabled bool

	// PprofAddr is the listen address for the pprof server.
	PprofAddr string
}

// DefaultConfig returns the default configuration, reading from environment.
func DefaultConfig() Config {
	return Config{
		Enabled:      os.Getenv("ASSOCBENCH_MEM_DEBUG") == "1",
		PprofEnabled: os.Getenv("ASSOCBENCH_MEM_PPROF") == "1",
		PprofAddr:    ":6060",
	}
}

// Stats holds memory statistics from runtime.
type Stats struct {
	// HeapAlloc is bytes allocated on heap.
	HeapAlloc uint64

	// HeapSys is bytes obtained from OS for heap.
	HeapSys uint64

	// HeapInuse is bytes in in-use spans.
	HeapInuse uint64

	// TotalAlloc is cumulative bytes allocated (even if freed).
	TotalAlloc uint64

	// Sys is bytes obtained from OS.
	Sys uint64

	// NumGC is the number of completed GC cycles.
	NumGC uint32

	// GCCPUFraction is the fraction of CPU used by GC.
	GCCPUFraction float64
}

// Read reads current memory statistics.
func Read() Stats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Stats{
		HeapAlloc:     m.HeapAlloc,
		HeapSys:       m.HeapSys,
		HeapInuse:     m.HeapInuse,
		TotalAlloc:    m.TotalAlloc,
		Sys:           m.Sys,
		NumGC:         m.NumGC,
		GCCPUFraction: m.GCCPUFraction,
	}
}

// FormatMB formats bytes as megabytes.
func FormatMB(b uint64) string {
	return fmt.Sprintf("%.1fMB", float64(b)/(1024*1024))
}

// Tracker logs heap usage at sweep milestones.
type Tracker struct {
	config   Config
	started  atomic.Bool
	mu       sync.Mutex
	phase    string
	peakHeap uint64
}

// NewTracker creates a new memory tracker.
func NewTracker(config Config) *Tracker {
	return &Tracker{
		config: config,
		phase:  "init",
	}
}

// Start starts the pprof server if enabled. It is a no-op on later calls.
func (t *Tracker) Start() {
	if !t.config.Enabled || !t.started.CompareAndSwap(false, true) {
		return
	}

	log := logging.L()
	log.Info().Msg("memory diagnostics enabled")

	if t.config.PprofEnabled {
		go func() {
			log.Info().Str("addr", t.config.PprofAddr).Msg("starting pprof server")
			if err := http.ListenAndServe(t.config.PprofAddr, nil); err != nil {
				log.Error().Err(err).Msg("pprof server failed")
			}
		}()
	}
}

// SetPhase sets the current phase for logging context.
func (t *Tracker) SetPhase(phase string) {
	t.mu.Lock()
	t.phase = phase
	t.mu.Unlock()

	t.LogNow("phase_change")
}

// LogNow logs current memory stats immediately.
func (t *Tracker) LogNow(reason string) {
	if !t.config.Enabled {
		return
	}

	stats := Read()

	t.mu.Lock()
	phase := t.phase
	if stats.HeapAlloc > t.peakHeap {
		t.peakHeap = stats.HeapAlloc
	}
	peakHeap := t.peakHeap
	t.mu.Unlock()

	logging.L().Debug().
		Str("reason", reason).
		Str("phase", phase).
		Str("heap_alloc", FormatMB(stats.HeapAlloc)).
		Str("heap_sys", FormatMB(stats.HeapSys)).
		Str("heap_inuse", FormatMB(stats.HeapInuse)).
		Str("sys_total", FormatMB(stats.Sys)).
		Str("peak_heap", FormatMB(peakHeap)).
		Uint32("num_gc", stats.NumGC).
		Float64("gc_cpu_pct", stats.GCCPUFraction*100).
		Msg("memory stats")
}

// LogWithBudget logs memory stats along with the setup budget.
func (t *Tracker) LogWithBudget(reason string, budgetInUse, budgetTotal uint64) {
	if !t.config.Enabled {
		return
	}

	stats := Read()

	t.mu.Lock()
	phase := t.phase
	t.mu.Unlock()

	logging.L().Debug().
		Str("reason", reason).
		Str("phase", phase).
		Str("heap_alloc", FormatMB(stats.HeapAlloc)).
		Str("budget_inuse", FormatMB(budgetInUse)).
		Str("budget_total", FormatMB(budgetTotal)).
		Msg("memory stats with budget")
}

// PeakHeap returns the peak heap allocation seen.
func (t *Tracker) PeakHeap() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.peakHeap
}

// ForceGC forces a garbage collection so garbage left by one measurement
// is not collected during the next one.
func ForceGC() {
	before := Read()
	runtime.GC()
	after := Read()

	freed := int64(before.HeapAlloc) - int64(after.HeapAlloc)

	logging.L().Debug().
		Str("before_heap", FormatMB(before.HeapAlloc)).
		Str("after_heap", FormatMB(after.HeapAlloc)).
		Str("freed", FormatMB(uint64(max(freed, 0)))).
		Msg("forced GC")
}
