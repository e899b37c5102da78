package sweep

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/eunmann/assoc-bench/internal/logctx"
	"github.com/eunmann/assoc-bench/pkg/benchutil"
	"github.com/eunmann/assoc-bench/pkg/candidate"
	"github.com/eunmann/assoc-bench/pkg/logging"
	"github.com/eunmann/assoc-bench/pkg/membudget"
	"github.com/eunmann/assoc-bench/pkg/memdiag"
	"github.com/eunmann/assoc-bench/pkg/report"
)

// ErrNoEntries is returned when a sweep has nothing to measure.
var ErrNoEntries = errors.New("no benchmark entries selected")

// Config configures a Driver.
type Config struct {
	// Seed for the index sequence. 0 = benchutil.BenchmarkSeed.
	Seed int64
	// Budget bounds memory spent on hoisted working copies. nil = unbounded.
	Budget *membudget.Budget
	// Memory logs heap usage per measurement. nil = disabled.
	Memory *memdiag.Tracker
}

// Driver runs every entry at every requested size.
type Driver struct {
	entries []Entry
	cfg     Config
	seqs    map[int][]int
}

// NewDriver returns a driver over a fixed entry list.
func NewDriver(entries []Entry, cfg Config) *Driver {
	if cfg.Memory == nil {
		cfg.Memory = memdiag.NewTracker(memdiag.Config{})
	}
	return &Driver{
		entries: slices.Clone(entries),
		cfg:     cfg,
		seqs:    make(map[int][]int),
	}
}

// Entries returns a copy of the registered entries.
func (d *Driver) Entries() []Entry {
	return slices.Clone(d.entries)
}

// Indices returns the index sequence for n, computed once and shared by
// every entry measured at n.
func (d *Driver) Indices(n int) []int {
	seq, ok := d.seqs[n]
	if !ok {
		seq = benchutil.IndicesWithSeed(n, d.cfg.Seed)
		d.seqs[n] = seq
	}
	return seq
}

// Trial builds the baseline and trial for one entry at a requested size.
func (d *Driver) Trial(e Entry, requested int) *Trial {
	n, _ := e.EffectiveN(requested)
	baseline := BuildBaseline(e.Family(), n)
	return NewTrial(e.Family(), baseline, d.Indices(n), d.cfg.Budget)
}

// Bench registers one sub-benchmark per entry and size on b.
func (d *Driver) Bench(b *testing.B, sizes []int) {
	for _, n := range sizes {
		for _, e := range d.entries {
			trial := d.Trial(e, n)
			b.Run(e.Label(n), trial.Bench)
		}
	}
}

// Run measures every entry at every size with testing.Benchmark, which
// decides the repetition count. Measurements run one at a time. ctx is
// checked between measurements; results gathered so far are returned
// with the context error.
func (d *Driver) Run(ctx context.Context, sizes []int) ([]report.Result, error) {
	if len(d.entries) == 0 {
		return nil, ErrNoEntries
	}

	log := logctx.FromContext(ctx).With().Str("phase", "measure").Logger()
	progress := logging.NewProgressTracker("measure", int64(len(sizes)*len(d.entries)), log)
	d.cfg.Memory.Start()

	results := make([]report.Result, 0, len(sizes)*len(d.entries))
	for _, n := range sizes {
		if n <= 0 {
			return results, fmt.Errorf("invalid size %d: must be > 0", n)
		}
		for _, e := range d.entries {
			if err := ctx.Err(); err != nil {
				return results, err
			}

			entryLog := log.With().Str("entry", e.Name()).Int("n", n).Logger()
			r, elapsed, err := d.measure(entryLog, e, n)
			if err != nil {
				return results, err
			}
			progress.RecordCompletion(elapsed)
			results = append(results, r)

			logging.MeasurementComplete(entryLog, elapsed).
				Int("effective_n", int(r.EffectiveN)).
				Bool("degraded", r.Degraded).
				Count("iterations", r.Iterations).
				Float64("ns_per_update", r.NsPerUpdate).
				ProgressFromTracker(progress).
				Log("measurement completed")
		}
	}

	report.ComputeOverhead(results)
	logging.PhaseComplete(log, "measure", progress.Elapsed()).
		Int("measurements", len(results)).
		Log("sweep completed")
	return results, nil
}

func (d *Driver) measure(log zerolog.Logger, e Entry, requested int) (report.Result, time.Duration, error) {
	n, degraded := e.EffectiveN(requested)
	label := e.Label(requested)
	if degraded {
		log.Warn().
			Int("effective_n", n).
			Int("limit", e.Family().Limit).
			Msg("requested size exceeds entry limit, measuring substitute size")
	}

	memdiag.ForceGC()
	d.cfg.Memory.SetPhase(label)

	start := time.Now()
	trial := d.Trial(e, requested)
	br := testing.Benchmark(trial.Bench)
	elapsed := time.Since(start)

	if d.cfg.Budget != nil {
		d.cfg.Memory.LogWithBudget("measured", d.cfg.Budget.InUse(), d.cfg.Budget.Total())
	}
	if br.N == 0 {
		return report.Result{}, elapsed, fmt.Errorf("benchmark %s did not run", label)
	}

	nsPerOp := float64(br.T.Nanoseconds()) / float64(br.N)
	return report.Result{
		Entry:       e.Name(),
		Label:       label,
		Persistent:  e.Family().Persistent,
		Bits:        int64(e.Family().Bits),
		RequestedN:  int64(requested),
		EffectiveN:  int64(n),
		Degraded:    degraded,
		Iterations:  int64(br.N),
		NsPerOp:     nsPerOp,
		NsPerUpdate: nsPerOp / float64(n),
		AllocsPerOp: br.AllocsPerOp(),
		BytesPerOp:  br.AllocedBytesPerOp(),
	}, elapsed, nil
}

// Verify applies the workload once per entry at n and checks that every
// entry ends with the same contents as the mutable reference and that no
// baseline was modified. Entries that would run degraded at n are skipped.
func (d *Driver) Verify(n int) error {
	seq := d.Indices(n)
	want := candidate.ToSlice(Apply(BuildBaseline(candidate.Slice(), n), seq))

	var errs []error
	for _, e := range d.entries {
		if _, degraded := e.EffectiveN(n); degraded {
			continue
		}
		baseline := BuildBaseline(e.Family(), n)
		got := candidate.ToSlice(Apply(baseline.Fork(), seq))
		if !slices.Equal(got, want) {
			errs = append(errs, fmt.Errorf("%s: result differs from reference at N=%d", e.Name(), n))
		}
		if !isAscending(baseline) {
			errs = append(errs, fmt.Errorf("%s: baseline modified by trial at N=%d", e.Name(), n))
		}
	}
	return errors.Join(errs...)
}

func isAscending(v candidate.Vector) bool {
	for i := 0; i < v.Len(); i++ {
		if v.Get(i) != uint32(i) {
			return false
		}
	}
	return true
}

// SetBenchtime sets the target run time for each measurement made by Run,
// using the same syntax as go test -benchtime ("1s", "500x").
func SetBenchtime(s string) error {
	testing.Init()
	if err := flag.Set("test.benchtime", s); err != nil {
		return fmt.Errorf("set benchtime %q: %w", s, err)
	}
	return nil
}
