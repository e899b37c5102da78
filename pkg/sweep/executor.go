package sweep

import (
	"testing"

	"github.com/eunmann/assoc-bench/pkg/candidate"
	"github.com/eunmann/assoc-bench/pkg/membudget"
)

// sink keeps trial results reachable so the update work is never elided.
var sink candidate.Vector

// Apply writes i at seq[i] for every i, in order, threading the handle
// each Set returns. Later writes to the same position win.
func Apply(work candidate.Vector, seq []int) candidate.Vector {
	for i, idx := range seq {
		work = work.Set(idx, uint32(i))
	}
	return work
}

// Trial binds one baseline to one index sequence.
//
// Persistent baselines are forked inside the timed region since a fork is
// a handle copy. Mutable baselines get one deep copy per run, prepared
// before the timer starts.
type Trial struct {
	baseline   candidate.Vector
	seq        []int
	persistent bool
	budget     *membudget.Budget

	copies   []candidate.Vector
	reserved uint64
}

// NewTrial returns a trial over baseline. budget may be nil for no limit.
func NewTrial(f candidate.Family, baseline candidate.Vector, seq []int, budget *membudget.Budget) *Trial {
	return &Trial{
		baseline:   baseline,
		seq:        seq,
		persistent: f.Persistent,
		budget:     budget,
	}
}

// copyBytes is the approximate size of one deep copy of the baseline.
func (t *Trial) copyBytes() uint64 {
	return uint64(t.baseline.Len()) * 4
}

// Prepare readies up to runs independent working copies and returns how
// many runs may follow before the next Prepare. Persistent trials need no
// preparation and always return runs.
func (t *Trial) Prepare(runs int) int {
	t.Release()
	if t.persistent {
		return runs
	}

	n := runs
	if t.budget != nil {
		n = t.budget.Fit(runs, t.copyBytes())
		t.reserved = uint64(n) * t.copyBytes()
		if !t.budget.TryReserve(t.reserved) {
			t.reserved = 0
		}
	}

	t.copies = make([]candidate.Vector, n)
	for i := range t.copies {
		t.copies[i] = t.baseline.Fork()
	}
	return n
}

// Run performs one trial and returns the final instance. For mutable
// trials iter selects a copy made by the last Prepare.
func (t *Trial) Run(iter int) candidate.Vector {
	if t.persistent {
		return Apply(t.baseline.Fork(), t.seq)
	}
	return Apply(t.copies[iter], t.seq)
}

// Release drops prepared copies and returns their budget.
func (t *Trial) Release() {
	t.copies = nil
	if t.budget != nil && t.reserved > 0 {
		t.budget.Release(t.reserved)
	}
	t.reserved = 0
}

// Bench runs b.N trials. Copy preparation happens with the timer stopped,
// so neither its time nor its allocations are attributed to the updates.
func (t *Trial) Bench(b *testing.B) {
	b.ReportAllocs()
	defer t.Release()

	done := 0
	for done < b.N {
		b.StopTimer()
		batch := t.Prepare(b.N - done)
		b.StartTimer()

		for i := 0; i < batch; i++ {
			sink = t.Run(i)
		}
		done += batch
	}
	b.StopTimer()
}
