// Package sweep builds fair, reproducible update workloads for every
// candidate container and hands them to Go's benchmark machinery.
//
// For each requested size N the driver builds one baseline per candidate
// holding 0..N-1, computes one shared index sequence, and times N
// sequential point-updates against a working copy of the baseline. The
// baseline is never mutated, so it is reused across every timed run.
package sweep

import (
	"fmt"
	"regexp"

	"github.com/eunmann/assoc-bench/pkg/candidate"
)

// Entry is one registered benchmark: a candidate family under a stable
// name. Entries are immutable once built.
type Entry struct {
	family candidate.Family
}

// NewEntry wraps a family as a benchmark entry.
func NewEntry(f candidate.Family) Entry {
	return Entry{family: f}
}

// Name returns the benchmark name.
func (e Entry) Name() string { return e.family.Name }

// Family returns the candidate family under test.
func (e Entry) Family() candidate.Family { return e.family }

// EffectiveN returns the size actually measured for a requested size.
// A request above the family's limit runs at N=1 and reports degraded.
func (e Entry) EffectiveN(requested int) (n int, degraded bool) {
	if e.family.Limit > 0 && requested > e.family.Limit {
		return 1, true
	}
	return requested, false
}

// Label returns the reported identity for a requested size. A degraded
// run names the size that actually ran.
func (e Entry) Label(requested int) string {
	n, degraded := e.EffectiveN(requested)
	if degraded {
		return fmt.Sprintf("%s/N=%d(ran_N=%d,limit=%d)", e.Name(), requested, n, e.family.Limit)
	}
	return fmt.Sprintf("%s/N=%d", e.Name(), requested)
}

// Options selects which entries to register.
type Options struct {
	// Experimental includes families marked experimental.
	Experimental bool
	// Filter keeps only families whose name matches. nil keeps all.
	Filter *regexp.Regexp
	// Families overrides the linked family table. nil uses candidate.Available().
	Families []candidate.Family
}

// Entries returns the entry list for a sweep, in registration order.
func Entries(opts Options) []Entry {
	families := opts.Families
	if families == nil {
		families = candidate.Available()
	}

	entries := make([]Entry, 0, len(families))
	for _, f := range families {
		if f.Experimental && !opts.Experimental {
			continue
		}
		if opts.Filter != nil && !opts.Filter.MatchString(f.Name) {
			continue
		}
		entries = append(entries, NewEntry(f))
	}
	return entries
}
