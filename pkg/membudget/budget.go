// Package membudget bounds the memory the harness may spend on untimed
// trial setup, chiefly the deep copies hoisted ahead of mutable trials.
package membudget

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/dustin/go-humanize"

	"github.com/eunmann/assoc-bench/pkg/sysmem"
)

// DefaultBudgetBytes is the fallback memory budget when system RAM cannot be detected.
const DefaultBudgetBytes uint64 = 2 * 1024 * 1024 * 1024

// BudgetSource indicates how the memory budget was determined.
type BudgetSource string

const (
	// BudgetSourceAuto25Pct indicates the budget was set to 25% of detected RAM.
	BudgetSourceAuto25Pct BudgetSource = "auto-25pct"
	// BudgetSourceDefault indicates the budget used the fallback default.
	BudgetSourceDefault BudgetSource = "default"
	// BudgetSourceCLI indicates the budget was set via CLI flag.
	BudgetSourceCLI BudgetSource = "cli"
	// BudgetSourceEnv indicates the budget was set via environment variable.
	BudgetSourceEnv BudgetSource = "env"
)

// Budget tracks reserved bytes against a fixed total. Callers reserve
// before allocating and release when done.
//
// Budget is safe for concurrent use.
type Budget struct {
	total  uint64
	inUse  atomic.Uint64
	source BudgetSource
}

// Config holds configuration for creating a Budget.
type Config struct {
	// TotalBytes is the total memory budget in bytes.
	TotalBytes uint64

	// Source indicates how the budget was determined.
	Source BudgetSource
}

// New creates a new Budget with the given configuration.
func New(cfg Config) *Budget {
	return &Budget{
		total:  cfg.TotalBytes,
		source: cfg.Source,
	}
}

// NewFromSystemRAM creates a Budget set to 25% of system RAM.
// Timed trials still need headroom for the structures under test.
// If RAM cannot be detected, uses DefaultBudgetBytes.
func NewFromSystemRAM() *Budget {
	result := sysmem.Total()

	if !result.Reliable {
		return New(Config{TotalBytes: DefaultBudgetBytes, Source: BudgetSourceDefault})
	}
	return New(Config{TotalBytes: result.Fraction(1, 4), Source: BudgetSourceAuto25Pct})
}

// Total returns the total budget in bytes.
func (b *Budget) Total() uint64 {
	return b.total
}

// InUse returns the currently reserved bytes.
func (b *Budget) InUse() uint64 {
	return b.inUse.Load()
}

// Available returns the available bytes (total - inUse).
func (b *Budget) Available() uint64 {
	inUse := b.inUse.Load()
	if inUse >= b.total {
		return 0
	}
	return b.total - inUse
}

// Source returns how the budget was determined.
func (b *Budget) Source() BudgetSource {
	return b.source
}

// TryReserve attempts to reserve n bytes.
// Returns true if successful, false if it would exceed the budget.
func (b *Budget) TryReserve(n uint64) bool {
	for {
		current := b.inUse.Load()
		newTotal := current + n
		if newTotal > b.total {
			return false
		}
		if b.inUse.CompareAndSwap(current, newTotal) {
			return true
		}
	}
}

// Release returns n bytes to the available pool.
func (b *Budget) Release(n uint64) {
	for {
		current := b.inUse.Load()
		next := uint64(0)
		if n < current {
			next = current - n
		}
		if b.inUse.CompareAndSwap(current, next) {
			return
		}
	}
}

// Fit returns how many units of unitBytes each fit in the available budget,
// capped at want and never below 1. A single unit is always granted so a
// run can make progress even when one unit exceeds the budget.
func (b *Budget) Fit(want int, unitBytes uint64) int {
	if want <= 0 {
		return 0
	}
	if unitBytes == 0 {
		return want
	}
	n := b.Available() / unitBytes
	if n < 1 {
		return 1
	}
	if n > uint64(want) {
		return want
	}
	return int(n)
}

// ParseHumanSize parses a human-readable size string (e.g., "4GiB", "512MB").
func ParseHumanSize(s string) (uint64, error) {
	if s == "" {
		return 0, errors.New("empty size string")
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return n, nil
}

// FormatBytes formats a byte count as a human-readable string.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
