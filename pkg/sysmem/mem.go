// Package sysmem detects total physical memory so the harness can size
// its default setup budget. Unsupported platforms fall back to a fixed value.
package sysmem

// DefaultMemoryBytes is the fallback (4 GiB) used when detection fails.
const DefaultMemoryBytes uint64 = 4 * 1024 * 1024 * 1024

// Result holds the result of memory detection.
type Result struct {
	// TotalBytes is the total system memory in bytes.
	TotalBytes uint64

	// Reliable is false when TotalBytes is DefaultMemoryBytes.
	Reliable bool
}

// Total returns the total system memory, or DefaultMemoryBytes with
// Reliable=false when the platform cannot report it.
func Total() Result {
	bytes, ok := totalSystemMemory()
	if !ok || bytes == 0 {
		return Result{TotalBytes: DefaultMemoryBytes}
	}
	return Result{TotalBytes: bytes, Reliable: true}
}

// Fraction returns TotalBytes * num / den. den must be non-zero.
func (r Result) Fraction(num, den uint64) uint64 {
	return r.TotalBytes / den * num
}
