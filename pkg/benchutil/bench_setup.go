package benchutil

import (
	"os"
	"testing"
)

// SkipIfNoLongBench skips the benchmark if ASSOCBENCH_LONG_BENCH is not set.
// Use this to gate long-running benchmarks that shouldn't run by default.
func SkipIfNoLongBench(b *testing.B) {
	if os.Getenv("ASSOCBENCH_LONG_BENCH") == "" {
		b.Skip("set ASSOCBENCH_LONG_BENCH=1 to run scaling benchmark")
	}
}

// Sizes returns the standard sizes, or the scaling sizes when
// ASSOCBENCH_LONG_BENCH is set.
func Sizes() []int {
	if os.Getenv("ASSOCBENCH_LONG_BENCH") != "" {
		return ScalingSizes
	}
	return BenchmarkSizes
}
