package benchutil

// Shared constants for benchmarks across packages.

// BenchmarkSeed is the fixed seed for reproducible index sequences.
const BenchmarkSeed = 42

// DefaultN is the default problem size when none is requested.
const DefaultN = 1000

// Standard benchmark sizes for quick runs.
var BenchmarkSizes = []int{100, 1000, 10000}

// ScalingSizes are larger sizes for comprehensive scaling tests.
// Used with ASSOCBENCH_LONG_BENCH=1 environment variable.
var ScalingSizes = []int{10000, 50000, 100000, 250000, 1000000}
