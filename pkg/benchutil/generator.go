// Package benchutil provides the deterministic workload used by every benchmark.
package benchutil

import (
	"fmt"
	"math/rand"
)

// Indices returns runs positions drawn uniformly from [0, runs) with the
// fixed BenchmarkSeed. Positions may repeat.
//
// Two calls with the same runs return identical sequences, so every
// candidate measured at a size sees the same access pattern.
// Panics if runs <= 0.
func Indices(runs int) []int {
	return IndicesWithSeed(runs, BenchmarkSeed)
}

// IndicesWithSeed is like Indices with an explicit seed. 0 = use default seed.
func IndicesWithSeed(runs int, seed int64) []int {
	if runs <= 0 {
		panic(fmt.Sprintf("benchutil: index sequence needs runs > 0, got %d", runs))
	}
	if seed == 0 {
		seed = BenchmarkSeed
	}

	rng := rand.New(rand.NewSource(seed))
	seq := make([]int, runs)
	for i := range seq {
		seq[i] = rng.Intn(runs)
	}
	return seq
}
