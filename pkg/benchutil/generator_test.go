package benchutil

import (
	"slices"
	"testing"
)

func TestIndicesDeterministic(t *testing.T) {
	for _, n := range []int{1, 5, 1000} {
		a := Indices(n)
		b := Indices(n)
		if !slices.Equal(a, b) {
			t.Errorf("Indices(%d) not reproducible: %v vs %v", n, a, b)
		}
	}
}

func TestIndicesRange(t *testing.T) {
	for _, n := range []int{1, 2, 7, 4096} {
		seq := Indices(n)
		if len(seq) != n {
			t.Fatalf("len(Indices(%d)) = %d", n, len(seq))
		}
		for i, idx := range seq {
			if idx < 0 || idx >= n {
				t.Errorf("Indices(%d)[%d] = %d, out of range", n, i, idx)
			}
		}
	}
}

func TestIndicesSingle(t *testing.T) {
	if got := Indices(1); !slices.Equal(got, []int{0}) {
		t.Errorf("Indices(1) = %v, want [0]", got)
	}
}

func TestIndicesSeed(t *testing.T) {
	if !slices.Equal(IndicesWithSeed(64, 0), Indices(64)) {
		t.Error("seed 0 should fall back to BenchmarkSeed")
	}
	if slices.Equal(IndicesWithSeed(64, 7), Indices(64)) {
		t.Error("different seeds produced identical sequences")
	}
}

func TestIndicesRepeats(t *testing.T) {
	// Sampling is with replacement; 1000 draws from 1000 slots collide.
	seen := make(map[int]bool)
	for _, idx := range Indices(1000) {
		seen[idx] = true
	}
	if len(seen) == 1000 {
		t.Error("expected repeated indices")
	}
}

func TestIndicesPanicsOnZero(t *testing.T) {
	for _, n := range []int{0, -3} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Indices(%d) did not panic", n)
				}
			}()
			Indices(n)
		}()
	}
}
