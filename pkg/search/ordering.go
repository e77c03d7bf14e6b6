package search

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrInvalidOrdering is returned by [K2.Fit] and [ValidateOrdering] when the
// ordering is not a permutation of exactly the variable indices 0..n-1:
// wrong length, out-of-range entries, or duplicates.
var ErrInvalidOrdering = errors.New("ordering is not a permutation of the variable indices")

// Identity returns the ordering 0, 1, ..., n-1.
func Identity(n int) []int {
	ord := make([]int, n)
	for i := range ord {
		ord[i] = i
	}
	return ord
}

// Random returns a uniformly shuffled ordering of 0..n-1 derived from the
// seed. The same seed always yields the same permutation, which keeps
// otherwise-randomized runs reproducible.
func Random(n int, seed uint64) []int {
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	return rng.Perm(n)
}

// ValidateOrdering checks that ordering is a permutation of 0..n-1.
// The search refuses to start on an invalid ordering rather than let it
// corrupt the candidate-set computation.
func ValidateOrdering(ordering []int, n int) error {
	if len(ordering) != n {
		return fmt.Errorf("ordering has %d entries, want %d: %w", len(ordering), n, ErrInvalidOrdering)
	}
	seen := make([]bool, n)
	for _, v := range ordering {
		if v < 0 || v >= n {
			return fmt.Errorf("ordering entry %d outside 0..%d: %w", v, n-1, ErrInvalidOrdering)
		}
		if seen[v] {
			return fmt.Errorf("ordering repeats index %d: %w", v, ErrInvalidOrdering)
		}
		seen[v] = true
	}
	return nil
}
