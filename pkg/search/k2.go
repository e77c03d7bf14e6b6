package search

import (
	"context"
	"math"
	"sync"

	"github.com/matzehuels/netlearn/pkg/bn"
	"github.com/matzehuels/netlearn/pkg/score"
)

// Update describes the state of the search after one ordering position has
// been fully processed. Position counts processed positions (1-based over
// the ordering), Node is the variable index at that position.
type Update struct {
	Position int     // ordering position just finished (1..Total-1)
	Total    int     // number of variables
	Node     int     // variable index at that position
	Parents  int     // parents committed for Node
	Score    float64 // Node's family score after its parents were chosen
}

// K2 configures the greedy structure search. The zero value is not usable -
// Ordering is required.
//
// K2 is safe to reuse: Fit never mutates the struct, and each call builds a
// fresh network.
type K2 struct {
	// Ordering is the variable ordering the search respects: only variables
	// at earlier positions are eligible parents for the variable at a given
	// position. Must be a permutation of 0..N-1.
	Ordering []int

	// MaxParents caps the number of parents committed per variable.
	// Zero means no cap.
	MaxParents int

	// Workers sets the parallelism of the candidate scan. Values below 2
	// scan sequentially. Parallel scans produce bit-identical results to
	// sequential ones: candidates are scored into a position-indexed slice
	// and the winner is picked by a sequential pass in candidate order.
	Workers int

	// Progress, when set, is invoked after each ordering position completes.
	Progress func(Update)
}

// Fit runs K2 against the dataset and returns the learned network.
//
// Starting from the empty graph, each ordering position greedily accumulates
// parent edges for its variable: every eligible candidate is scored as a
// trial, the best strictly-improving one is committed, and the loop repeats
// until no single edge addition improves the variable's family score. Ties
// in the trial scan go to the earliest candidate in ordering order.
//
// Returns ErrInvalidOrdering for a malformed ordering and propagates
// score.ErrDataOutOfRange from the evaluator. The context is checked between
// ordering positions, so cancellation returns promptly with ctx.Err().
func (s K2) Fit(ctx context.Context, ds *bn.Dataset) (*bn.Network, error) {
	n := ds.NumVariables()
	if err := ValidateOrdering(s.Ordering, n); err != nil {
		return nil, err
	}

	g := bn.NewNetwork(n)
	// Position 0 has no eligible parents and is skipped.
	for k := 1; k < n; k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		i := s.Ordering[k]
		candidates := s.Ordering[:k]

		// The total score decomposes per family, and only family i changes
		// between trials here, so comparing family scores decides exactly
		// what comparing full-graph scores would.
		y, err := score.Family(ds, g, i)
		if err != nil {
			return nil, err
		}

		for {
			if s.MaxParents > 0 && len(g.Parents(i)) >= s.MaxParents {
				break
			}
			bestY, bestJ, err := s.scan(ctx, ds, g, i, candidates)
			if err != nil {
				return nil, err
			}
			if bestJ < 0 || bestY <= y {
				break
			}
			if err := g.AddEdge(bestJ, i); err != nil {
				return nil, err
			}
			y = bestY
		}

		if s.Progress != nil {
			s.Progress(Update{Position: k, Total: n, Node: i, Parents: len(g.Parents(i)), Score: y})
		}
	}
	return g, nil
}

// scan scores every eligible candidate parent for i and returns the best
// score and candidate, or bestJ == -1 when no candidate is eligible.
func (s K2) scan(ctx context.Context, ds *bn.Dataset, g *bn.Network, i int, candidates []int) (float64, int, error) {
	if s.Workers > 1 {
		return s.scanParallel(ctx, ds, g, i, candidates)
	}

	bestY, bestJ := math.Inf(-1), -1
	for _, j := range candidates {
		if g.HasEdge(j, i) {
			continue
		}
		y, err := trialScore(ds, g, j, i)
		if err != nil {
			return 0, -1, err
		}
		if y > bestY {
			bestY, bestJ = y, j
		}
	}
	return bestY, bestJ, nil
}

// scanParallel fans candidate trials out over s.Workers goroutines. Each
// trial works on a copy-on-write graph, so the shared network is read-only
// for the whole scan; only the reduction below is sequential, which keeps
// the first-candidate-wins tie-break identical to the sequential path.
func (s K2) scanParallel(ctx context.Context, ds *bn.Dataset, g *bn.Network, i int, candidates []int) (float64, int, error) {
	type trial struct {
		y   float64
		err error
		ok  bool
	}
	results := make([]trial, len(candidates))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.Workers)
	for idx, j := range candidates {
		if g.HasEdge(j, i) {
			continue
		}
		if err := ctx.Err(); err != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(idx, j int) {
			defer wg.Done()
			defer func() { <-sem }()
			y, err := trialScore(ds, g, j, i)
			results[idx] = trial{y: y, err: err, ok: true}
		}(idx, j)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return 0, -1, err
	}

	bestY, bestJ := math.Inf(-1), -1
	for idx, j := range candidates {
		r := results[idx]
		if !r.ok {
			continue
		}
		if r.err != nil {
			return 0, -1, r.err
		}
		if r.y > bestY {
			bestY, bestJ = r.y, j
		}
	}
	return bestY, bestJ, nil
}

func trialScore(ds *bn.Dataset, g *bn.Network, j, i int) (float64, error) {
	trial, err := g.WithEdge(j, i)
	if err != nil {
		return 0, err
	}
	return score.Family(ds, trial, i)
}
