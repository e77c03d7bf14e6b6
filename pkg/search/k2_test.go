package search

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/matzehuels/netlearn/pkg/bn"
)

func binaryDataset(rows [][]int) *bn.Dataset {
	n := len(rows[0])
	vars := make([]bn.Variable, n)
	for i := range vars {
		vars[i] = bn.Variable{Name: string(rune('a' + i)), R: 2}
	}
	return &bn.Dataset{Variables: vars, Rows: rows}
}

// With variable 1 mirroring variable 0 and variable 2 pure noise, the search
// must commit exactly the edge 0 → 1: too few rows exist for any parent of 2
// to strictly improve its fit.
func TestK2_Fit_CorrelatedPair(t *testing.T) {
	ds := binaryDataset([][]int{
		{1, 1, 1},
		{1, 1, 2},
		{2, 2, 2},
		{2, 2, 1},
	})

	k2 := K2{Ordering: []int{0, 1, 2}}
	g, err := k2.Fit(context.Background(), ds)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	want := []bn.Edge{{From: 0, To: 1}}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}

func TestK2_Fit_SingleVariable(t *testing.T) {
	ds := &bn.Dataset{
		Variables: []bn.Variable{{Name: "a", R: 2}},
		Rows:      [][]int{{1}, {2}},
	}

	g, err := K2{Ordering: []int{0}}.Fit(context.Background(), ds)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if g.NodeCount() != 1 || g.EdgeCount() != 0 {
		t.Errorf("got %d nodes, %d edges, want 1 node, 0 edges", g.NodeCount(), g.EdgeCount())
	}
}

// Every committed edge must point from an earlier ordering position to a
// later one, and the result must validate as acyclic, whatever the permutation.
func TestK2_Fit_RespectsOrdering(t *testing.T) {
	ds := binaryDataset([][]int{
		{1, 1, 1, 1},
		{1, 1, 2, 2},
		{2, 2, 1, 1},
		{2, 2, 2, 2},
		{1, 1, 1, 2},
		{2, 2, 2, 1},
	})

	orderings := [][]int{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
		{2, 0, 3, 1},
		Random(4, 7),
	}
	for _, ord := range orderings {
		g, err := K2{Ordering: ord}.Fit(context.Background(), ds)
		if err != nil {
			t.Fatalf("Fit(%v) error = %v", ord, err)
		}
		pos := make(map[int]int, len(ord))
		for p, v := range ord {
			pos[v] = p
		}
		for _, e := range g.Edges() {
			if pos[e.From] >= pos[e.To] {
				t.Errorf("ordering %v: edge %d → %d violates ordering", ord, e.From, e.To)
			}
		}
		if err := g.Validate(); err != nil {
			t.Errorf("ordering %v: Validate() = %v, want nil", ord, err)
		}
	}
}

func TestK2_Fit_InvalidOrdering(t *testing.T) {
	ds := binaryDataset([][]int{{1, 1}, {2, 2}})

	tests := []struct {
		name     string
		ordering []int
	}{
		{"too short", []int{0}},
		{"too long", []int{0, 1, 2}},
		{"duplicate", []int{0, 0}},
		{"out of range", []int{0, 2}},
		{"nil", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := K2{Ordering: tt.ordering}.Fit(context.Background(), ds)
			if !errors.Is(err, ErrInvalidOrdering) {
				t.Errorf("Fit() error = %v, want ErrInvalidOrdering", err)
			}
		})
	}
}

func TestK2_Fit_MaxParents(t *testing.T) {
	// Three perfectly correlated predictors of variable 3; the cap keeps the
	// committed parent set at one.
	ds := binaryDataset([][]int{
		{1, 1, 1, 1},
		{1, 1, 1, 1},
		{2, 2, 2, 2},
		{2, 2, 2, 2},
		{1, 1, 1, 1},
		{2, 2, 2, 2},
	})

	g, err := K2{Ordering: []int{0, 1, 2, 3}, MaxParents: 1}.Fit(context.Background(), ds)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	for i := 0; i < g.NodeCount(); i++ {
		if len(g.Parents(i)) > 1 {
			t.Errorf("Parents(%d) = %v, want at most 1 parent", i, g.Parents(i))
		}
	}
}

func TestK2_Fit_ParallelMatchesSequential(t *testing.T) {
	ds := binaryDataset([][]int{
		{1, 1, 1, 2, 1},
		{1, 1, 2, 1, 2},
		{2, 2, 1, 2, 2},
		{2, 2, 2, 1, 1},
		{1, 1, 1, 1, 1},
		{2, 2, 2, 2, 2},
		{1, 2, 1, 2, 1},
		{2, 1, 2, 1, 2},
	})
	ord := []int{0, 1, 2, 3, 4}

	sequential, err := K2{Ordering: ord}.Fit(context.Background(), ds)
	if err != nil {
		t.Fatalf("sequential Fit() error = %v", err)
	}
	parallel, err := K2{Ordering: ord, Workers: 4}.Fit(context.Background(), ds)
	if err != nil {
		t.Fatalf("parallel Fit() error = %v", err)
	}

	if !slices.Equal(sequential.Edges(), parallel.Edges()) {
		t.Errorf("parallel Edges() = %v, want sequential result %v",
			parallel.Edges(), sequential.Edges())
	}
}

func TestK2_Fit_Cancelled(t *testing.T) {
	ds := binaryDataset([][]int{{1, 1}, {2, 2}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := (K2{Ordering: []int{0, 1}}).Fit(ctx, ds); !errors.Is(err, context.Canceled) {
		t.Errorf("Fit() error = %v, want context.Canceled", err)
	}
}

func TestK2_Fit_Progress(t *testing.T) {
	ds := binaryDataset([][]int{{1, 1, 1}, {2, 2, 2}, {1, 1, 2}, {2, 2, 1}})

	var updates []Update
	k2 := K2{
		Ordering: []int{0, 1, 2},
		Progress: func(u Update) { updates = append(updates, u) },
	}
	if _, err := k2.Fit(context.Background(), ds); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	if len(updates) != 2 {
		t.Fatalf("got %d progress updates, want 2", len(updates))
	}
	if updates[0].Node != 1 || updates[1].Node != 2 {
		t.Errorf("progress nodes = %d, %d, want 1, 2", updates[0].Node, updates[1].Node)
	}
}
