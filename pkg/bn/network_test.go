package bn

import (
	"errors"
	"slices"
	"testing"
)

func TestNetwork_AddEdge(t *testing.T) {
	g := NewNetwork(3)

	if err := g.AddEdge(0, 2); err != nil {
		t.Fatalf("AddEdge(0, 2) = %v, want nil", err)
	}
	if err := g.AddEdge(1, 2); err != nil {
		t.Fatalf("AddEdge(1, 2) = %v, want nil", err)
	}

	if got := g.Parents(2); !slices.Equal(got, []int{0, 1}) {
		t.Errorf("Parents(2) = %v, want [0 1]", got)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestNetwork_AddEdge_KeepsParentsSorted(t *testing.T) {
	g := NewNetwork(4)
	for _, from := range []int{3, 0, 2} {
		if err := g.AddEdge(from, 1); err != nil {
			t.Fatalf("AddEdge(%d, 1) = %v, want nil", from, err)
		}
	}
	if got := g.Parents(1); !slices.Equal(got, []int{0, 2, 3}) {
		t.Errorf("Parents(1) = %v, want [0 2 3]", got)
	}
}

func TestNetwork_AddEdge_Errors(t *testing.T) {
	g := NewNetwork(2)
	g.AddEdge(0, 1)

	tests := []struct {
		name     string
		from, to int
		want     error
	}{
		{"self loop", 0, 0, ErrSelfLoop},
		{"from out of range", -1, 1, ErrNodeOutOfRange},
		{"to out of range", 0, 2, ErrNodeOutOfRange},
		{"duplicate", 0, 1, ErrDuplicateEdge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.AddEdge(tt.from, tt.to); !errors.Is(err, tt.want) {
				t.Errorf("AddEdge(%d, %d) = %v, want %v", tt.from, tt.to, err, tt.want)
			}
		})
	}
}

func TestNetwork_WithEdge_DoesNotMutateReceiver(t *testing.T) {
	g := NewNetwork(3)
	g.AddEdge(0, 1)

	trial, err := g.WithEdge(2, 1)
	if err != nil {
		t.Fatalf("WithEdge(2, 1) = %v, want nil", err)
	}

	if got := g.Parents(1); !slices.Equal(got, []int{0}) {
		t.Errorf("receiver Parents(1) = %v, want [0]", got)
	}
	if got := trial.Parents(1); !slices.Equal(got, []int{0, 2}) {
		t.Errorf("trial Parents(1) = %v, want [0 2]", got)
	}
	if g.EdgeCount() != 1 || trial.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = (%d, %d), want (1, 2)", g.EdgeCount(), trial.EdgeCount())
	}
}

// A node with both in- and out-edges must report them separately: Parents is
// strictly the in-edge set and Children strictly the out-edge set.
func TestNetwork_ParentsChildren_Directed(t *testing.T) {
	g := NewNetwork(3)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)

	if got := g.Parents(1); !slices.Equal(got, []int{0}) {
		t.Errorf("Parents(1) = %v, want [0]", got)
	}
	if got := g.Children(1); !slices.Equal(got, []int{2}) {
		t.Errorf("Children(1) = %v, want [2]", got)
	}
	if got := g.Parents(0); len(got) != 0 {
		t.Errorf("Parents(0) = %v, want empty", got)
	}
	if got := g.Children(2); len(got) != 0 {
		t.Errorf("Children(2) = %v, want empty", got)
	}
}

func TestNetwork_Edges_Deterministic(t *testing.T) {
	g := NewNetwork(4)
	g.AddEdge(3, 1)
	g.AddEdge(0, 1)
	g.AddEdge(2, 3)

	want := []Edge{{From: 0, To: 1}, {From: 3, To: 1}, {From: 2, To: 3}}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}

func TestNetwork_Validate(t *testing.T) {
	g := NewNetwork(3)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	g.AddEdge(2, 0)
	if err := g.Validate(); !errors.Is(err, ErrCyclic) {
		t.Errorf("Validate() = %v, want ErrCyclic", err)
	}
}

func TestNetwork_Clone(t *testing.T) {
	g := NewNetwork(2)
	g.AddEdge(0, 1)

	c := g.Clone()
	c.AddEdge(1, 0)

	if g.HasEdge(1, 0) {
		t.Error("mutation of clone leaked into original")
	}
	if !c.HasEdge(0, 1) {
		t.Error("clone is missing original edge")
	}
}
