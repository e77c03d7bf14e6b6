package bn

import (
	"errors"
	"slices"
)

var (
	// ErrNodeOutOfRange is returned when an edge endpoint is not a valid
	// node index for this network.
	ErrNodeOutOfRange = errors.New("node index out of range")

	// ErrSelfLoop is returned by [Network.AddEdge] and [Network.WithEdge]
	// when both endpoints are the same node.
	ErrSelfLoop = errors.New("self loop")

	// ErrDuplicateEdge is returned when the requested edge already exists.
	// Parent sets are sets: a variable is a parent at most once.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrCyclic is returned by [Network.Validate] when a directed cycle is
	// detected. Structure search constrains edges to follow a fixed variable
	// ordering, which makes cycles structurally impossible, so hitting this
	// error indicates a bug in the caller rather than bad user input.
	ErrCyclic = errors.New("network contains a cycle")
)

// Edge is a parent → child relation between two variable indices.
type Edge struct {
	From int // parent
	To   int // child
}

// Network is a directed acyclic graph over variable indices 0..N-1, stored as
// one parent set per node. Parent sets are kept sorted ascending, which fixes
// the radix order used for contingency-table indexing: the same graph always
// produces the same table layout.
//
// The zero value is not usable - use [NewNetwork]. Network is not safe for
// concurrent mutation; concurrent reads (including [Network.WithEdge]) are fine.
type Network struct {
	parents [][]int
}

// NewNetwork creates a network with n nodes and no edges.
func NewNetwork(n int) *Network {
	return &Network{parents: make([][]int, n)}
}

// NodeCount returns the number of nodes.
func (g *Network) NodeCount() int { return len(g.parents) }

// EdgeCount returns the total number of edges.
func (g *Network) EdgeCount() int {
	total := 0
	for _, ps := range g.parents {
		total += len(ps)
	}
	return total
}

// Parents returns the parent indices of node i in ascending order.
// This is explicitly the in-edge set; use [Network.Children] for out-edges.
// The returned slice is a read-only view and must not be modified.
func (g *Network) Parents(i int) []int { return g.parents[i] }

// Children returns the nodes that i is a parent of, in ascending order.
// Computed by scanning all parent sets, so it is O(E); the search only ever
// needs parent sets, which are O(1) to look up.
func (g *Network) Children(i int) []int {
	var out []int
	for c, ps := range g.parents {
		if slices.Contains(ps, i) {
			out = append(out, c)
		}
	}
	return out
}

// HasEdge reports whether the edge from → to exists.
func (g *Network) HasEdge(from, to int) bool {
	if to < 0 || to >= len(g.parents) {
		return false
	}
	return slices.Contains(g.parents[to], from)
}

// AddEdge inserts the edge from → to, keeping the parent set of to sorted.
// Returns ErrNodeOutOfRange, ErrSelfLoop, or ErrDuplicateEdge on invalid input.
//
// AddEdge does not check acyclicity - the search guarantees it by
// construction. Use [Network.Validate] to verify the invariant.
func (g *Network) AddEdge(from, to int) error {
	if err := g.checkEdge(from, to); err != nil {
		return err
	}
	ps := g.parents[to]
	at, _ := slices.BinarySearch(ps, from)
	g.parents[to] = slices.Insert(slices.Clone(ps), at, from)
	return nil
}

// WithEdge returns a new network equal to g plus the edge from → to.
// Only the parent set of to is copied; all other parent sets are shared with
// g, so trial graphs during search are cheap and g is never mutated.
func (g *Network) WithEdge(from, to int) (*Network, error) {
	if err := g.checkEdge(from, to); err != nil {
		return nil, err
	}
	parents := slices.Clone(g.parents)
	ps := parents[to]
	at, _ := slices.BinarySearch(ps, from)
	parents[to] = slices.Insert(slices.Clone(ps), at, from)
	return &Network{parents: parents}, nil
}

func (g *Network) checkEdge(from, to int) error {
	if from < 0 || from >= len(g.parents) || to < 0 || to >= len(g.parents) {
		return ErrNodeOutOfRange
	}
	if from == to {
		return ErrSelfLoop
	}
	if slices.Contains(g.parents[to], from) {
		return ErrDuplicateEdge
	}
	return nil
}

// Clone returns a deep copy of the network.
func (g *Network) Clone() *Network {
	parents := make([][]int, len(g.parents))
	for i, ps := range g.parents {
		parents[i] = slices.Clone(ps)
	}
	return &Network{parents: parents}
}

// Edges returns all edges in deterministic order: children ascending, and
// within a child its parents ascending. Exporters rely on this order being
// stable across runs.
func (g *Network) Edges() []Edge {
	var edges []Edge
	for to, ps := range g.parents {
		for _, from := range ps {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}

// Validate checks that the network is acyclic and returns ErrCyclic if not.
// Detection uses depth-first search with white/gray/black coloring over the
// child adjacency, O(N+E).
func (g *Network) Validate() error {
	const (
		white = iota
		gray
		black
	)

	n := len(g.parents)
	children := make([][]int, n)
	for to, ps := range g.parents {
		for _, from := range ps {
			children[from] = append(children[from], to)
		}
	}

	color := make([]int, n)
	var hasCycle bool

	var dfs func(i int)
	dfs = func(i int) {
		color[i] = gray
		for _, c := range children[i] {
			switch color[c] {
			case white:
				dfs(c)
			case gray:
				hasCycle = true
				return
			}
		}
		color[i] = black
	}

	for i := 0; i < n; i++ {
		if color[i] == white {
			dfs(i)
			if hasCycle {
				return ErrCyclic
			}
		}
	}
	return nil
}
