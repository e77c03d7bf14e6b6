// Package bn defines the core model types for discrete Bayesian networks:
// variables with finite state cardinalities, categorical datasets, and the
// network structure itself.
//
// # Model
//
// A [Variable] pairs a display name with its state cardinality r. Inside the
// library variables are addressed by their dense index 0..N-1; names only
// matter at the I/O boundary (CSV headers, gph edge lists).
//
// A [Dataset] holds the variables plus the observation rows. State codes are
// 1-indexed at this boundary, matching the on-disk CSV convention: row[i] is
// in {1..r_i}. A value of 0 is out of range.
//
// A [Network] is a directed acyclic graph over the variable indices,
// represented as one parent set per node. Structure search builds trial
// graphs with [Network.WithEdge], which copies only the affected parent set,
// so a rejected trial can simply be dropped instead of undone.
//
// # Example
//
//	g := bn.NewNetwork(3)
//	g.AddEdge(0, 1)
//	g.Parents(1) // [0]
//	g.Children(0) // [1]
package bn
