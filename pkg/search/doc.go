// Package search implements K2, the greedy ordering-constrained structure
// search for Bayesian networks.
//
// K2 walks a caller-supplied variable ordering. For the variable at each
// position it repeatedly tries every earlier variable as an additional
// parent, scores each trial with the Bayesian score, and commits the single
// best edge - but only while the score strictly improves. Edges always point
// from an earlier position to a later one, so the result is acyclic by
// construction.
//
// The ordering is an input, not something this package invents: the same
// ordering always produces the same network. [Identity] and [Random] build
// orderings; Random takes an explicit seed so runs stay reproducible.
//
// # Example
//
//	k2 := search.K2{Ordering: search.Identity(ds.NumVariables())}
//	g, err := k2.Fit(ctx, ds)
package search
