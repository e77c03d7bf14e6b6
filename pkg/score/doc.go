// Package score computes the Bayesian (Dirichlet-multinomial marginal
// likelihood) score of a network structure against a categorical dataset.
//
// # Pipeline
//
// Scoring a graph has three steps, each exposed separately:
//
//  1. [Count] tallies per-variable contingency tables over the graph's
//     parent sets (the sufficient statistics).
//  2. [Uniform] produces a matching all-ones Dirichlet prior.
//  3. [Evaluate] folds counts and prior into the total log marginal
//     likelihood (Cooper–Herskovits with α = 1).
//
// The score decomposes per variable given its parent set; [Family] computes
// a single variable's component, which is what structure search compares
// when trying parent candidates.
//
// # Table layout
//
// For variable i with parents P (ascending index order), the table has
// q_i = Π r_p rows and r_i columns. The row index encodes the joint parent
// state via mixed-radix encoding where the first (lowest-index) parent is
// the least significant digit. Counts and prior always use the same layout,
// so component scores are well defined.
//
// All scores are natural-log scale; higher is better.
package score
