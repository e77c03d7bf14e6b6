// Package io provides serialization for learned Bayesian networks.
//
// Two formats are supported:
//
//   - gph: a plain edge list, one "<parent-name>, <child-name>" line per
//     edge. This is the canonical output of a structure-learning run and is
//     trivially diffable. It carries names only - re-reading a gph file
//     requires the variable list the network was learned against.
//   - JSON: a self-contained document holding variables (name, cardinality)
//     and edges. Round-trips without external context, which is what the
//     cache and the HTTP API use.
//
// Edge order in both formats follows the network's deterministic traversal
// (children ascending, parents ascending), so identical runs produce
// byte-identical files.
package io
