package score

import "github.com/matzehuels/netlearn/pkg/bn"

// Uniform produces the uniform Dirichlet prior for every variable: tables
// shape-matched to what [Count] yields for the same graph, with every
// pseudo-count set to 1. The graph is assumed to be a validated DAG.
func Uniform(ds *bn.Dataset, g *bn.Network) []Table {
	tables := make([]Table, ds.NumVariables())
	for i := range tables {
		tables[i] = uniformFamily(ds, g, i)
	}
	return tables
}

func uniformFamily(ds *bn.Dataset, g *bn.Network, i int) Table {
	t := NewTable(numParentStates(ds.Variables, g.Parents(i)), ds.Variables[i].R)
	t.Fill(1)
	return t
}
