package score

import (
	"errors"
	"fmt"

	"github.com/matzehuels/netlearn/pkg/bn"
)

// ErrDataOutOfRange is returned by [Count] when a data row holds a state
// outside a variable's 1..R range. The counting operation fails as a whole;
// no partial counts are returned.
var ErrDataOutOfRange = errors.New("data value out of range")

// Count tallies the sufficient statistics for every variable under the given
// graph: one contingency table per variable, shaped by its current parent
// set. Tables are recomputed from scratch; nothing is maintained
// incrementally across graph mutations.
func Count(ds *bn.Dataset, g *bn.Network) ([]Table, error) {
	tables := make([]Table, ds.NumVariables())
	for i := range tables {
		t, err := countFamily(ds, g, i)
		if err != nil {
			return nil, err
		}
		tables[i] = t
	}
	return tables, nil
}

// countFamily tallies the contingency table for a single variable.
func countFamily(ds *bn.Dataset, g *bn.Network, i int) (Table, error) {
	parents := g.Parents(i)
	t := NewTable(numParentStates(ds.Variables, parents), ds.Variables[i].R)

	for o, row := range ds.Rows {
		k, err := stateAt(ds, row, o, i)
		if err != nil {
			return Table{}, err
		}
		j, err := parentIndex(ds, row, o, parents)
		if err != nil {
			return Table{}, err
		}
		t.Add(j, k-1, 1)
	}
	return t, nil
}

// numParentStates returns q_i, the number of joint parent instantiations:
// the product of the parents' cardinalities, or 1 for an empty parent set.
func numParentStates(vars []bn.Variable, parents []int) int {
	q := 1
	for _, p := range parents {
		q *= vars[p].R
	}
	return q
}

// parentIndex maps the row's parent states to a linear table row via
// mixed-radix encoding. The first parent is the least significant digit, so
// the index is Σ (state_p - 1) · Π_{earlier parents} r. Empty parent sets
// map to row 0.
func parentIndex(ds *bn.Dataset, row []int, o int, parents []int) (int, error) {
	j, stride := 0, 1
	for _, p := range parents {
		v, err := stateAt(ds, row, o, p)
		if err != nil {
			return 0, err
		}
		j += (v - 1) * stride
		stride *= ds.Variables[p].R
	}
	return j, nil
}

// stateAt returns the 1-indexed state of variable i in the given row,
// rejecting anything outside 1..R.
func stateAt(ds *bn.Dataset, row []int, o, i int) (int, error) {
	if i >= len(row) {
		return 0, fmt.Errorf("row %d has no value for variable %q: %w", o, ds.Variables[i].Name, ErrDataOutOfRange)
	}
	v := row[i]
	if v < 1 || v > ds.Variables[i].R {
		return 0, fmt.Errorf("row %d, variable %q: state %d outside 1..%d: %w",
			o, ds.Variables[i].Name, v, ds.Variables[i].R, ErrDataOutOfRange)
	}
	return v, nil
}
