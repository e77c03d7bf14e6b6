package score

// Table is a dense q × r matrix of non-negative reals: one row per parent
// instantiation, one column per state of the variable itself. It backs both
// contingency counts and Dirichlet pseudo-counts.
//
// A variable with no parents has q == 1: a single row covering the empty
// parent instantiation.
type Table struct {
	q, r  int
	cells []float64
}

// NewTable creates a zeroed q × r table.
func NewTable(q, r int) Table {
	return Table{q: q, r: r, cells: make([]float64, q*r)}
}

// Rows returns q, the number of parent instantiations.
func (t Table) Rows() int { return t.q }

// Cols returns r, the variable's state cardinality.
func (t Table) Cols() int { return t.r }

// At returns the cell at parent instantiation j, state column k.
func (t Table) At(j, k int) float64 { return t.cells[j*t.r+k] }

// Add increments the cell at (j, k) by v.
func (t Table) Add(j, k int, v float64) { t.cells[j*t.r+k] += v }

// Fill sets every cell to v.
func (t Table) Fill(v float64) {
	for i := range t.cells {
		t.cells[i] = v
	}
}

// RowSum returns the sum over the state columns of row j.
func (t Table) RowSum(j int) float64 {
	var sum float64
	for k := 0; k < t.r; k++ {
		sum += t.cells[j*t.r+k]
	}
	return sum
}

// Total returns the sum of all cells.
func (t Table) Total() float64 {
	var sum float64
	for _, v := range t.cells {
		sum += v
	}
	return sum
}
