package bn

// Variable describes one discrete variable: a display name and the number of
// distinct states it can take. R is always at least 1; a variable with R == 1
// is constant but still valid.
//
// Variables are immutable once derived from data. Throughout the library they
// are addressed by their index in the dataset's variable list, not by name.
type Variable struct {
	Name string // column header from the data source
	R    int    // state cardinality (states are coded 1..R in data rows)
}

// Names returns the variable names in index order.
func Names(vars []Variable) []string {
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
	}
	return names
}

// IndexByName builds a name → index lookup for the given variables.
// Duplicate names keep the first occurrence.
func IndexByName(vars []Variable) map[string]int {
	m := make(map[string]int, len(vars))
	for i, v := range vars {
		if _, ok := m[v.Name]; !ok {
			m[v.Name] = i
		}
	}
	return m
}
