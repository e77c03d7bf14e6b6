package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/netlearn/pkg/bn"
)

func TestToDOT(t *testing.T) {
	vars := []bn.Variable{{Name: "age", R: 3}, {Name: "income", R: 2}}
	g := bn.NewNetwork(2)
	g.AddEdge(0, 1)

	dot := ToDOT(g, vars, Options{})

	for _, want := range []string{
		"digraph bn {",
		`"age" [label="age"];`,
		`"income" [label="income"];`,
		`"age" -> "income";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
}

func TestToDOT_Detailed(t *testing.T) {
	vars := []bn.Variable{{Name: "age", R: 3}, {Name: "income", R: 2}}
	g := bn.NewNetwork(2)
	g.AddEdge(0, 1)

	dot := ToDOT(g, vars, Options{Detailed: true})
	if !strings.Contains(dot, "r=2, parents=1") {
		t.Errorf("ToDOT(Detailed) missing cardinality label in:\n%s", dot)
	}
}

func TestToDOT_Deterministic(t *testing.T) {
	vars := []bn.Variable{{Name: "a", R: 2}, {Name: "b", R: 2}, {Name: "c", R: 2}}
	g := bn.NewNetwork(3)
	g.AddEdge(1, 2)
	g.AddEdge(0, 2)

	if a, b := ToDOT(g, vars, Options{}), ToDOT(g, vars, Options{}); a != b {
		t.Error("ToDOT() output differs between identical calls")
	}
}
