package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/netlearn/pkg/bn"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes each variable's cardinality and parent count in its
	// node label. When false, only the name is shown.
	Detailed bool
}

// ToDOT converts a network to Graphviz DOT. Nodes appear in variable index
// order and edges in the network's deterministic traversal order, so the
// output is stable across runs.
func ToDOT(g *bn.Network, vars []bn.Variable, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph bn {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for i, v := range vars {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", v.Name, fmtLabel(g, vars, i, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", vars[e.From].Name, vars[e.To].Name)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *bn.Network, vars []bn.Variable, i int, detailed bool) string {
	if !detailed {
		return vars[i].Name
	}
	return fmt.Sprintf("%s\nr=%d, parents=%d", vars[i].Name, vars[i].R, len(g.Parents(i)))
}

// RenderSVG renders a DOT graph to SVG using the embedded Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using the embedded Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
