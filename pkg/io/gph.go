package io

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/netlearn/pkg/bn"
)

var (
	// ErrBadEdgeLine is returned by [ReadGPH] for a line that is not of the
	// form "<parent-name>, <child-name>".
	ErrBadEdgeLine = errors.New("malformed gph edge line")

	// ErrUnknownVariable is returned by [ReadGPH] when an edge names a
	// variable that is not in the supplied variable list.
	ErrUnknownVariable = errors.New("unknown variable name")
)

// WriteGPH writes the network as a gph edge list: one
// "<parent-name>, <child-name>" line per edge, in the network's
// deterministic edge order.
func WriteGPH(g *bn.Network, vars []bn.Variable, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, e := range g.Edges() {
		if _, err := fmt.Fprintf(bw, "%s, %s\n", vars[e.From].Name, vars[e.To].Name); err != nil {
			return fmt.Errorf("write edge: %w", err)
		}
	}
	return bw.Flush()
}

// ExportGPH writes the network to a gph file at path.
func ExportGPH(g *bn.Network, vars []bn.Variable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGPH(g, vars, f)
}

// ReadGPH parses a gph edge list against the given variable list. Blank
// lines are skipped. Edges are re-validated on insertion, so duplicates and
// self loops surface as bn errors, and the resulting network is checked for
// cycles before being returned.
func ReadGPH(r io.Reader, vars []bn.Variable) (*bn.Network, error) {
	index := bn.IndexByName(vars)
	g := bn.NewNetwork(len(vars))

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		parent, child, ok := strings.Cut(line, ",")
		if !ok {
			return nil, fmt.Errorf("line %d: %q: %w", lineNo, line, ErrBadEdgeLine)
		}
		from, ok := index[strings.TrimSpace(parent)]
		if !ok {
			return nil, fmt.Errorf("line %d: %q: %w", lineNo, strings.TrimSpace(parent), ErrUnknownVariable)
		}
		to, ok := index[strings.TrimSpace(child)]
		if !ok {
			return nil, fmt.Errorf("line %d: %q: %w", lineNo, strings.TrimSpace(child), ErrUnknownVariable)
		}
		if err := g.AddEdge(from, to); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// ImportGPH reads a gph file at path against the given variable list.
func ImportGPH(path string, vars []bn.Variable) (*bn.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGPH(f, vars)
}
