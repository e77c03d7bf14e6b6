package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/netlearn/pkg/bn"
)

// document is the on-disk JSON shape:
//
//	{
//	  "variables": [{"name": "age", "r": 3}, ...],
//	  "edges": [{"from": "age", "to": "income"}, ...]
//	}
//
// Edges reference variables by name so the file stays readable; indices are
// resolved on load.
type document struct {
	Variables []variable `json:"variables"`
	Edges     []edge     `json:"edges"`
}

type variable struct {
	Name string `json:"name"`
	R    int    `json:"r"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WriteJSON encodes the network and its variables as JSON to w.
// The output round-trips through [ReadJSON].
func WriteJSON(g *bn.Network, vars []bn.Variable, w io.Writer) error {
	doc := document{
		Variables: make([]variable, len(vars)),
		Edges:     make([]edge, 0, g.EdgeCount()),
	}
	for i, v := range vars {
		doc.Variables[i] = variable{Name: v.Name, R: v.R}
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, edge{From: vars[e.From].Name, To: vars[e.To].Name})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalJSON renders the network document as bytes. This is what the cache
// stores and the HTTP API returns.
func MarshalJSON(g *bn.Network, vars []bn.Variable) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(g, vars, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes the network document to a file at path.
func ExportJSON(g *bn.Network, vars []bn.Variable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, vars, f)
}

// ReadJSON decodes a network document from r, returning the network and the
// variable list it was learned against. Edge endpoints must name declared
// variables, and the decoded network must be acyclic.
func ReadJSON(r io.Reader) (*bn.Network, []bn.Variable, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("decode: %w", err)
	}

	vars := make([]bn.Variable, len(doc.Variables))
	for i, v := range doc.Variables {
		vars[i] = bn.Variable{Name: v.Name, R: v.R}
	}

	index := bn.IndexByName(vars)
	g := bn.NewNetwork(len(vars))
	for _, e := range doc.Edges {
		from, ok := index[e.From]
		if !ok {
			return nil, nil, fmt.Errorf("edge %s -> %s: %q: %w", e.From, e.To, e.From, ErrUnknownVariable)
		}
		to, ok := index[e.To]
		if !ok {
			return nil, nil, fmt.Errorf("edge %s -> %s: %q: %w", e.From, e.To, e.To, ErrUnknownVariable)
		}
		if err := g.AddEdge(from, to); err != nil {
			return nil, nil, fmt.Errorf("edge %s -> %s: %w", e.From, e.To, err)
		}
	}

	if err := g.Validate(); err != nil {
		return nil, nil, err
	}
	return g, vars, nil
}

// ImportJSON reads a network document from the file at path.
func ImportJSON(path string) (*bn.Network, []bn.Variable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
