// Package render turns learned networks into Graphviz DOT and rasterized
// output.
//
// [ToDOT] emits a deterministic DOT document: nodes in variable order, edges
// in the network's traversal order. [RenderSVG] and [RenderPNG] run the DOT
// through the embedded Graphviz (goccy/go-graphviz, WASM-backed, no system
// dot binary required).
package render
