// Package dfs provides cycle detection over gated core.Graphs and the
// acyclicity propagator built on it.
//
// Directed graphs are searched with three-color depth-first search; a back
// edge to a Gray vertex closes a cycle. Undirected graphs are scanned with a
// disjoint-set forest; an edge whose endpoints already share a root closes a
// cycle through the forest path between them. ClosingCycle answers the
// incremental question with a breadth-first search from the head of a newly
// enabled edge back to its tail. In all cases a self-loop is a cycle of
// length one, and in the undirected case two parallel edges form a
// cycle of length two.
package dfs

import "github.com/katalvlaran/graphsat/core"

// Vertex states of the directed search.
const (
	White = iota // not visited
	Gray         // on the recursion stack
	Black        // fully explored
)

// Name is the propagator name used in lemmas and metrics.
const Name = "acyclic"

// Allow reports whether an edge is present.
type Allow func(e core.EdgeID) bool
