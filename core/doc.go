// Package core provides the gated graph structure shared by every graph-theory
// propagator in graphsat.
//
// A Graph G = (V,E) is a directed multigraph whose edges are switched on and
// off by Boolean literals chosen by a SAT search:
//
//   - Nodes are dense integers in [0, NumNodes()), created by AddNode and never
//     removed.
//   - Edges carry a control literal and a Weight. A weight is either a constant
//     non-negative integer or a symbolic unsigned integer built from bit
//     literals (least significant bit first).
//   - Parallel edges and self-loops are always allowed.
//   - Adjacency is kept sorted by (neighbor NodeID, EdgeID) in both directions,
//     so every traversal in graphsat is deterministic.
//
// Lifecycle:
//
//	NewGraph(id, WithBitwidth(4))   // mutable
//	AddNode / AddEdge               // O(1) amortized, O(deg) adjacency insert
//	Freeze()                        // first solve; AddNode/AddEdge now fail
//
// Once frozen the node and edge universe never changes, which lets propagators
// size their arena arrays once and keep learned explanations valid.
//
// EdgeState is the per-propagator view of the current partial assignment over
// edges: every edge is Unknown, Enabled or Disabled, and every change is logged
// with its decision level so Backtrack is O(changes undone).
//
// Errors:
//
//	ErrFrozenGraph       - mutation after Freeze.
//	ErrNodeOutOfRange    - an endpoint is not in [0, NumNodes()).
//	ErrNoSymbolicWeights - symbolic weight on a graph with bitwidth -1.
//	ErrBitwidthMismatch  - symbolic weight width differs from the graph bitwidth.
//	ErrBadBitwidth       - WithBitwidth received a value that is neither -1 nor > 0.
//	EdgeError            - negative constant weight; unwraps to ErrNegativeWeight.
package core
