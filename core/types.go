// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: NodeID/EdgeID/Weight/Edge/Graph declarations, options and sentinel errors.
// Determinism:
//   - Edge IDs are assigned densely in insertion order.
//   - Adjacency slices are sorted by (neighbor, EdgeID).
// Concurrency:
//   - Graph is not safe for concurrent mutation; the owning solver serializes access.

package core

import (
	"errors"
	"fmt"

	"github.com/go-air/gini/z"
)

// Sentinel errors for graph construction.
var (
	// ErrFrozenGraph indicates AddNode/AddEdge after the graph was frozen by a solve.
	ErrFrozenGraph = errors.New("core: graph is frozen")

	// ErrNodeOutOfRange indicates an edge endpoint outside [0, NumNodes()).
	ErrNodeOutOfRange = errors.New("core: node out of range")

	// ErrNoSymbolicWeights indicates a symbolic weight on a graph built without a bitwidth.
	ErrNoSymbolicWeights = errors.New("core: graph does not accept symbolic weights")

	// ErrBitwidthMismatch indicates a symbolic weight whose width differs from the graph bitwidth.
	ErrBitwidthMismatch = errors.New("core: symbolic weight bitwidth mismatch")

	// ErrBadBitwidth indicates a bitwidth that is neither NoBitwidth nor positive.
	ErrBadBitwidth = errors.New("core: bitwidth must be -1 or positive")

	// ErrNegativeWeight is the cause carried by EdgeError.
	ErrNegativeWeight = errors.New("core: negative edge weight")
)

// NoBitwidth marks a graph that accepts only constant weights.
const NoBitwidth = -1

// DefaultWeight is the weight of an edge added without an explicit weight.
const DefaultWeight int64 = 1

// NodeID identifies a node inside one Graph.
type NodeID int

// EdgeID identifies an edge inside one Graph; it is also the edge's arena index.
type EdgeID int

// NoEdge is the sentinel "no parent edge" value used by traversal arrays.
const NoEdge EdgeID = -1

// Weight is either a constant or an unsigned integer assembled from bit
// literals, least significant bit first.
type Weight struct {
	// Const is the value when Bits is empty.
	Const int64

	// Bits are the bit literals of a symbolic weight (LSB first).
	Bits []z.Lit
}

// ConstWeight returns a constant weight.
func ConstWeight(w int64) Weight { return Weight{Const: w} }

// SymbolicWeight returns a weight bound to the given bit literals (LSB first).
func SymbolicWeight(bits []z.Lit) Weight {
	cp := make([]z.Lit, len(bits))
	copy(cp, bits)
	return Weight{Bits: cp}
}

// Symbolic reports whether the weight is bound to bit literals.
func (w Weight) Symbolic() bool { return len(w.Bits) > 0 }

// Width returns the number of bits of a symbolic weight, or 0 for a constant.
func (w Weight) Width() int { return len(w.Bits) }

// MaxValue returns the largest value the weight can take.
func (w Weight) MaxValue() int64 {
	if !w.Symbolic() {
		return w.Const
	}
	return int64(1)<<uint(len(w.Bits)) - 1
}

// Edge is a gated, weighted arc From→To.
type Edge struct {
	// ID is the dense index of the edge in its Graph.
	ID EdgeID

	// From and To are the endpoints.
	From, To NodeID

	// Weight is the length (distance) or capacity (flow) of the edge.
	Weight Weight

	// Lit is the control literal: the edge is enabled iff Lit is true.
	Lit z.Lit
}

// EdgeError is returned when an edge is given a negative constant weight.
type EdgeError struct {
	From, To NodeID
	Weight   int64
}

func (e EdgeError) Error() string {
	return fmt.Sprintf("core: negative weight on edge %d→%d: %d", e.From, e.To, e.Weight)
}

// Unwrap lets errors.Is match ErrNegativeWeight.
func (e EdgeError) Unwrap() error { return ErrNegativeWeight }

// GraphOption configures a Graph before creation.
type GraphOption func(g *Graph)

// WithBitwidth sets the width every symbolic weight of the graph must have.
// NoBitwidth (-1, the default) forbids symbolic weights.
func WithBitwidth(w int) GraphOption {
	return func(g *Graph) { g.bitwidth = w }
}

// Graph is the gated node/edge structure read by every propagator.
//
// out[u] holds the IDs of edges leaving u sorted by (To, ID);
// in[v] holds the IDs of edges entering v sorted by (From, ID).
type Graph struct {
	id       int
	bitwidth int
	frozen   bool

	nodes int
	edges []Edge
	out   [][]EdgeID
	in    [][]EdgeID

	// byVar maps a control literal's variable to its edge.
	byVar map[z.Var]EdgeID
}

// NewGraph creates an empty, mutable Graph with the given identity.
// Returns ErrBadBitwidth for a bitwidth that is neither -1 nor positive.
// Complexity: O(1).
func NewGraph(id int, opts ...GraphOption) (*Graph, error) {
	g := &Graph{
		id:       id,
		bitwidth: NoBitwidth,
		byVar:    make(map[z.Var]EdgeID),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.bitwidth != NoBitwidth && g.bitwidth <= 0 {
		return nil, ErrBadBitwidth
	}

	return g, nil
}
