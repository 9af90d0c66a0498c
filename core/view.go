// SPDX-License-Identifier: MIT
//
// File: view.go
// Role: Direction-parametrized adjacency, giving a transposed (backward) view
//       of a Graph without copying it.

package core

// Direction selects the forward edge relation or its transpose.
type Direction uint8

const (
	// Forward follows edges From→To.
	Forward Direction = iota

	// Backward follows edges To→From.
	Backward
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Tail returns the node an edge is traversed from in direction d.
func (e Edge) Tail(d Direction) NodeID {
	if d == Backward {
		return e.To
	}
	return e.From
}

// Head returns the node an edge is traversed to in direction d.
func (e Edge) Head(d Direction) NodeID {
	if d == Backward {
		return e.From
	}
	return e.To
}

// Adjacent returns the edges traversable from u in direction d, sorted by
// (Head(d), ID).
func (g *Graph) Adjacent(u NodeID, d Direction) []EdgeID {
	if d == Backward {
		return g.in[u]
	}
	return g.out[u]
}
