// SPDX-License-Identifier: MIT
//
// File: edge_state.go
// Role: Per-propagator edge status with a level-stamped undo log.
// Policy:
//   - Set records every change with its decision level.
//   - Backtrack(level) undoes exactly the changes made above level, newest first.

package core

// Status is the assignment state of an edge's control literal.
type Status int8

const (
	// Unknown means the control literal is unassigned.
	Unknown Status = iota

	// Enabled means the control literal is true.
	Enabled

	// Disabled means the control literal is false.
	Disabled
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Enabled:
		return "enabled"
	case Disabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// Change is one undo-log entry.
type Change struct {
	Edge  EdgeID
	Prev  Status
	Next  Status
	Level int
}

// EdgeState tracks Status per edge and an undo log.
// Levels passed to Set must be non-decreasing between backtracks.
type EdgeState struct {
	status []Status
	log    []Change
}

// NewEdgeState returns a state where all n edges are Unknown.
func NewEdgeState(n int) *EdgeState {
	return &EdgeState{status: make([]Status, n)}
}

// Len returns the number of tracked edges.
func (s *EdgeState) Len() int { return len(s.status) }

// Status returns the status of edge e.
func (s *EdgeState) Status(e EdgeID) Status { return s.status[e] }

// Enabled reports whether e is known enabled.
func (s *EdgeState) Enabled(e EdgeID) bool { return s.status[e] == Enabled }

// Disabled reports whether e is known disabled.
func (s *EdgeState) Disabled(e EdgeID) bool { return s.status[e] == Disabled }

// Set assigns st to e at level and logs the change.
// Returns false when e already has status st.
// Complexity: O(1).
func (s *EdgeState) Set(e EdgeID, st Status, level int) bool {
	prev := s.status[e]
	if prev == st {
		return false
	}
	s.log = append(s.log, Change{Edge: e, Prev: prev, Next: st, Level: level})
	s.status[e] = st

	return true
}

// Backtrack undoes every change made at a level strictly above level and
// returns the undone changes, newest first.
// Complexity: O(changes undone).
func (s *EdgeState) Backtrack(level int) []Change {
	i := len(s.log)
	for i > 0 && s.log[i-1].Level > level {
		i--
	}
	undone := s.log[i:]
	for k := len(undone) - 1; k >= 0; k-- {
		s.status[undone[k].Edge] = undone[k].Prev
	}
	s.log = s.log[:i]

	// Report newest first.
	out := make([]Change, len(undone))
	for k := range undone {
		out[k] = undone[len(undone)-1-k]
	}

	return out
}
