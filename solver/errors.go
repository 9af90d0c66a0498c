package solver

import (
	"errors"

	"github.com/katalvlaran/graphsat/core"
)

// Construction errors shared with core, re-exported so callers only import
// solver.
var (
	ErrFrozenGraph       = core.ErrFrozenGraph
	ErrNodeOutOfRange    = core.ErrNodeOutOfRange
	ErrNoSymbolicWeights = core.ErrNoSymbolicWeights
	ErrBitwidthMismatch  = core.ErrBitwidthMismatch
	ErrBadBitwidth       = core.ErrBadBitwidth
	ErrNegativeWeight    = core.ErrNegativeWeight
)

// Query and engine errors.
var (
	// ErrBadComparison indicates a Comparison outside GEQ, GT, LEQ, LT.
	ErrBadComparison = errors.New("solver: unknown comparison")

	// ErrForeignBitVector indicates a bit-vector created by another Solver.
	ErrForeignBitVector = errors.New("solver: bit-vector belongs to another solver")

	// ErrBadWidth indicates a bit-vector width outside [1, MaxWidth].
	ErrBadWidth = errors.New("solver: bit-vector width out of range")

	// ErrValueOutOfRange indicates a constant that does not fit its bit-vector.
	ErrValueOutOfRange = errors.New("solver: constant does not fit the bit-vector")

	// ErrWrongPropagatorKind indicates a witness query on a literal of the wrong kind.
	ErrWrongPropagatorKind = errors.New("solver: literal is not an atom of the queried kind")

	// ErrCrossGraphQuery indicates a witness query on an atom of another graph.
	ErrCrossGraphQuery = errors.New("solver: atom belongs to another graph")

	// ErrInvalidArgumentOrder indicates GetEdgeFlow(edge, flowAtom).
	ErrInvalidArgumentOrder = errors.New("solver: arguments are in the wrong order")

	// ErrSelfReferentialQuery indicates GetEdgeFlow(edge, edge).
	ErrSelfReferentialQuery = errors.New("solver: query refers to itself")

	// ErrNotAnEdge indicates an edge argument that is not an edge literal of the graph.
	ErrNotAnEdge = errors.New("solver: literal is not an edge of the graph")

	// ErrNoModel indicates a witness query without a satisfying model.
	ErrNoModel = errors.New("solver: no model; the last solve did not succeed")

	// ErrAtomNotTrue indicates a witness query on an atom that is false in the model.
	ErrAtomNotTrue = errors.New("solver: atom is not true in the model")

	// ErrRoundLimit indicates that MaxRounds refinement rounds did not settle.
	ErrRoundLimit = errors.New("solver: refinement round limit reached")

	// ErrIncomplete indicates that the SAT engine gave up without an answer.
	ErrIncomplete = errors.New("solver: engine returned no answer")
)
