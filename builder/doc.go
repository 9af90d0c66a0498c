// Package builder populates solver graphs with common topologies for
// benchmarks, demos and tests.
//
// Components:
//
//   - Build / Topology.Apply run Constructors in order against one graph.
//   - Constructors: Path, Cycle, Grid, Complete, RandomSparse.
//   - Options: WithSeed, WithRand, WithIDScheme, WithWeightFn,
//     WithBothDirections, plus the WithXIDs and WithXWeight shorthands.
//   - Labels: every node has a label from the ID scheme; constructors that
//     produce the same label share the node, so Path(3) followed by Cycle(5)
//     reuses nodes "0".."2".
//
// Every emitted edge gets its own control literal; Topology.Edges lists them
// in emission order, which is fixed for fixed inputs and seed.
//
// Errors are sentinels (ErrTooFewVertices, ErrInvalidProbability,
// ErrNeedRandSource, ErrConstructFailed) wrapped with %w; solver errors such
// as ErrFrozenGraph pass through the same way. Option constructors panic on
// meaningless values; Constructors never panic.
//
//	s := solver.New()
//	top, err := builder.Build(s, nil, []builder.BuilderOption{builder.WithSeed(7)},
//		builder.Grid(4, 4))
//	r, _ := top.Graph.Reaches(0, 15)
package builder
