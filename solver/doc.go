// Package solver couples the gini SAT engine with graph-theory atoms.
//
// A Solver owns every literal. Clients build Graphs whose edges are switched
// by literals, ask graph questions that come back as literals, constrain
// those literals with ordinary clauses and call Solve:
//
//	s := solver.New()
//	g, _ := s.NewGraph()
//	for i := 0; i < 4; i++ {
//		g.AddNode()
//	}
//	e01, _ := g.AddEdge(0, 1)
//	...
//	r, _ := g.Reaches(0, 3)
//	ok, err := s.Solve(r, e02.Not())
//	path, _ := g.GetPathEdges(r)
//
// Atoms:
//
//	Reaches / ReachesBackward / OnPath   - bfs.Reach
//	CompareDistance / Distance           - dijkstra.Distance
//	CompareMaximumFlow / MaximumFlow     - flow.MaxFlow
//	Acyclic(directed)                    - dfs.Acyclic
//
// Identical questions return the same literal. Distance and MaximumFlow
// return a BitVector constrained to equal the measured quantity; BitVector
// comparisons against constants are plain circuits.
//
// Solving:
//
// gini has no theory callbacks, so each Solve runs refinement rounds. A round
// first tests the assumptions in a gini scope and propagates the theories
// over the watched variables (edges, weight bits, bound bits, atoms). What
// the theories imply, plus the edges they suggest for atoms still lacking
// support, is tested in further scopes until nothing changes. The engine
// then searches; the model is replayed into the theory.Coordinator, and
// every implication the model contradicts becomes a clause once the scopes
// are closed. A model the theories accept is returned. Each conflict clause
// excludes the current theory assignment, so the loop ends.
//
// Lifecycle:
//
//   - A graph accepts AddNode/AddEdge until the first Solve after it was
//     created; later calls fail with ErrFrozenGraph and change nothing.
//   - Atoms may be created at any time; they join the next Solve.
//   - Witness queries (GetPathNodes, GetPathEdges, GetMaxFlow, GetEdgeFlow)
//     read the last satisfying model and fail with ErrNoModel otherwise.
//
// Errors are sentinels wrapped with github.com/pkg/errors; test them with
// errors.Is. Logging goes through logrus and is silent by default; metrics
// go to an optional metrics.Recorder.
package solver
