// Package graphsat decides Boolean formulas over graph predicates: each
// edge of a graph is switched on or off by a literal, and predicates such
// as reachability, shortest distance, maximum flow and acyclicity become
// literals the SAT engine can branch on and learn from.
//
// Layout:
//
//	core/     gated graph: nodes, edges with control literals, weights, EdgeState undo log
//	theory/   atoms, registry, trail and the propagator coordinator
//	bfs/      reachability propagator with path witnesses
//	dijkstra/ shortest-distance propagator
//	flow/     maximum-flow propagator (Dinic, Edmonds–Karp) with cut explanations
//	dfs/      acyclicity propagator (directed DFS, undirected union-find)
//	solver/   the client API: Solver, Graph, BitVector, options, YAML config
//	metrics/  Prometheus recorder for solve outcomes and theory activity
//	builder/  topology constructors over solver graphs
//	cmd/graphsat demo and bench CLI
//
// Quick example:
//
//	    0───1
//	    │ ╱ │
//	    2───3
//
//	s := solver.New()
//	g, _ := s.NewGraph()
//	... add four nodes and the edges ...
//	r, _ := g.Reaches(0, 3)
//	ok, _ := s.Solve(r, e01.Not(), e23.Not())
//	// ok == false: every path from 0 to 3 uses e01 or e23
//
// The SAT engine is github.com/go-air/gini; the graph theories propagate
// inside its assumption scopes, check each of its models and refine it with
// learned clauses until the model is consistent with every predicate.
package graphsat
