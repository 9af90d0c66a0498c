// Package bfs provides breadth-first search over gated core.Graphs and the
// reachability propagator built on it.
//
// What
//
//   - Walk explores nodes in non-decreasing hop distance from a source,
//     following edges in either direction and only those an Allow predicate
//     accepts. The result is a Tree with parent edges, depths and visit order.
//   - Tree.Extend grows an existing tree after one more edge becomes
//     traversable, without re-walking what is already reached.
//   - Reach is a theory.Propagator for reaches(s,t) and reachesBackward(s,t)
//     atoms. Per (source, direction) it keeps two trees:
//   - under: over edges known enabled (pessimistic reachability);
//   - over:  over edges not known disabled (optimistic reachability).
//     An atom is implied true once under reaches its target and implied false
//     once over misses it.
//
// Explanations
//
//   - true:  the control literals of the under-tree path source→target;
//   - false: the negated literals of the disabled edges leaving the over set,
//     which form a cut separating source from target.
//
// Determinism
//
//	core.Graph keeps adjacency sorted by (neighbor, EdgeID) and Walk scans it
//	in that order, so among all fewest-edge paths the witness is the one whose
//	first divergence takes the lowest neighbor, then the lowest edge ID.
//
// Incrementality
//
//	Enabling an edge extends under; disabling a tree edge of over marks it
//	stale; backtracking extends over or marks under stale. Stale trees are
//	re-walked lazily on the next Propagate.
//
// Complexity:
//
//   - Walk: O(V + E).
//   - Extend: O(V' + E') over the newly reached part.
//   - Propagate: O(groups·(V + E)) worst case, O(atoms) when nothing is stale.
package bfs
