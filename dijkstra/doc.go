// Package dijkstra provides single-source shortest paths over gated
// core.Graphs with interval edge weights, and the distance propagator built
// on them.
//
// Overview:
//
//   - Tree holds distances and predecessor edges from one source. Run builds
//     it with a lazy-decrease-key min-heap; Relax repairs it after one more
//     edge becomes usable, only touching nodes whose distance drops.
//   - Distance is a theory.Propagator for "dist(s,t) op bound" atoms, where
//     op is one of <, ≤, >, ≥ and bound is a constant or a bit-vector. Per
//     source it keeps two trees:
//   - low:  over edges not known disabled, with each weight at its lowest
//     possible value. Its distances never exceed the final distance.
//   - high: over edges known enabled, with each weight at its highest
//     possible value. Its distances are never below the final distance.
//
// Atoms are normalized to ≤ and < on construction (≥ is ¬<, > is ¬≤).
//
// Explanations:
//
//   - true:  the enabled edges of the high path, the known-zero bits of their
//     weights and the known-one bits of the bound.
//   - false: for every node u with low distance within the bound, each edge
//     leaving u contributes either its disabled literal or the known-one bits
//     of its weight; the known-zero bits of the bound are added.
//
// Unreachable targets have distance Inf, so ≥ and > hold and ≤ and < fail.
//
// Complexity:
//
//   - Run:   O((V + E) log V) time, O(V + E) space.
//   - Relax: O((V' + E') log V') over the improved part.
package dijkstra
