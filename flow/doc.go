// Package flow implements maximum flow over gated core.Graphs with interval
// capacities, and the max-flow propagator built on it.
//
// The key algorithms offered are:
//
//   - Dinic
//
//   - Method: level graph construction + blocking flow via DFS.
//
//   - Time:   O(V² · E) in general, O(E · √V) on unit-capacity networks.
//
//   - Default.
//
//   - Edmonds–Karp
//
//   - Method: breadth-first search for shortest augmenting paths.
//
//   - Time:   O(V · E²).
//
// # Network
//
// A Network keeps one flow per edge. Capacities may be updated between runs;
// as long as every edge still carries no more than its new capacity the
// existing flow is kept and only augmented further. Self-loops never carry
// flow. A network whose source equals its sink has flow 0.
//
// # Propagator
//
// MaxFlow decides "maxflow(s,t) op bound" atoms. Per (s, t) it keeps:
//
//	– low:  edges known enabled, capacities at their lowest value;
//	– high: edges not known disabled, capacities at their highest value.
//
// The final maximum flow lies between the two values. Atoms are normalized
// to ≥ and > (≤ is ¬>, < is ¬≥).
//
// Explanations:
//
//	– true:  the enabled edges carrying flow in low, the known-one bits of
//	         their capacities and the known-zero bits of the bound;
//	– false: a minimum cut of high: each cut edge contributes its disabled
//	         literal or the known-zero bits of its capacity; the known-one
//	         bits of the bound are added.
//
// # Witness
//
// Value and EdgeFlow read the low network. With the acyclic option, flow
// cycles are cancelled first so that the reported edge flows form a DAG.
package flow
