// Package theory defines the contract between the Boolean engine and the
// graph propagators, plus the bookkeeping that sits between them.
//
//   - Value is the three-valued assignment of a literal (True/False/Unknown).
//   - Registry maps literals to Atom records {Kind, Graph, params}. It owns
//     identity and polarity only, never algorithms.
//   - Trail is the ordered assignment with decision levels; it implements
//     Reader for propagators.
//   - Propagator is the assign/backtrack/propagate/explain interface every
//     graph theory implements.
//   - Coordinator dispatches assignments to the propagators watching each
//     variable, runs propagation to a fixpoint and turns explanations into
//     clauses.
//
// An explanation for an implied literal m is a slice of literals r1..rk that
// are true on the trail and together force m; the learned clause is
// (m ∨ ¬r1 ∨ … ∨ ¬rk).
package theory
