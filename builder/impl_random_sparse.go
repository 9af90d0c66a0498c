// SPDX-License-Identifier: MIT
// Package: graphsat/builder
//
// impl_random_sparse.go - RandomSparse(n, p).
//
// Model: Erdős–Rényi-like; every ordered pair (i, j), i ≠ j, is an edge
// independently with probability p. With WithBothDirections the unordered
// pairs i < j are drawn instead and each draw emits both directions.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewVertices).
//   - 0 ≤ p ≤ 1 (else ErrInvalidProbability).
//   - cfg.rng is required when 0 < p < 1 (else ErrNeedRandSource).
//
// Determinism: trials run i ascending, then j ascending, so a fixed seed
// gives a fixed edge set and order.

package builder

import "fmt"

const (
	methodRandomSparse      = "RandomSparse"
	minRandomSparseVertices = 1
	probMin                 = 0.0
	probMax                 = 1.0
)

// RandomSparse returns a Constructor that samples n nodes with independent
// edge probability p.
func RandomSparse(n int, p float64) Constructor {
	return func(t *Topology, cfg builderConfig) error {
		if n < minRandomSparseVertices {
			return fmt.Errorf("%s: n=%d < min=%d: %w",
				methodRandomSparse, n, minRandomSparseVertices, ErrTooFewVertices)
		}
		if p < probMin || p > probMax {
			return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w",
				methodRandomSparse, p, probMin, probMax, ErrInvalidProbability)
		}
		if cfg.rng == nil && p > probMin && p < probMax {
			return fmt.Errorf("%s: %w", methodRandomSparse, ErrNeedRandSource)
		}

		ids, err := t.nodes(methodRandomSparse, n, cfg.idFn)
		if err != nil {
			return err
		}

		// p ∈ {0,1} is decided without drawing.
		keep := func() bool {
			switch p {
			case probMin:
				return false
			case probMax:
				return true
			}
			return cfg.rng.Float64() < p
		}
		for i := 0; i < n; i++ {
			start := 0
			if cfg.bothWays {
				start = i + 1
			}
			for j := start; j < n; j++ {
				if i == j || !keep() {
					continue
				}
				if err := t.edge(methodRandomSparse, cfg, ids[i], ids[j]); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
