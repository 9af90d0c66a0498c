// SPDX-License-Identifier: MIT
// Package: graphsat/builder
//
// impl_path.go - Path(n).
//
// Contract:
//   - n ≥ 2 (else ErrTooFewVertices).
//   - Adds nodes idFn(0..n-1) in ascending order.
//   - Emits edges i → i+1 for i = 0..n-2.

package builder

import "fmt"

const (
	methodPath   = "Path"
	minPathNodes = 2
)

// Path returns a Constructor that builds the simple path P_n.
func Path(n int) Constructor {
	return func(t *Topology, cfg builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}
		ids, err := t.nodes(methodPath, n, cfg.idFn)
		if err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			if err := t.edge(methodPath, cfg, ids[i-1], ids[i]); err != nil {
				return err
			}
		}

		return nil
	}
}
