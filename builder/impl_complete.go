// SPDX-License-Identifier: MIT
// Package: graphsat/builder
//
// impl_complete.go - Complete(n).
//
// Contract:
//   - n ≥ 1 (else ErrTooFewVertices).
//   - Emits i → j for every i < j in lexicographic order; with
//     WithBothDirections each j → i follows its partner.

package builder

import "fmt"

const (
	methodComplete   = "Complete"
	minCompleteNodes = 1
)

// Complete returns a Constructor that builds K_n without self-loops.
func Complete(n int) Constructor {
	return func(t *Topology, cfg builderConfig) error {
		if n < minCompleteNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodComplete, n, minCompleteNodes, ErrTooFewVertices)
		}
		ids, err := t.nodes(methodComplete, n, cfg.idFn)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if err := t.edge(methodComplete, cfg, ids[i], ids[j]); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
