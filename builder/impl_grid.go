// SPDX-License-Identifier: MIT
// Package: graphsat/builder
//
// impl_grid.go - Grid(rows, cols).
//
// Contract:
//   - rows ≥ 1 and cols ≥ 1 (else ErrTooFewVertices).
//   - Node labels are "r,c" in row-major order; the ID scheme is not used.
//   - For each cell in row-major order: emit the right link, then the down
//     link. Links point away from (0,0).
//
// Complexity: O(R*C) nodes and O(2*R*C) edges.

package builder

import (
	"fmt"

	"github.com/katalvlaran/graphsat/solver"
)

const (
	methodGrid = "Grid"
	minGridDim = 1
)

// Grid returns a Constructor that builds a rows×cols 4-neighbourhood grid.
func Grid(rows, cols int) Constructor {
	return func(t *Topology, cfg builderConfig) error {
		if rows < minGridDim || cols < minGridDim {
			return fmt.Errorf("%s: rows=%d, cols=%d < min=%d: %w",
				methodGrid, rows, cols, minGridDim, ErrTooFewVertices)
		}

		ids, err := t.nodes(methodGrid, rows*cols, func(i int) string { return gridID(i/cols, i%cols) })
		if err != nil {
			return err
		}
		cell := func(r, c int) solver.NodeID { return ids[r*cols+c] }

		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if c+1 < cols {
					if err := t.edge(methodGrid, cfg, cell(r, c), cell(r, c+1)); err != nil {
						return err
					}
				}
				if r+1 < rows {
					if err := t.edge(methodGrid, cfg, cell(r, c), cell(r+1, c)); err != nil {
						return err
					}
				}
			}
		}

		return nil
	}
}
