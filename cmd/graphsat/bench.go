package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/graphsat/builder"
	"github.com/katalvlaran/graphsat/solver"
)

type benchOptions struct {
	topology string
	size     int
	seed     int64
	prob     float64
	runs     int
}

func newBenchCmd(o *options) *cobra.Command {
	b := benchOptions{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time reachability between the first and last node of a generated topology",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return b.run(o, cmd)
		},
	}

	cmd.Flags().StringVar(&b.topology, "topology", "grid", "one of path, cycle, grid, complete, random")
	cmd.Flags().IntVar(&b.size, "size", 8, "nodes, or grid side length")
	cmd.Flags().Int64Var(&b.seed, "seed", 1, "seed for random topologies and weights")
	cmd.Flags().Float64Var(&b.prob, "p", 0.2, "edge probability of the random topology")
	cmd.Flags().IntVar(&b.runs, "runs", 1, "number of timed solves")
	return cmd
}

func (b benchOptions) constructor() (builder.Constructor, int, error) {
	switch b.topology {
	case "path":
		return builder.Path(b.size), b.size, nil
	case "cycle":
		return builder.Cycle(b.size), b.size, nil
	case "grid":
		return builder.Grid(b.size, b.size), b.size * b.size, nil
	case "complete":
		return builder.Complete(b.size), b.size, nil
	case "random":
		return builder.RandomSparse(b.size, b.prob), b.size, nil
	default:
		return nil, 0, errors.Errorf("unknown topology %q", b.topology)
	}
}

func (b benchOptions) run(o *options, cmd *cobra.Command) error {
	con, nodes, err := b.constructor()
	if err != nil {
		return err
	}
	if b.runs < 1 {
		return errors.Errorf("runs must be >= 1, got %d", b.runs)
	}

	var total time.Duration
	for i := 0; i < b.runs; i++ {
		s := o.newSolver()
		top, err := builder.Build(s, nil,
			[]builder.BuilderOption{builder.WithSeed(b.seed + int64(i)), builder.WithUniformWeight(1, 9)}, con)
		if err != nil {
			return err
		}
		r, err := top.Graph.Reaches(0, solver.NodeID(nodes-1))
		if err != nil {
			return err
		}

		start := time.Now()
		ok, err := s.Solve(r)
		elapsed := time.Since(start)
		if err != nil {
			return errors.Wrapf(err, "run %d", i)
		}
		total += elapsed

		o.logger.WithFields(logrus.Fields{
			"run":    i,
			"sat":    ok,
			"rounds": s.Rounds(),
			"edges":  len(top.Edges),
			"took":   elapsed,
		}).Info("solved")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s size=%d runs=%d mean=%s\n",
		b.topology, b.size, b.runs, total/time.Duration(b.runs))
	return nil
}
