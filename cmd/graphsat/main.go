package main

import (
	"net/http"
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/graphsat/metrics"
	"github.com/katalvlaran/graphsat/solver"
)

type options struct {
	config      string
	metricsAddr string
	debug       bool

	logger     *logrus.Logger
	solverOpts []solver.Option
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:          "graphsat",
		Short:        "SAT modulo graph predicates",
		Long:         `Runs reachability, distance, maximum-flow and acyclicity scenarios on the graph theory solver.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.complete(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&o.config, "config", "", "path to a solver config YAML file")
	cmd.PersistentFlags().StringVar(&o.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	cmd.PersistentFlags().BoolVar(&o.debug, "debug", false, "log every refinement round")

	cmd.AddCommand(newDemoCmd(o), newBenchCmd(o))
	return cmd
}

// complete resolves flags into a logger and solver options.
func (o *options) complete(cmd *cobra.Command) error {
	o.logger = logrus.New()
	o.logger.SetOutput(cmd.ErrOrStderr())
	o.logger.SetLevel(logrus.InfoLevel)
	if o.debug {
		o.logger.SetLevel(logrus.DebugLevel)
	}
	o.solverOpts = []solver.Option{solver.WithLogger(o.logger)}

	if o.config != "" {
		cfg, err := solver.LoadConfig(o.config)
		if err != nil {
			return err
		}
		opts, err := cfg.Options()
		if err != nil {
			return errors.Wrapf(err, "config %s", o.config)
		}
		o.solverOpts = append(o.solverOpts, opts...)
		o.logger.WithField("path", o.config).Debug("loaded solver config")
	}

	if o.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		rec, err := metrics.NewRecorder(reg)
		if err != nil {
			return errors.Wrap(err, "registering metrics")
		}
		o.solverOpts = append(o.solverOpts, solver.WithMetrics(rec))

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(o.metricsAddr, mux); err != nil {
				o.logger.WithError(err).Error("metrics server stopped")
			}
		}()
		o.logger.WithField("addr", o.metricsAddr).Info("serving metrics")
	}

	return nil
}

func (o *options) newSolver() *solver.Solver {
	return solver.New(o.solverOpts...)
}
