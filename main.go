// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"

	"github.com/cpmech/gocouple/fem"
	"github.com/cpmech/gocouple/inp"
	"github.com/cpmech/gocouple/kernels"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/gonum/floats"
)

// options holds the command line flags
type options struct {
	verbose  bool // show messages and debug logs
	threads  int  // number of threads; overrides the problem file if positive
	jacobian bool // also compute and print the Jacobian
	check    bool // compare the Jacobian with finite differences of the residual
	logger   *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		io.PfRed("\nERROR: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd returns the gocouple command and its subcommands
func newRootCmd() *cobra.Command {
	o := new(options)
	root := &cobra.Command{
		Use:           "gocouple",
		Short:         "Coupled-variable residual and Jacobian assembly with value-based kernels",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			config := zap.NewProductionConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if o.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			o.logger, err = config.Build()
			if err != nil {
				return chk.Err("cannot initialise logger:\n%v", err)
			}
			return
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if o.logger != nil {
				_ = o.logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "show messages and debug logs")

	assemble := &cobra.Command{
		Use:   "assemble <problem.yaml|problem.json>",
		Short: "Compute the global residual (and Jacobian) of a problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssemble(cmd.Context(), o, args[0])
		},
	}
	assemble.Flags().IntVarP(&o.threads, "threads", "n", 0, "number of threads; overrides the problem file")
	assemble.Flags().BoolVarP(&o.jacobian, "jacobian", "j", false, "also compute the Jacobian")
	assemble.Flags().BoolVar(&o.check, "check", false, "compare the Jacobian with finite differences")

	list := &cobra.Command{
		Use:   "kernels",
		Short: "List the available kernel types",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, t := range kernels.Types() {
				io.Pf("%s\n", t)
			}
		},
	}

	root.AddCommand(assemble, list)
	return root
}

// runAssemble reads a problem file and prints its residual and Jacobian
func runAssemble(ctx context.Context, o *options, fnpath string) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// problem
	sim, err := inp.ReadProblem(fnpath)
	if err != nil {
		return
	}
	if o.threads > 0 {
		sim.Threads = o.threads
	}
	if o.verbose && sim.Desc != "" {
		io.PfWhite("\n%s\n", sim.Desc)
	}
	dom, err := fem.NewDomain(sim, o.logger, o.verbose)
	if err != nil {
		return
	}

	// residual
	if err = dom.ComputeResidual(ctx); err != nil {
		return
	}
	io.Pf("\nresidual (|R| = %g)\n", floats.Norm(dom.Fb, 2))
	for i, r := range dom.Fb {
		io.Pf("%4d %23.15e\n", i, r)
	}
	if dom.Naux > 0 {
		io.Pf("\nauxiliary solution\n")
		for i, a := range dom.Aux.Solution {
			io.Pf("%4d %23.15e\n", i, a)
		}
	}
	if !o.jacobian {
		return
	}

	// Jacobian
	if err = dom.ComputeJacobian(ctx); err != nil {
		return
	}
	K := dom.Kb.ToDense()
	io.Pf("\njacobian (%d x %d)\n", K.M, K.N)
	for i := 0; i < K.M; i++ {
		for j := 0; j < K.N; j++ {
			io.Pf("%13.6e ", K.Get(i, j))
		}
		io.Pf("\n")
	}
	if !o.check {
		return
	}

	// finite differences
	_, maxdiff, err := dom.CheckJacobian(ctx, 0)
	if err != nil {
		return
	}
	io.Pf("\nmax |Kana - Knum| = %g\n", maxdiff)
	return
}
