// Copyright (c) 2021-2024 SigScalr, Inc.
//
// This file is part of SigLens Observability Solution
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/oklog/run"
	"github.com/siglens/sigbench/pkg/bench"
	"github.com/siglens/sigbench/pkg/config"
	"github.com/siglens/sigbench/pkg/config/common"
	"github.com/siglens/sigbench/pkg/fixtures"
	"github.com/siglens/sigbench/pkg/instrumentation"
	"github.com/siglens/sigbench/pkg/signature"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newStripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strip <signature>...",
		Short: "print each signature without its outer parentheses",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			for _, sig := range args {
				inner, ok := signature.StripOuterParentheses(sig)
				if ok {
					fmt.Fprintln(cmd.OutOrStdout(), inner)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: not wrapped\n", sig)
				}
			}
		},
	}
}

func newCompareCmd() *cobra.Command {
	var exitCode bool

	compareCmd := &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "compare two signatures, ignoring one layer of outer parentheses",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			equal := signature.Equal(args[0], args[1])
			log.Debugf("compare: %v equal=%v", signature.NewPair(args[0], args[1]), equal)
			fmt.Fprintln(cmd.OutOrStdout(), equal)
			if exitCode && !equal {
				return errNotEqual
			}
			return nil
		},
	}
	compareCmd.Flags().BoolVarP(&exitCode, "exit-code", "e", false, "Exit with status 1 when the signatures differ")

	return compareCmd
}

func newVerifyCmd() *cobra.Command {
	var fixturesFile string

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "check built-in and file fixtures against their expected outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fixturesFile == "" {
				fixturesFile = config.GetRunningConfig().FixturesFile
			}

			fixtureList := append(fixtures.Default(), fixtures.Properties()...)
			if fixturesFile != "" {
				fromFile, err := fixtures.LoadFile(fixturesFile)
				if err != nil {
					return err
				}
				fixtureList = append(fixtureList, fromFile...)
			}

			err := bench.NewRunner(*config.GetRunningConfig()).Verify(fixtureList)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d fixtures\n", len(fixtureList))
			return nil
		},
	}
	verifyCmd.Flags().StringVarP(&fixturesFile, "fixtures", "f", "", "yaml or json fixtures file")

	return verifyCmd
}

func newFixturesCmd() *cobra.Command {
	var generated int
	var seed int64

	fixturesCmd := &cobra.Command{
		Use:   "fixtures",
		Short: "list the benchmark fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *config.GetRunningConfig()
			if cmd.Flags().Changed("generated") {
				cfg.Generated = generated
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}

			fixtureList, err := loadFixtures(cfg)
			if err != nil {
				return err
			}
			for _, f := range fixtureList {
				fmt.Fprintln(cmd.OutOrStdout(), f.String())
			}
			return nil
		},
	}
	fixturesCmd.Flags().IntVarP(&generated, "generated", "g", 0, "Number of generated pairs to append")
	fixturesCmd.Flags().Int64Var(&seed, "seed", config.DEFAULT_SEED, "Seed for generated pairs")

	return fixturesCmd
}

type runFlags struct {
	iterations      uint64
	samples         int
	workers         int
	fixturesFile    string
	generated       int
	seed            int64
	reportFile      string
	metricsTextfile string
	metricsAddr     string
	noShuffle       bool
	comparators     []string
}

func newRunCmd() *cobra.Command {
	var flags runFlags

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "benchmark plain equality against parenthesis-insensitive equality",
		RunE: func(cmd *cobra.Command, args []string) error {
			applyRunFlags(cmd, &flags, config.GetRunningConfig())
			cfg := *config.GetRunningConfig()
			log.Infof("run: iterations=%v samples=%v workers=%v shuffle=%v", config.GetIterations(),
				config.GetSamples(), config.GetWorkers(), config.IsShuffleEnabled())

			comparators := make([]bench.Comparator, 0, len(flags.comparators))
			for _, name := range flags.comparators {
				c, ok := bench.ComparatorByName(name)
				if !ok {
					return fmt.Errorf("unknown comparator %q", name)
				}
				comparators = append(comparators, c)
			}

			fixtureList, err := loadFixtures(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var g run.Group

			benchCtx, cancelBench := context.WithCancel(ctx)
			defer cancelBench()
			g.Add(func() error {
				return runBenchmark(benchCtx, cmd, cfg, fixtureList, comparators)
			}, func(error) {
				cancelBench()
			})

			if cfg.MetricsListenAddr != "" {
				ln, err := instrumentation.Listen(cfg.MetricsListenAddr)
				if err != nil {
					return fmt.Errorf("metrics server: %w", err)
				}

				serveCtx, stopServe := context.WithCancel(ctx)
				defer stopServe()
				g.Add(func() error {
					err := instrumentation.ServeListener(serveCtx, ln)
					if err == nil && benchCtx.Err() == nil {
						// the benchmark is still running, so the server stopped on its own
						return fmt.Errorf("metrics server on %v stopped", ln.Addr())
					}
					return err
				}, func(error) {
					stopServe()
				})
			}

			return g.Run()
		},
	}

	runCmd.Flags().Uint64VarP(&flags.iterations, "iterations", "n", config.DEFAULT_ITERATIONS, "Comparisons per timed sample")
	runCmd.Flags().IntVarP(&flags.samples, "samples", "s", config.DEFAULT_SAMPLES, "Timed samples per fixture and comparator")
	runCmd.Flags().IntVarP(&flags.workers, "workers", "w", config.DEFAULT_WORKERS, "Goroutines sharing each sample")
	runCmd.Flags().StringVarP(&flags.fixturesFile, "fixtures", "f", "", "yaml or json fixtures file, replaces the built-in table")
	runCmd.Flags().IntVarP(&flags.generated, "generated", "g", 0, "Number of generated pairs to append")
	runCmd.Flags().Int64Var(&flags.seed, "seed", config.DEFAULT_SEED, "Seed for generated pairs")
	runCmd.Flags().StringVarP(&flags.reportFile, "report", "o", "", "Write the json report to this file")
	runCmd.Flags().StringVar(&flags.metricsTextfile, "metrics-textfile", "", "Write prometheus metrics to this file")
	runCmd.Flags().StringVar(&flags.metricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address while running")
	runCmd.Flags().BoolVar(&flags.noShuffle, "no-shuffle", false, "Run fixtures in table order")
	runCmd.Flags().StringSliceVar(&flags.comparators, "comparators", []string{bench.Baseline.Name, bench.PartialEq.Name}, "Comparators to benchmark")

	return runCmd
}

func applyRunFlags(cmd *cobra.Command, flags *runFlags, cfg *common.Configuration) {
	if cmd.Flags().Changed("iterations") && flags.iterations > 0 {
		cfg.Iterations = flags.iterations
	}
	if cmd.Flags().Changed("samples") && flags.samples > 0 {
		cfg.Samples = flags.samples
	}
	if cmd.Flags().Changed("workers") && flags.workers > 0 {
		cfg.Workers = flags.workers
		if cfg.Workers > config.MaxWorkers() {
			log.Warnf("applyRunFlags: workers=%v is above the limit, using %v", cfg.Workers, config.MaxWorkers())
			cfg.Workers = config.MaxWorkers()
		}
	}
	if cmd.Flags().Changed("fixtures") {
		cfg.FixturesFile = flags.fixturesFile
	}
	if cmd.Flags().Changed("generated") && flags.generated >= 0 {
		cfg.Generated = flags.generated
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = flags.seed
	}
	if cmd.Flags().Changed("report") {
		cfg.ReportFile = flags.reportFile
	}
	if cmd.Flags().Changed("metrics-textfile") {
		cfg.MetricsTextfile = flags.metricsTextfile
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.MetricsListenAddr = flags.metricsAddr
	}
	if flags.noShuffle {
		config.SetShuffleEnabled(false)
	}
}

// loadFixtures returns the fixtures file or the built-in table, followed by
// any generated pairs.
func loadFixtures(cfg common.Configuration) ([]fixtures.Fixture, error) {
	var fixtureList []fixtures.Fixture
	if cfg.FixturesFile != "" {
		fromFile, err := fixtures.LoadFile(cfg.FixturesFile)
		if err != nil {
			return nil, err
		}
		fixtureList = fromFile
	} else {
		fixtureList = fixtures.Default()
	}

	if cfg.Generated > 0 {
		fixtureList = append(fixtureList, fixtures.Generate(cfg.Generated, cfg.Seed)...)
	}

	return fixtureList, nil
}

func runBenchmark(ctx context.Context, cmd *cobra.Command, cfg common.Configuration,
	fixtureList []fixtures.Fixture, comparators []bench.Comparator) error {

	report, err := bench.NewRunner(cfg).Run(ctx, fixtureList, comparators)
	if err != nil {
		return err
	}

	report.LogSummary()
	err = report.WriteText(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if cfg.ReportFile != "" {
		err = report.WriteJSONFile(cfg.ReportFile)
		if err != nil {
			return err
		}
	}

	if cfg.MetricsTextfile != "" {
		err = instrumentation.WriteTextfile(cfg.MetricsTextfile)
		if err != nil {
			return err
		}
	}

	return nil
}
