// Package main provides branchsim, which runs one prediction strategy over
// a branch trace and prints its accuracy.
//
// Usage:
//
//	branchsim [flags] <strategy> <trace> [strategy arguments]
//
// For example:
//
//	branchsim gshare gcc.trace 4096 8
//	branchsim --btb profiled gcc.trace 1024 0.3
package main

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/spf13/cobra"

	"github.com/sarchlab/bpsim/cli"
	"github.com/sarchlab/bpsim/loader"
	"github.com/sarchlab/bpsim/predictor"
	"github.com/sarchlab/bpsim/report"
)

var (
	verbose    bool
	validate   bool
	useBTB     bool
	btbEntries int
	btbWays    int
	workers    int
	cpuProfile string
	memProfile string
)

var rootCmd = &cobra.Command{
	Use:   "branchsim",
	Short: "Simulate a branch prediction strategy over a trace.",
	Long: `branchsim replays a branch trace through one prediction strategy and ` +
		`reports how many conditional branches were predicted correctly.`,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return startCPUProfile()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "print progress and resource usage to stderr")
	flags.BoolVar(&validate, "validate", false, "validate every record before simulating")
	flags.BoolVar(&useBTB, "btb", false, "also score target prediction with a branch target buffer")
	flags.IntVar(&btbEntries, "btb-entries", 256, "branch target buffer entries")
	flags.IntVar(&btbWays, "btb-ways", 4, "branch target buffer associativity")
	flags.IntVar(&workers, "workers", 0, "gsharebest worker count (0 = one per CPU)")
	flags.StringVar(&cpuProfile, "cpuprofile", "", "write cpu profile to file")
	flags.StringVar(&memProfile, "memprofile", "", "write memory profile to file")

	rootCmd.AddCommand(cli.StrategyCommands(simulate)...)
}

func main() {
	cli.Exit(rootCmd.Execute())
}

func startCPUProfile() error {
	if cpuProfile == "" {
		return nil
	}

	f, err := os.Create(cpuProfile)
	if err != nil {
		return fmt.Errorf("failed to create CPU profile: %w", err)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}

	cli.OnExit(func() {
		pprof.StopCPUProfile()
		_ = f.Close()
	})

	return nil
}

func writeMemProfile() error {
	if memProfile == "" {
		return nil
	}

	f, err := os.Create(memProfile)
	if err != nil {
		return fmt.Errorf("failed to create memory profile: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("failed to write memory profile: %w", err)
	}

	return nil
}

func simulate(cmd *cobra.Command, tracePath string, config predictor.Config) error {
	t, err := loader.Load(tracePath, loader.Options{Validate: validate})
	if err != nil {
		return err
	}
	cli.OnExit(func() { _ = t.Close() })

	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded: %s (%d records)\n", t.Path, t.Records())
	}

	run := cli.Run{Config: config, Workers: workers}
	if useBTB {
		run.TargetBuffer = &predictor.TargetBufferConfig{
			Entries:       btbEntries,
			Associativity: btbWays,
		}
	}
	if verbose {
		run.Hooks = []sim.Hook{cli.NewVerboseHook(os.Stderr)}
	}

	res, err := run.Execute(context.Background(), t.Data)
	if err != nil {
		return err
	}

	if verbose {
		cli.ReportResources(os.Stderr)
	}

	if err := writeMemProfile(); err != nil {
		return err
	}

	return report.WriteSummary(cmd.OutOrStdout(), res)
}
