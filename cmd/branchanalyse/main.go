// Package main provides branchanalyse, which sweeps predictor
// configurations over traces and writes the result tables as CSV.
//
// Usage:
//
//	branchanalyse all-predictors <trace>
//	branchanalyse gshare-history-range <trace>
//	branchanalyse traces <dir> [--per-trace] [--analysis gshare-history-range]
//	branchanalyse default-config <path>
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/bpsim/cli"
	"github.com/sarchlab/bpsim/sweep"
)

var (
	configPath string
	dbPath     string
	verbose    bool
	validate   bool
	workers    int
	split      float64
	perTrace   bool
	analysis   string
)

var rootCmd = &cobra.Command{
	Use:   "branchanalyse",
	Short: "Branch prediction sweeps for analysis.",
	Long: `branchanalyse evaluates grids of predictor configurations over one ` +
		`trace or a directory of traces and writes one CSV row per configuration.`,
	SilenceErrors: true,
}

var allPredictorsCmd = &cobra.Command{
	Use:   "all-predictors <trace>",
	Short: "Compare every strategy at every table size",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		a, err := newAnalyser(cmd)
		if err != nil {
			return err
		}
		return a.single(context.Background(), args[0], analysisAllPredictors)
	},
}

var historyRangeCmd = &cobra.Command{
	Use:   "gshare-history-range <trace>",
	Short: "Evaluate GShare at every table size and history width",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		a, err := newAnalyser(cmd)
		if err != nil {
			return err
		}
		return a.single(context.Background(), args[0], analysisHistoryRange)
	},
}

var tracesCmd = &cobra.Command{
	Use:   "traces <dir>",
	Short: "Run one analysis over every trace in a directory",
	Long: `Runs the selected analysis over every regular file in <dir> and writes ` +
		`the tables combined with weights proportional to trace length, or one ` +
		`labeled table per trace with --per-trace.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		a, err := newAnalyser(cmd)
		if err != nil {
			return err
		}
		return a.traces(context.Background(), args[0], analysis, perTrace)
	},
}

var defaultConfigCmd = &cobra.Command{
	Use:   "default-config <path>",
	Short: "Write the default sweep configuration as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return sweep.DefaultConfig().SaveConfig(args[0])
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to a JSON sweep configuration")
	flags.StringVar(&dbPath, "db", "", "also record tables to <db>.sqlite3")
	flags.BoolVarP(&verbose, "verbose", "v", false, "print progress and resource usage to stderr")
	flags.BoolVar(&validate, "validate", false, "validate every record before analysing")
	flags.IntVar(&workers, "workers", 0, "worker count, overrides the configuration")
	flags.Float64Var(&split, "split", 0.5, "profiled training fraction, overrides the configuration")

	tracesCmd.Flags().BoolVar(&perTrace, "per-trace", false, "write one labeled table per trace")
	tracesCmd.Flags().StringVar(&analysis, "analysis", analysisAllPredictors,
		fmt.Sprintf("analysis to run (%s or %s)", analysisAllPredictors, analysisHistoryRange))

	rootCmd.AddCommand(allPredictorsCmd, historyRangeCmd, tracesCmd, defaultConfigCmd)
}

func main() {
	cli.Exit(rootCmd.Execute())
}

func newAnalyser(cmd *cobra.Command) (*analyser, error) {
	config := sweep.DefaultConfig()
	if configPath != "" {
		var err error
		config, err = sweep.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("workers") {
		config.Workers = workers
	}
	if cmd.Flags().Changed("split") {
		config.Split = split
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sweep config: %w", err)
	}

	return &analyser{
		config:   config,
		verbose:  verbose,
		validate: validate,
		dbPath:   dbPath,
		out:      cmd.OutOrStdout(),
		log:      os.Stderr,
	}, nil
}
