// Package cli holds the pieces shared by the bpsim command-line tools.
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sarchlab/bpsim/predictor"
)

type strategyUsage struct {
	kind  predictor.Kind
	args  []string
	short string
}

var strategies = []strategyUsage{
	{predictor.KindAlways, nil, "Predict every branch taken"},
	{predictor.KindTwoBit, []string{"tablesize"},
		"Two-bit saturating counters indexed by PC"},
	{predictor.KindGShare, []string{"tablesize", "history_bits"},
		"Saturating counters indexed by PC and global history"},
	{predictor.KindGShareBest, []string{"tablesize"},
		"GShare with the best history width for the trace"},
	{predictor.KindProfiled, []string{"tablesize", "split"},
		"Static prediction profiled on the first part of the trace"},
}

// ParseStrategy builds the configuration for kind from its positional
// arguments, in the order they are typed on the command line.
func ParseStrategy(kind predictor.Kind, args []string) (predictor.Config, error) {
	usage, ok := findUsage(kind)
	if !ok {
		return predictor.Config{}, fmt.Errorf("%w: %q", predictor.ErrUnknownKind, kind)
	}

	if len(args) != len(usage.args) {
		return predictor.Config{}, fmt.Errorf(
			"%s expects %d argument(s), got %d", kind, len(usage.args), len(args))
	}

	config := predictor.DefaultConfig(kind)

	for i, name := range usage.args {
		var err error
		switch name {
		case "tablesize":
			config.TableSize, err = strconv.Atoi(args[i])
		case "history_bits":
			config.HistoryBits, err = strconv.Atoi(args[i])
		case "split":
			config.Split, err = strconv.ParseFloat(args[i], 64)
		}
		if err != nil {
			return predictor.Config{}, fmt.Errorf("invalid %s %q: %w", name, args[i], err)
		}
	}

	if err := config.Validate(); err != nil {
		return predictor.Config{}, err
	}

	return config, nil
}

func findUsage(kind predictor.Kind) (strategyUsage, bool) {
	for _, s := range strategies {
		if s.kind == kind {
			return s, true
		}
	}
	return strategyUsage{}, false
}

// StrategyCommands returns one subcommand per strategy. Each takes the
// trace path followed by the strategy's own arguments, and calls run with
// the parsed configuration.
func StrategyCommands(
	run func(cmd *cobra.Command, tracePath string, config predictor.Config) error,
) []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(strategies))

	for _, s := range strategies {
		use := string(s.kind) + " <trace>"
		for _, a := range s.args {
			use += " <" + a + ">"
		}

		cmd := &cobra.Command{
			Use:   use,
			Short: s.short,
			Args:  cobra.ExactArgs(1 + len(s.args)),
			RunE: func(cmd *cobra.Command, args []string) error {
				cmd.SilenceUsage = true

				config, err := ParseStrategy(s.kind, args[1:])
				if err != nil {
					return err
				}

				if cmd.Flags().Changed("address-bits") {
					bits, _ := cmd.Flags().GetInt("address-bits")
					config.AddressBits = predictor.Width(bits)
				}

				return run(cmd, args[0], config)
			},
		}

		if s.kind == predictor.KindGShare {
			cmd.Flags().Int("address-bits", 0,
				"number of PC bits in the index; 0 indexes by history alone "+
					"(default: the bits left by the history)")
		}

		cmds = append(cmds, cmd)
	}

	return cmds
}
