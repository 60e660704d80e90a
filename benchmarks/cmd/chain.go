package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/zeu5/rl-experiment/benchmarks/chain"
	"github.com/zeu5/rl-experiment/benchmarks/common"
	"github.com/zeu5/rl-experiment/experiment"
	"github.com/zeu5/rl-experiment/logging"
)

func ChainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Run an agent on the chain environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			constructor, err := chain.PrepareExperiment(flags)
			if err != nil {
				return err
			}
			return runExperiment(cmd.OutOrStdout(), constructor, flags)
		},
	}
	AddAgentFlags(cmd.Flags())
	AddChainFlags(cmd.Flags())

	return cmd
}

// statesCounter is implemented by agents that keep a table of states
type statesCounter interface {
	States() int
}

func runExperiment(out io.Writer, constructor *experiment.ExperimentConstructor, flags *common.Flags) error {
	if flags.LogFormat != common.LogFormatTerminal && flags.LogFormat != common.LogFormatSlog {
		return fmt.Errorf("unknown log format %q", flags.LogFormat)
	}
	for run := 0; run < flags.NumRuns; run++ {
		exp := constructor.NewExperiment(run)
		slog.Info("starting run", "experiment", exp.Name, "run", run, "episodes", flags.Episodes)

		var live *logging.LiveTerminalLogger
		if flags.Verbose {
			switch flags.LogFormat {
			case common.LogFormatSlog:
				exp.Logger = logging.NewSlogLogger(slog.Default())
			default:
				live = logging.NewLiveTerminalLogger(out)
				exp.Logger = live
				live.Start()
			}
		}
		result, err := exp.Run(flags.Episodes, flags.Verbose)
		if live != nil {
			live.Stop()
		}
		if err != nil {
			return fmt.Errorf("experiment %s, run %d: %w", exp.Name, run, err)
		}

		line := fmt.Sprintf("Experiment: %s, Run %d, Episodes: %d", result.Name, run, result.Episodes)
		if s := result.Summary; s != nil {
			line += fmt.Sprintf(", Steps: %d, Mean return: %.3f, Std return: %.3f", s.Steps, s.MeanReturn, s.StdReturn)
		}
		if agent, ok := exp.Agent.(statesCounter); ok {
			line += fmt.Sprintf(", States: %d", agent.States())
		}
		fmt.Fprintln(out, line)
		slog.Debug("finished run", "experiment", exp.Name, "run", run)
	}
	return nil
}
