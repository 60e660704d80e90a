package cmd

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "rlexp",
		Short:        "Run agents on environments for a fixed number of episodes",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			UpdateFlags()
			setupLogging(cmd.ErrOrStderr(), flags.Debug)
			if err := flags.Record(); err != nil {
				return err
			}
			slog.Debug("config recorded", "path", flags.ConfigPath())
			return nil
		},
	}
	AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		ChainCommand(),
	)

	return cmd
}

func setupLogging(out io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
}
