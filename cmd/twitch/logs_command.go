package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"twitch/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var opts logs.Options

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent entries from the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.LogFile()
			if path == "" {
				return errors.New("no log file configured")
			}
			out := cmd.OutOrStdout()
			return logs.Tail(cmd.Context(), path, opts, func(line string) error {
				_, err := fmt.Fprintln(out, line)
				return err
			})
		},
	}

	cmd.Flags().IntVarP(&opts.Lines, "lines", "n", 20, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&opts.Follow, "follow", "f", false, "Keep printing new lines until interrupted")
	cmd.Flags().StringVar(&opts.Match, "grep", "", "Only show lines containing this text (for example a game title)")
	return cmd
}
