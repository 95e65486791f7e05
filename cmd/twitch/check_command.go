package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"twitch/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify registries, cache, and URL opener",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(ctx.runContext(cmd), cfg)
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Environment", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, line := range checkLines(results, colorize) {
				fmt.Fprintln(out, line)
			}
			if preflight.Failed(results) {
				return errors.New("environment check failed")
			}
			return nil
		},
	}
}
