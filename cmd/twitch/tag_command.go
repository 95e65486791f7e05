package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"twitch/internal/library"
)

func newTagCommand(ctx *commandContext) *cobra.Command {
	var (
		kids      bool
		players   int
		clearTags bool
	)

	cmd := &cobra.Command{
		Use:   "tag <title>",
		Short: "Set local tags on a cached game",
		Long: "Set local tags on a cached game. Tags live only in the game cache and\n" +
			"survive --refresh.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			a := library.Annotation{Clear: clearTags}
			if flags.Changed("kids") {
				a.Kids = &kids
			}
			if flags.Changed("players") {
				if players < 1 {
					return errors.New("--players must be at least 1")
				}
				a.Players = &players
			}
			if a.Kids == nil && a.Players == nil && !a.Clear {
				return errors.New("nothing to change; pass --kids, --players or --clear")
			}

			svc, err := ctx.ensureService(cmd)
			if err != nil {
				return err
			}
			game, err := svc.Annotate(ctx.runContext(cmd), args[0], a)
			if err != nil {
				return err
			}

			tags := tagSummary(game)
			if tags == "" {
				tags = "none"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", game.Title, tags)
			return nil
		},
	}

	cmd.Flags().BoolVar(&kids, "kids", false, "Mark the game as suitable for kids")
	cmd.Flags().IntVar(&players, "players", 0, "Maximum number of local players")
	cmd.Flags().BoolVar(&clearTags, "clear", false, "Remove existing tags before applying new ones")
	return cmd
}
