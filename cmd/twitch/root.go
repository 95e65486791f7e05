package main

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	refresh   bool
	list      bool
	installed string
	json      bool
	long      bool
	launch    string
	launcher  bool
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var opts rootOptions

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "twitch",
		Short: "List and launch games installed through the Twitch client",
		Example: `  twitch --refresh
  twitch --list --installed true
  twitch --launch "Some Game"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, ctx, &opts)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVar(&opts.refresh, "refresh", false, "Rebuild the game cache from the client registries")
	flags.BoolVar(&opts.list, "list", false, "List cached games")
	flags.StringVar(&opts.installed, "installed", "", "With --list, only show games whose installed state matches (true/false)")
	flags.BoolVar(&opts.json, "json", false, "With --list, print games as JSON")
	flags.BoolVar(&opts.long, "long", false, "With --list, print a table with install and launch details")
	flags.StringVarP(&opts.launch, "launch", "l", "", "Launch the game with this title")
	flags.BoolVar(&opts.launcher, "launcher", false, "Open the graphical game grid")

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newImagesCommand(ctx))
	rootCmd.AddCommand(newTagCommand(ctx))
	rootCmd.AddCommand(newLogsCommand(ctx))

	return rootCmd
}
