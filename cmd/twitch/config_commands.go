package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"twitch/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}
	configCmd.AddCommand(newConfigInitCommand(), newConfigValidateCommand(ctx))
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented sample configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := sampleTarget(targetPath)
			if err != nil {
				return err
			}
			if !overwrite {
				_, err := os.Stat(target)
				if err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				}
				if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("check config path: %w", err)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set product_db and install_db if the Twitch client keeps its registries somewhere else.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func sampleTarget(flagValue string) (string, error) {
	flagValue = strings.TrimSpace(flagValue)
	resolve := config.ExpandPath
	if flagValue == "" {
		resolve = func(string) (string, error) { return config.DefaultConfigPath() }
	}
	target, err := resolve(flagValue)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return target, nil
}

// newConfigValidateCommand loads the config itself so it can report whether
// the file existed.
func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate the configuration and show resolved settings",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var flagPath string
			if ctx.configFlag != nil {
				flagPath = strings.TrimSpace(*ctx.configFlag)
			}
			cfg, path, exists, err := config.Load(flagPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintln(out, renderTable(tableSpec{
				Headers:  []string{"Setting", "Value"},
				Rows:     settingRows(cfg),
				Colorize: shouldColorize(out),
			}))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func settingRows(cfg *config.Config) [][]string {
	opener := cfg.Launch.Opener
	if opener == "" {
		opener = "(platform default)"
	}
	return [][]string{
		{"Product registry", cfg.Paths.ProductDB},
		{"Install registry", cfg.Paths.InstallDB},
		{"Game cache", cfg.Paths.CacheFile},
		{"Image directory", cfg.Paths.ImageDir},
		{"Log file", cfg.LogFile()},
		{"Protocol scheme", cfg.Launch.ProtocolScheme},
		{"URL opener", opener},
		{"Image downloads", strconv.Itoa(cfg.Images.Concurrency) + " at a time, " + strconv.Itoa(cfg.Images.TimeoutSeconds) + "s timeout"},
		{"Log level", cfg.Logging.Level + " (" + cfg.Logging.Format + ")"},
	}
}
