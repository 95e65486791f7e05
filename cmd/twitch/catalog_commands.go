package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"twitch/internal/catalog"
	"twitch/internal/library"
)

var errLauncherUnavailable = errors.New("the graphical launcher is not part of this build; use --list and --launch instead")

func runRoot(cmd *cobra.Command, ctx *commandContext, opts *rootOptions) error {
	if opts.launcher {
		return errLauncherUnavailable
	}
	filter, err := parseInstalledFilter(opts.installed)
	if err != nil {
		return err
	}
	if !opts.list && (filter != nil || opts.json || opts.long) {
		return errors.New("--installed, --json and --long only apply to --list")
	}
	if opts.json && opts.long {
		return errors.New("--json and --long are mutually exclusive")
	}
	if !opts.refresh && !opts.list && opts.launch == "" {
		return cmd.Help()
	}

	svc, err := ctx.ensureService(cmd)
	if err != nil {
		return err
	}
	runCtx := ctx.runContext(cmd)
	out := cmd.OutOrStdout()

	var games []catalog.Game
	loaded := false
	if opts.refresh {
		games, err = svc.Refresh(runCtx)
		if err != nil {
			return err
		}
		loaded = true
		if !opts.list && opts.launch == "" {
			fmt.Fprintf(out, "Refreshed %d games (%d installed)\n",
				len(games), len(catalog.FilterInstalled(games, true)))
		}
	}

	if opts.list {
		if !loaded {
			if games, err = svc.Games(runCtx, false); err != nil {
				return err
			}
		}
		if filter != nil {
			games = catalog.FilterInstalled(games, *filter)
		}
		if err := printGames(cmd, catalog.SortByTitle(games), opts); err != nil {
			return err
		}
	}

	if opts.launch != "" {
		return launchGame(runCtx, cmd, svc, opts.launch)
	}
	return nil
}

// parseInstalledFilter returns nil when no filter was requested.
func parseInstalledFilter(raw string) (*bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("--installed: expected true or false, got %q", raw)
	}
	return &value, nil
}

func printGames(cmd *cobra.Command, games []catalog.Game, opts *rootOptions) error {
	out := cmd.OutOrStdout()
	switch {
	case opts.json:
		if games == nil {
			games = []catalog.Game{}
		}
		return writeJSON(out, games)
	case opts.long:
		if len(games) == 0 {
			fmt.Fprintln(out, "No games")
			return nil
		}
		fmt.Fprintln(out, renderTable(gameTable(games, shouldColorize(out))))
		return nil
	default:
		for _, g := range games {
			fmt.Fprintln(out, g.Title)
		}
		return nil
	}
}

func gameTable(games []catalog.Game, colorize bool) tableSpec {
	rows := make([][]string, 0, len(games))
	installed := 0
	for _, g := range games {
		if g.Installed {
			installed++
		}
		rows = append(rows, []string{
			g.Title,
			g.ASIN,
			yesNo(g.Installed),
			launchSummary(g),
			tagSummary(g),
		})
	}
	return tableSpec{
		Headers:  []string{"Title", "ASIN", "Installed", "Launch", "Tags"},
		Rows:     rows,
		Footer:   fmt.Sprintf("%d games, %d installed", len(games), installed),
		Colorize: colorize,
	}
}

func launchSummary(g catalog.Game) string {
	switch g.Kind() {
	case catalog.Direct:
		return "direct: " + g.Command
	case catalog.Indirect:
		return "url: " + g.URL
	default:
		if g.Installed {
			return "unresolved"
		}
		return ""
	}
}

func tagSummary(g catalog.Game) string {
	var tags []string
	if g.Kids != nil {
		tags = append(tags, "kids="+strconv.FormatBool(*g.Kids))
	}
	if g.Players != nil {
		tags = append(tags, "players="+strconv.Itoa(*g.Players))
	}
	return strings.Join(tags, " ")
}

func launchGame(ctx context.Context, cmd *cobra.Command, svc *library.Service, title string) error {
	res, err := svc.Launch(ctx, title)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch res.Kind {
	case catalog.Indirect:
		fmt.Fprintf(out, "Handed %s to the Twitch client (%s)\n", title, res.URL)
	default:
		fmt.Fprintf(out, "Started %s (pid %d)\n", title, res.PID)
	}
	return nil
}
