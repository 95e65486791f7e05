package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"twitch/internal/thumbnails"
)

func newImagesCommand(ctx *commandContext) *cobra.Command {
	var installedOnly bool

	cmd := &cobra.Command{
		Use:   "images",
		Short: "Download game thumbnails into the image cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService(cmd)
			if err != nil {
				return err
			}
			results, err := svc.FetchImages(ctx.runContext(cmd), installedOnly)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var downloaded, reused, skipped, failed int
			var total uint64
			for _, res := range results {
				switch {
				case errors.Is(res.Err, thumbnails.ErrNoImage):
					skipped++
				case res.Err != nil:
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", res.Title, res.Err)
				case res.Reused:
					reused++
				default:
					downloaded++
					total += uint64(res.Bytes)
				}
			}
			fmt.Fprintf(out, "Downloaded %d images (%s), reused %d, skipped %d, failed %d\n",
				downloaded, humanize.Bytes(total), reused, skipped, failed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&installedOnly, "installed", false, "Only fetch images for installed games")
	return cmd
}
