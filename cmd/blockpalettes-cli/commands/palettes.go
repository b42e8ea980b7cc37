package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"blockpalettes/cmd/blockpalettes-cli/globals"
	"blockpalettes/cmd/blockpalettes-cli/utils"
	"blockpalettes/pkg/blockpalettes"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newPalettesCmd() *cobra.Command {
	var (
		blocks  []string
		sort    = blockpalettes.SortRecent
		page    uint32
		limit   uint32
		suggest bool
	)

	cmd := &cobra.Command{
		Use:   "palettes [--block <name>]... [--sort <order>] [--page <n>] [--limit <n>]",
		Short: "List palettes containing every given block.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := globals.Get(cmd.Context()).Client

			if suggest {
				suggestBlocks(cmd.Context(), client, blocks)
			}

			res, err := client.PalettesWithBlocks(cmd.Context(), blocks, sort, page, limit)
			if err != nil {
				return err
			}
			if !res.Success {
				slog.Warn("upstream reported failure for palette listing")
			}

			renderPalettes(cmd.OutOrStdout(), res.Palettes)
			fmt.Fprintf(
				cmd.OutOrStdout(),
				"upstream total: %d results over %d pages\n",
				res.TotalResults, res.TotalPages,
			)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&blocks, "block", nil, "Only list palettes containing this block, can be repeated.")
	flags.Var(&sort, "sort", "Sort order, one of recent, popular, oldest or trending.")
	flags.Uint32Var(&page, "page", 1, "Page to fetch, starting at 1.")
	flags.Uint32Var(&limit, "limit", 20, "Palettes per page.")
	flags.BoolVar(&suggest, "suggest", false, "Suggest a close block name for blocks the website does not know.")

	return cmd
}

// suggestBlocks logs the closest known name for every block that SearchBlocks
// does not return verbatim.
func suggestBlocks(ctx context.Context, client *blockpalettes.Client, blocks []string) {
	for _, block := range blocks {
		known, err := client.SearchBlocks(ctx, block)
		if err != nil {
			slog.Warn("failed to look up block", "block", block, "err", err)
			continue
		}
		suggestion, ok := closestBlock(block, known)
		if ok {
			slog.Warn("unknown block", "block", block, "did_you_mean", suggestion)
		}
	}
}

// closestBlock returns the best ranked name in `known`, ok is false when
// `block` is itself known or nothing was found.
func closestBlock(block string, known []string) (string, bool) {
	if len(known) == 0 || slices.Contains(known, block) {
		return "", false
	}
	return blockpalettes.RankBlocks(block, known)[0].Name, true
}

func renderPalettes(out io.Writer, palettes []blockpalettes.PaletteSummary) {
	t := utils.NewTable(out)
	t.AppendHeader(table.Row{"ID", "Blocks", "Likes", "Featured", "Posted"})
	for _, palette := range palettes {
		t.AppendRow(table.Row{
			palette.ID,
			utils.JoinBlocks(palette.Blocks),
			palette.Likes,
			utils.YesNo(palette.Featured),
			palette.TimeAgo,
		})
	}
	t.Render()
}
