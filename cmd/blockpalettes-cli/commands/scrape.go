package commands

import (
	"blockpalettes/cmd/blockpalettes-cli/globals"
	"blockpalettes/cmd/blockpalettes-cli/utils"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newScrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape <id>",
		Short: "Read a palette's blocks and similar palettes from its web page.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := globals.Get(cmd.Context()).Client
			id, err := parseId(args[0])
			if err != nil {
				return err
			}

			extract, err := client.ScrapePalettePage(cmd.Context(), id)
			if err != nil {
				return err
			}

			t := utils.NewTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Blocks", "Similar palettes"})
			rows := max(len(extract.Blocks), len(extract.SimilarPaletteIDs))
			for i := range rows {
				row := table.Row{"", ""}
				if i < len(extract.Blocks) {
					row[0] = extract.Blocks[i]
				}
				if i < len(extract.SimilarPaletteIDs) {
					row[1] = extract.SimilarPaletteIDs[i]
				}
				t.AppendRow(row)
			}
			t.Render()
			return nil
		},
	}
}
