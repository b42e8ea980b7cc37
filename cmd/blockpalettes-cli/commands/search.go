package commands

import (
	"fmt"

	"blockpalettes/cmd/blockpalettes-cli/globals"
	"blockpalettes/cmd/blockpalettes-cli/utils"
	"blockpalettes/pkg/blockpalettes"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search block names, closest matches first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := globals.Get(cmd.Context()).Client
			query := args[0]

			blocks, err := client.SearchBlocks(cmd.Context(), query)
			if err != nil {
				return err
			}

			t := utils.NewTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Block", "Similarity"})
			for _, match := range blockpalettes.RankBlocks(query, blocks) {
				t.AppendRow(table.Row{match.Name, fmt.Sprintf("%.2f", match.Similarity)})
			}
			t.Render()
			return nil
		},
	}
}
