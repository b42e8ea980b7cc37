package commands

import (
	"blockpalettes/cmd/blockpalettes-cli/globals"
	"blockpalettes/cmd/blockpalettes-cli/utils"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newPopularCmd() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "popular [--top <n>]",
		Short: "List the most used blocks.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := globals.Get(cmd.Context()).Client

			blocks, err := client.PopularBlocks(cmd.Context())
			if err != nil {
				return err
			}
			if top > 0 && top < len(blocks) {
				blocks = blocks[:top]
			}

			t := utils.NewTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"#", "Block", "Count"})
			for i, block := range blocks {
				t.AppendRow(table.Row{i + 1, block.Name, block.Count})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", 0, "Only show the first n blocks, 0 shows all of them.")
	return cmd
}
