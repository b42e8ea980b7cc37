package commands

import (
	"fmt"
	"strconv"

	"blockpalettes/cmd/blockpalettes-cli/globals"
	"blockpalettes/cmd/blockpalettes-cli/utils"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func parseId(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid palette id %q: %w", arg, err)
	}
	return id, nil
}

func newPaletteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palette <id>",
		Short: "Show a single palette.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := globals.Get(cmd.Context()).Client
			id, err := parseId(args[0])
			if err != nil {
				return err
			}

			palette, err := client.Palette(cmd.Context(), id)
			if err != nil {
				return err
			}

			posted := palette.Date
			date, err := palette.ParseDate()
			if err == nil {
				posted = fmt.Sprintf("%s (%s)", date.Format("Jan 2, 2006"), palette.TimeAgo)
			}

			t := utils.NewTable(cmd.OutOrStdout())
			t.AppendRows([]table.Row{
				{"ID", palette.ID},
				{"Creator", palette.Username},
				{"Posted", posted},
				{"Likes", palette.Likes},
				{"Featured", utils.YesNo(palette.Featured)},
				{"Hash", palette.Hash},
			})
			t.AppendSeparator()
			for i, block := range palette.Blocks {
				t.AppendRow(table.Row{fmt.Sprintf("Block %d", i+1), block})
			}
			t.Render()
			return nil
		},
	}
}
