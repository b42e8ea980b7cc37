package commands

import (
	"blockpalettes/cmd/blockpalettes-cli/globals"

	"github.com/spf13/cobra"
)

func newSimilarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "similar <id>",
		Short: "List palettes similar to the given one.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := globals.Get(cmd.Context()).Client
			id, err := parseId(args[0])
			if err != nil {
				return err
			}

			palettes, err := client.SimilarPalettes(cmd.Context(), id)
			if err != nil {
				return err
			}
			renderPalettes(cmd.OutOrStdout(), palettes)
			return nil
		},
	}
}
