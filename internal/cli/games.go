package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/gameportal/internal/api/response"
)

func newGamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games [slug]",
		Short: "List the game catalog, or show one game",
		Long: `List every game in the catalog.

With a slug, show that game's details. When logged in, your statistics
for the game are included.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if len(args) == 1 {
				var detail response.GameDetail
				if err := client.Get("/api/v1/games/"+args[0], &detail); err != nil {
					return err
				}
				out.Print(detail)
				return nil
			}

			var list response.GameList
			if err := client.Get("/api/v1/games", &list); err != nil {
				return err
			}
			out.Print(list)
			return nil
		},
	}
}
