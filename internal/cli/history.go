package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/gameportal/internal/api/response"
)

func newHistoryCmd() *cobra.Command {
	var gameID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show your play history, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/history"
			if gameID != "" {
				path += "?game=" + url.QueryEscape(gameID)
			}

			var history response.History
			if err := client.Get(path, &history); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(history)
			return nil
		},
	}

	cmd.Flags().StringVarP(&gameID, "game", "g", "", "Only show plays of this game ID")

	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [game-id]",
		Short: "Show your statistics for every game, or for one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if len(args) == 1 {
				var stats response.GameStats
				if err := client.Get("/api/v1/stats/"+url.PathEscape(args[0]), &stats); err != nil {
					return err
				}
				out.Print(stats)
				return nil
			}

			var list response.StatsList
			if err := client.Get("/api/v1/stats", &list); err != nil {
				return err
			}
			out.Print(list)
			return nil
		},
	}
}
