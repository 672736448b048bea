package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/gameportal/internal/api/request"
	"github.com/mcoot/gameportal/internal/services/game"
)

// newGameCmd groups single actions on the active game, for scripting
func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Drive the active game one action at a time",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameActionCmd("state", "Show the active game", ""))
	cmd.AddCommand(newGameActionCmd("tap", "Tap the tap counter", "/api/v1/play/tap"))
	cmd.AddCommand(newGameActionCmd("open", "Open a lucky box", "/api/v1/play/open"))
	cmd.AddCommand(newGameActionCmd("reset", "Return the active game to idle", "/api/v1/play/reset"))
	cmd.AddCommand(newGameActionCmd("restart", "Start the active game again", "/api/v1/play/restart"))
	cmd.AddCommand(newGamePressCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <slug>",
		Short: "Start a game, replacing any active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var snap game.Snapshot
			if err := client.Post("/api/v1/play/"+args[0], nil, &snap); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(snap)
			return nil
		},
	}
}

// newGameActionCmd builds a command that posts to path, or reads the
// active game when path is empty
func newGameActionCmd(use, short, path string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var snap game.Snapshot
			var err error
			if path == "" {
				err = client.Get("/api/v1/play", &snap)
			} else {
				err = client.Post(path, nil, &snap)
			}
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(snap)
			return nil
		},
	}
}

func newGamePressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "press <colour>",
		Short: "Press a memory game colour (" + colorLegend() + ")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("colour must be a number: %s", colorLegend())
			}

			var snap game.Snapshot
			if err := client.Post("/api/v1/play/press", request.PressRequest{Symbol: symbol}, &snap); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(snap)
			return nil
		},
	}
}
