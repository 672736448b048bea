package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "portal",
		Short: "CLI tool for the game portal API",
		Long: `portal is a CLI tool for the game portal JSON API.

It manages accounts and sessions, shows the game catalog, play history and
statistics, and plays the Tap Counter, Memory Clicker and Lucky Box games
interactively.

Every request identifies this machine with a client ID, which is generated
on first use and saved to the client ID file. Each client ID has its own
accounts, session and history on the server.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.LoadClientID(); err != nil {
				return err
			}
			client = NewClient(cfg.ServerURL, cfg.ClientID)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: PORTAL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.ClientID, "client-id", cfg.ClientID, "Client ID (env: PORTAL_CLIENT_ID)")
	rootCmd.PersistentFlags().StringVar(&cfg.ClientIDFile, "client-id-file", cfg.ClientIDFile, "Client ID file path (env: PORTAL_CLIENT_ID_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newGamesCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newEventsCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
