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
		Use:   "pongctl",
		Short: "CLI tool for the pong server",
		Long: `pongctl is a CLI tool for inspecting a running pong server.

It queries the server's JSON API for the leaderboard, live match status
and health, and can tail the spectator stream of the live match.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: PONGCTL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.GameAddr, "game-addr", cfg.GameAddr, "Game TCP address (env: PONGCTL_GAME_ADDR)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newTopCmd())
	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
