package cli

import (
	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match",
		Short: "Show the live match status",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MatchStatus
			if err := client.Get("/api/v1/match", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
