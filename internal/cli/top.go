package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTopCmd() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/leaderboard"
			if n > 0 {
				path = fmt.Sprintf("%s?n=%d", path, n)
			}

			var result Leaderboard
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "limit", "n", 0, "Number of entries to show (server default if 0)")

	return cmd
}
