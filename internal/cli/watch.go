package cli

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jkothapalli/netpong/internal/model"
)

func newWatchCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Tail the spectator stream of the live match",
		Long: `watch connects to the game port as a spectator and prints each
state broadcast as it arrives. It refuses to take a paddle slot: if the
court is not full the connection is dropped immediately.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := net.DialTimeout("tcp", cfg.GameAddr, 10*time.Second)
			if err != nil {
				return fmt.Errorf("failed to connect to %s: %w", cfg.GameAddr, err)
			}
			defer func() { _ = conn.Close() }()

			reader := bufio.NewReader(conn)
			handshake, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read handshake: %w", err)
			}

			fields := strings.Fields(handshake)
			if len(fields) != 3 {
				return fmt.Errorf("unexpected handshake: %q", strings.TrimSpace(handshake))
			}
			if fields[2] != model.RoleObserver.Wire() {
				return fmt.Errorf("server offered a %s paddle slot; use a game client to play", fields[2])
			}

			for {
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("stream ended: %w", err)
				}
				line = strings.TrimRight(line, "\r\n")

				if raw {
					fmt.Println(line)
					continue
				}

				snap, err := model.ParseSnapshot(line)
				if err != nil {
					fmt.Println(line)
					continue
				}
				status := fmt.Sprintf("%d : %d  ball (%3d,%3d)", snap.LeftScore, snap.RightScore, snap.BallX, snap.BallY)
				if snap.GameOver {
					status += "  winner: " + snap.Winner.Wire()
				}
				fmt.Println(status)
			}
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print wire lines verbatim")

	return cmd
}
