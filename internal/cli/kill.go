package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cgwt-sh/cgwt/internal/registry"
	"github.com/cgwt-sh/cgwt/internal/resolve"
	"github.com/cgwt-sh/cgwt/internal/tmux"
)

var killCmd = &cobra.Command{
	Use:   "kill [address]",
	Short: "Kill a session (or all cgwt sessions with --all)",
	Long: `Kill the session an address resolves to. Only sessions created by cgwt
are touched; other tmux sessions are never candidates.

Examples:
  cgwt kill feature-x
  cgwt kill 0.1
  cgwt kill --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if killAll {
			return runKillAll()
		}
		if len(args) == 0 {
			return fmt.Errorf("missing address (or use --all)")
		}
		return runKill(args[0])
	},
}

var killAll bool

func init() {
	rootCmd.AddCommand(killCmd)
	killCmd.Flags().BoolVar(&killAll, "all", false, "Kill every cgwt session")
}

func runKill(addr string) error {
	if err := tmux.EnsureInstalled(); err != nil {
		return err
	}

	ctx := context.Background()
	client := tmux.NewClient()
	snap := registry.NewSnapshot(client, cfg.Agent.Command)
	sessions := snap.List(ctx)
	groups := registry.Group(sessions, client.CurrentSession(ctx))

	target, err := resolve.Grouped(groups, addr)
	if err != nil {
		return resolutionError(err)
	}
	if err := client.KillSession(ctx, target.SessionName); err != nil {
		return err
	}
	fmt.Printf("Killed session %q\n", target.SessionName)
	return nil
}

func runKillAll() error {
	if err := tmux.EnsureInstalled(); err != nil {
		return err
	}

	ctx := context.Background()
	client := tmux.NewClient()
	snap := registry.NewSnapshot(client, cfg.Agent.Command)

	killed := 0
	for _, s := range snap.List(ctx) {
		if err := client.KillSession(ctx, s.Name); err != nil {
			return fmt.Errorf("killing %s: %w", s.Name, err)
		}
		killed++
	}
	fmt.Printf("Killed %d session(s)\n", killed)
	return nil
}
