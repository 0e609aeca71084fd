package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/cgwt-sh/cgwt/internal/output"
	"github.com/cgwt-sh/cgwt/internal/registry"
	"github.com/cgwt-sh/cgwt/internal/tmux"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List cgwt sessions grouped by project",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

var (
	projectStyle = lipgloss.NewStyle().Bold(true)
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	agentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

func runList() error {
	if err := tmux.EnsureInstalled(); err != nil {
		return err
	}

	ctx := context.Background()
	client := tmux.NewClient()
	snap := registry.NewSnapshot(client, cfg.Agent.Command)
	sessions := snap.List(ctx)
	groups := registry.Group(sessions, client.CurrentSession(ctx))

	agentRunning := make(map[string]bool, len(sessions))
	for _, s := range sessions {
		agentRunning[s.Name] = s.AgentRunning
	}

	formatter := output.New(jsonOutput)
	return formatter.Output(groups, func(w io.Writer) error {
		return renderGroups(w, groups, agentRunning)
	})
}

func renderGroups(w io.Writer, groups []registry.ProjectGroup, agentRunning map[string]bool) error {
	if len(groups) == 0 {
		_, err := fmt.Fprintln(w, "No sessions. Run 'cgwt <branch>' inside a worktree project to start one.")
		return err
	}

	color := output.StdoutIsTerminal()
	branchWidth := 0
	for _, g := range groups {
		for _, b := range g.Branches {
			if bw := runewidth.StringWidth(b.Branch); bw > branchWidth {
				branchWidth = bw
			}
		}
	}

	for i, g := range groups {
		header := g.Project
		if color {
			header = projectStyle.Render(header)
		}
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}
		for j, b := range g.Branches {
			marker := " "
			if b.IsActive {
				marker = "*"
				if color {
					marker = activeStyle.Render("*")
				}
			}
			agent := ""
			if agentRunning[b.SessionName] {
				agent = "agent"
				if color {
					agent = agentStyle.Render(agent)
				}
			}
			branch := runewidth.FillRight(b.Branch, branchWidth)
			if _, err := fmt.Fprintf(w, " %s %d.%d  %s  %s %s\n", marker, i, j, branch, b.SessionName, agent); err != nil {
				return err
			}
		}
	}
	return nil
}
