package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cgwt-sh/cgwt/internal/gitx"
	"github.com/cgwt-sh/cgwt/internal/output"
	"github.com/cgwt-sh/cgwt/internal/tmux"
)

var setupCmd = &cobra.Command{
	Use:   "setup [repository]",
	Short: "Turn the current directory into a worktree-parent project",
	Long: `Setup clones a repository as the bare administrative tree (.bare) of the
current directory, preparing it for one-worktree-per-branch sessions.

In an empty directory a repository URL (or local path) is required. In a
plain repository the repository itself is cloned, leaving the original
checkout untouched next to the new layout.

Examples:
  mkdir myproject && cd myproject && cgwt setup git@github.com:me/myproject.git
  cd existing-clone && cgwt setup`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := ""
		if len(args) == 1 {
			src = args[0]
		}
		return runSetup(src)
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(src string) error {
	if err := tmux.EnsureInstalled(); err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	state, err := gitx.DetectState(cwd)
	if err != nil {
		return err
	}

	switch state {
	case gitx.StateWorktree, gitx.StateWorktreeParent:
		return output.NewCLIError("this directory is already part of a worktree project").
			WithHint("run 'cgwt list' to see its sessions")
	case gitx.StateNonGit:
		return output.NewCLIError("this directory is neither empty nor a Git repository").
			WithHint("run cgwt setup from an empty directory or an existing clone")
	case gitx.StateEmpty:
		if src == "" {
			return output.NewCLIError("an empty directory needs a repository to clone").
				WithHint("cgwt setup <url-or-path>")
		}
	case gitx.StatePlainRepo:
		if src == "" {
			src = "."
		}
	}

	if err := gitx.NewClient().CloneBare(context.Background(), cwd, src); err != nil {
		return fmt.Errorf("cloning %s: %w", src, err)
	}
	fmt.Printf("Initialized worktree parent in %s\n", cwd)
	fmt.Println("Next: cgwt <branch> to start a branch session, or cgwt sup for the supervisor.")
	return nil
}
