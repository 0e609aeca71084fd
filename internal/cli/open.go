package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cgwt-sh/cgwt/internal/gitx"
	"github.com/cgwt-sh/cgwt/internal/lifecycle"
	"github.com/cgwt-sh/cgwt/internal/name"
	"github.com/cgwt-sh/cgwt/internal/output"
	"github.com/cgwt-sh/cgwt/internal/registry"
	"github.com/cgwt-sh/cgwt/internal/resolve"
	"github.com/cgwt-sh/cgwt/internal/tmux"
)

var openCmd = &cobra.Command{
	Use:     "open <address>",
	Aliases: []string{"o", "switch"},
	Short:   "Open a session by address and attach or switch to it",
	Long: `Open resolves an address to a session and attaches to it, creating the
session (and, inside a worktree project, the branch worktree) first when
needed. Inside tmux the client switches instead of attaching.

Examples:
  cgwt open feature-x
  cgwt open 0.1
  cgwt open sup
  cgwt open 2 --flat`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOpen(args[0], openOptions{
			flat:     openFlat,
			command:  openCommand,
			noAttach: openNoAttach,
		})
	},
}

var (
	openFlat     bool
	openCommand  string
	openNoAttach bool
)

func init() {
	rootCmd.AddCommand(openCmd)
	openCmd.Flags().BoolVar(&openFlat, "flat", false, "Resolve bare indexes against a flat session list (single-project numbering)")
	openCmd.Flags().StringVar(&openCommand, "command", "", "Agent command to launch (default from config)")
	openCmd.Flags().BoolVarP(&openNoAttach, "detach", "d", false, "Create or reuse the session without attaching")
}

type openOptions struct {
	flat     bool
	command  string
	noAttach bool
}

// errNoRepoContext means the current directory gives no worktree context to
// create a session from; the original resolution error stands.
var errNoRepoContext = errors.New("no repository context")

func runOpen(addr string, opts openOptions) error {
	if err := tmux.EnsureInstalled(); err != nil {
		return err
	}

	ctx := context.Background()
	client := tmux.NewClient()

	agentCmd := cfg.Agent.Command
	if opts.command != "" {
		agentCmd = opts.command
	}
	snap := registry.NewSnapshot(client, agentCmd)
	sessions := snap.List(ctx)

	var (
		target resolve.Target
		rerr   error
	)
	if opts.flat {
		target, rerr = resolve.Flat(sessions, addr)
	} else {
		groups := registry.Group(sessions, client.CurrentSession(ctx))
		target, rerr = resolve.Grouped(groups, addr)
	}

	var req lifecycle.Request
	if rerr == nil {
		req = requestForTarget(ctx, target)
	} else {
		var err error
		req, err = requestFromRepo(ctx, addr)
		if errors.Is(err, errNoRepoContext) {
			return resolutionError(rerr)
		}
		if err != nil {
			return err
		}
	}
	req.AgentCmd = agentCmd
	req.NoAttach = opts.noAttach
	if req.Role == gitx.RoleSupervisor {
		req.WindowName = cfg.Tmux.SupervisorWindowName
	}

	ctrl := lifecycle.NewController(client, snap)
	res, err := ctrl.Open(ctx, req)
	if err != nil {
		return err
	}
	exitCode = res.ExitCode

	if opts.noAttach {
		fmt.Printf("Session %q %s (detached)\n", req.SessionName, res.Action)
	}
	return nil
}

// requestForTarget builds the open request for an already-running session,
// recovering its working directory from the worktree listing when the
// current directory belongs to a worktree project.
func requestForTarget(ctx context.Context, target resolve.Target) lifecycle.Request {
	req := lifecycle.Request{
		SessionName: target.SessionName,
		Project:     target.Project,
		Branch:      target.Branch,
		Role:        gitx.RoleChild,
	}
	if target.Branch == name.SupervisorBranch {
		req.Role = gitx.RoleSupervisor
	}

	parent, ok := worktreeParentDir()
	if !ok {
		return req
	}
	if req.Role == gitx.RoleSupervisor {
		req.Dir = parent
		return req
	}
	worktrees, err := gitx.NewClient().Worktrees(ctx, filepath.Join(parent, gitx.BareDir))
	if err != nil {
		return req
	}
	for _, wt := range worktrees {
		if wt.BranchName() == target.Branch {
			req.Dir = wt.Path
			break
		}
	}
	return req
}

// requestFromRepo handles addresses that resolve to no running session:
// inside a worktree project a branch name (or the supervisor alias) still
// names a legitimate target, backed by an existing or freshly added
// worktree.
func requestFromRepo(ctx context.Context, addr string) (lifecycle.Request, error) {
	if looksNumeric(addr) {
		return lifecycle.Request{}, errNoRepoContext
	}

	parent, ok := worktreeParentDir()
	if !ok {
		return lifecycle.Request{}, errNoRepoContext
	}
	project := filepath.Base(parent)

	if addr == resolve.AliasSupervisor || addr == resolve.AliasSup {
		return lifecycle.Request{
			SessionName: name.Encode(project, name.SupervisorBranch),
			Project:     project,
			Branch:      name.SupervisorBranch,
			Dir:         parent,
			Role:        gitx.RoleSupervisor,
		}, nil
	}

	branch := strings.TrimPrefix(addr, "refs/heads/")
	git := gitx.NewClient()
	bare := filepath.Join(parent, gitx.BareDir)

	dir := ""
	worktrees, err := git.Worktrees(ctx, bare)
	if err != nil {
		return lifecycle.Request{}, errNoRepoContext
	}
	for _, wt := range worktrees {
		if wt.BranchName() == branch {
			dir = wt.Path
			break
		}
	}
	if dir == "" {
		dir = filepath.Join(parent, cfg.Worktrees.Dir, name.Sanitize(branch))
		if err := git.AddWorktree(ctx, bare, dir, branch); err != nil {
			return lifecycle.Request{}, output.NewCLIError(fmt.Sprintf("cannot create worktree for branch %q", branch)).
				WithCause(err.Error()).
				WithHint("check that the branch name is valid: git -C " + bare + " branch -a")
		}
	}

	return lifecycle.Request{
		SessionName: name.Encode(project, branch),
		Project:     project,
		Branch:      name.Sanitize(branch),
		Dir:         dir,
		Role:        gitx.RoleChild,
	}, nil
}

// worktreeParentDir locates the worktree-parent directory for the current
// working directory: itself when it holds .bare, its parent when the cwd is
// one branch's working copy.
func worktreeParentDir() (string, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false
	}
	state, err := gitx.DetectState(cwd)
	if err != nil {
		return "", false
	}
	switch state {
	case gitx.StateWorktreeParent:
		return cwd, true
	case gitx.StateWorktree:
		return filepath.Dir(cwd), true
	default:
		return "", false
	}
}

func looksNumeric(addr string) bool {
	for _, r := range addr {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return len(addr) > 0
}
