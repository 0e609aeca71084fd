// Package gitx provides the git-facing half of cgwt: the worktree listing
// parser and the repository state detector. It shells out through
// execx.Runner; it keeps no state of its own.
package gitx

import (
	"context"
	"sort"
	"strings"

	"github.com/cgwt-sh/cgwt/internal/execx"
)

// Worktree is one record of `git worktree list --porcelain` output.
type Worktree struct {
	Path   string
	Head   string
	Branch string // full ref, e.g. refs/heads/main; empty for detached or bare
	IsRoot bool   // the bare/administrative entry
}

// BranchName returns the branch with any refs/heads/ prefix stripped.
func (w Worktree) BranchName() string {
	return strings.TrimPrefix(w.Branch, "refs/heads/")
}

// Client runs git commands.
type Client struct {
	runner execx.Runner
}

// NewClient creates a client backed by the real git binary.
func NewClient() *Client {
	return &Client{runner: execx.Exec{}}
}

// NewClientWithRunner creates a client with an injected runner (tests).
func NewClientWithRunner(r execx.Runner) *Client {
	return &Client{runner: r}
}

// Worktrees lists the worktrees of the repository at dir, sorted with the
// root entry first then by branch name.
func (c *Client) Worktrees(ctx context.Context, dir string) ([]Worktree, error) {
	output, err := c.runner.Run(ctx, "git", "-C", dir, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}
	return ParseWorktrees(output), nil
}

// CloneBare clones src as the bare administrative tree of a worktree-parent
// directory.
func (c *Client) CloneBare(ctx context.Context, dir, src string) error {
	_, err := c.runner.Run(ctx, "git", "-C", dir, "clone", "--bare", src, BareDir)
	return err
}

// AddWorktree checks out branch into path as a new worktree, creating the
// branch if it does not exist yet.
func (c *Client) AddWorktree(ctx context.Context, dir, path, branch string) error {
	_, err := c.runner.Run(ctx, "git", "-C", dir, "worktree", "add", path, branch)
	if err == nil {
		return nil
	}
	_, err = c.runner.Run(ctx, "git", "-C", dir, "worktree", "add", "-b", branch, path)
	return err
}

// ParseWorktrees parses porcelain worktree output: blank-line separated
// blocks of "worktree <path>", "HEAD <sha>", optional "branch <ref>" and an
// optional bare marker line. A trailing block without a terminating blank
// line is flushed too. The result is sorted root-first, then by branch name.
func ParseWorktrees(output string) []Worktree {
	var (
		entries []Worktree
		current Worktree
		open    bool
	)

	flush := func() {
		if open && current.Path != "" {
			entries = append(entries, current)
		}
		current = Worktree{}
		open = false
	}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		switch {
		case strings.HasPrefix(line, "worktree "):
			current.Path = strings.TrimPrefix(line, "worktree ")
			open = true
		case strings.HasPrefix(line, "HEAD "):
			current.Head = strings.TrimPrefix(line, "HEAD ")
			open = true
		case strings.HasPrefix(line, "branch "):
			current.Branch = strings.TrimPrefix(line, "branch ")
			open = true
		case line == "bare":
			current.IsRoot = true
			open = true
		}
	}
	flush()

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsRoot != entries[j].IsRoot {
			return entries[i].IsRoot
		}
		return entries[i].BranchName() < entries[j].BranchName()
	})
	return entries
}
