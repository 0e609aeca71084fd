package gitx

import (
	"os"
	"path/filepath"
	"strings"
)

// RepoState classifies what kind of directory cgwt was invoked from. It is
// computed from filesystem probes alone and decides which actions are legal
// and what role a new session gets.
type RepoState int

const (
	// StateEmpty: the directory exists and has no entries.
	StateEmpty RepoState = iota
	// StateNonGit: non-empty directory without any .git path.
	StateNonGit
	// StatePlainRepo: .git is a directory (ordinary clone).
	StatePlainRepo
	// StateWorktree: .git is a file pointing into a .bare administrative
	// tree; this directory is one branch's working copy.
	StateWorktree
	// StateWorktreeParent: the directory holds the .bare administrative
	// tree itself; sessions created here take the supervisor role.
	StateWorktreeParent
)

// BareDir is the administrative directory name of a cgwt worktree layout.
const BareDir = ".bare"

func (s RepoState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateNonGit:
		return "non-git"
	case StatePlainRepo:
		return "git-repo"
	case StateWorktree:
		return "worktree"
	case StateWorktreeParent:
		return "worktree-parent"
	default:
		return "unknown"
	}
}

// Role is the responsibility a session takes within its project.
type Role string

const (
	RoleSupervisor Role = "supervisor"
	RoleChild      Role = "child"
)

// RoleFor maps a repo state to the role a session created there receives.
func (s RepoState) RoleFor() Role {
	if s == StateWorktreeParent {
		return RoleSupervisor
	}
	return RoleChild
}

// DetectState classifies dir into one of the five repo states.
func DetectState(dir string) (RepoState, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return StateNonGit, err
	}
	if len(entries) == 0 {
		return StateEmpty, nil
	}

	if info, err := os.Stat(filepath.Join(dir, BareDir)); err == nil && info.IsDir() {
		return StateWorktreeParent, nil
	}

	gitPath := filepath.Join(dir, ".git")
	info, err := os.Stat(gitPath)
	if err != nil {
		return StateNonGit, nil
	}
	if info.IsDir() {
		return StatePlainRepo, nil
	}

	// .git as a file carries a "gitdir:" pointer for linked worktrees.
	data, err := os.ReadFile(gitPath)
	if err != nil {
		return StateNonGit, nil
	}
	if strings.HasPrefix(strings.TrimSpace(string(data)), "gitdir:") {
		return StateWorktree, nil
	}
	return StateNonGit, nil
}
