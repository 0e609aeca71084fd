package gitx

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectState(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
		want  RepoState
	}{
		{
			name:  "empty directory",
			setup: func(t *testing.T, dir string) {},
			want:  StateEmpty,
		},
		{
			name: "non-git directory",
			setup: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, "notes.txt"), "hi")
			},
			want: StateNonGit,
		},
		{
			name: "plain repository",
			setup: func(t *testing.T, dir string) {
				mkdir(t, filepath.Join(dir, ".git"))
			},
			want: StatePlainRepo,
		},
		{
			name: "worktree",
			setup: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, ".git"), "gitdir: ../.bare/worktrees/feature\n")
			},
			want: StateWorktree,
		},
		{
			name: "worktree parent",
			setup: func(t *testing.T, dir string) {
				mkdir(t, filepath.Join(dir, BareDir))
			},
			want: StateWorktreeParent,
		},
		{
			name: ".git file without gitdir pointer",
			setup: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, ".git"), "garbage")
			},
			want: StateNonGit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)
			got, err := DetectState(dir)
			if err != nil {
				t.Fatalf("DetectState: %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectState = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRoleFor(t *testing.T) {
	if StateWorktreeParent.RoleFor() != RoleSupervisor {
		t.Error("worktree parent should get the supervisor role")
	}
	if StateWorktree.RoleFor() != RoleChild {
		t.Error("worktree should get the child role")
	}
}

func TestDetectStateMissingDir(t *testing.T) {
	if _, err := DetectState(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}
}
