package gitx

import "testing"

func TestParseWorktrees(t *testing.T) {
	input := `worktree /projects/myrepo/feature-x
HEAD 1234567890abcdef1234567890abcdef12345678
branch refs/heads/feature-x

worktree /projects/myrepo/.bare
HEAD abcdefabcdefabcdefabcdefabcdefabcdefabcd
bare

worktree /projects/myrepo/main
HEAD fedcba0987654321fedcba0987654321fedcba09
branch refs/heads/main
`
	entries := ParseWorktrees(input)
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	// Bare entry sorts first regardless of path or branch.
	if !entries[0].IsRoot || entries[0].Path != "/projects/myrepo/.bare" {
		t.Errorf("entries[0] = %+v, want the bare entry first", entries[0])
	}
	if entries[1].BranchName() != "feature-x" || entries[2].BranchName() != "main" {
		t.Errorf("branch order = %q, %q; want feature-x, main", entries[1].BranchName(), entries[2].BranchName())
	}
}

func TestParseWorktreesNoTrailingBlank(t *testing.T) {
	input := "worktree /w/solo\nHEAD 1111111111111111111111111111111111111111\nbranch refs/heads/solo"
	entries := ParseWorktrees(input)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Path != "/w/solo" || entries[0].BranchName() != "solo" {
		t.Errorf("entry = %+v", entries[0])
	}
}

func TestParseWorktreesEmpty(t *testing.T) {
	if got := ParseWorktrees(""); got != nil {
		t.Errorf("ParseWorktrees(\"\") = %+v, want nil", got)
	}
	if got := ParseWorktrees("\n\n"); got != nil {
		t.Errorf("blank input = %+v, want nil", got)
	}
}

func TestParseWorktreesDetachedHead(t *testing.T) {
	input := "worktree /w/detached\nHEAD 2222222222222222222222222222222222222222\n"
	entries := ParseWorktrees(input)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Branch != "" || entries[0].IsRoot {
		t.Errorf("entry = %+v, want no branch, not root", entries[0])
	}
}
