package tmux

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// recorder captures every invocation and replays canned responses.
type recorder struct {
	calls [][]string
	out   string
	err   error
}

func (r *recorder) Run(ctx context.Context, name string, args ...string) (string, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	return r.out, r.err
}

func (r *recorder) last() string {
	if len(r.calls) == 0 {
		return ""
	}
	return strings.Join(r.calls[len(r.calls)-1], " ")
}

func TestListSessionsNoServer(t *testing.T) {
	r := &recorder{err: errors.New("tmux list-sessions: exit status 1: no server running on /tmp/tmux-1000/default")}
	sessions, err := NewClientWithRunner(r).ListSessions(context.Background())
	if err != nil || sessions != nil {
		t.Errorf("no server should yield (nil, nil), got (%v, %v)", sessions, err)
	}
}

func TestListSessionsOtherError(t *testing.T) {
	r := &recorder{err: errors.New("tmux list-sessions: exit status 127: command not found")}
	if _, err := NewClientWithRunner(r).ListSessions(context.Background()); err == nil {
		t.Error("unexpected errors must surface")
	}
}

func TestSessionExists(t *testing.T) {
	r := &recorder{}
	c := NewClientWithRunner(r)
	if !c.SessionExists(context.Background(), "cgwt-p--b") {
		t.Error("expected exists")
	}
	// Exact-name matching: tmux -t prefix-matches unless the name is pinned.
	if got := r.last(); got != "tmux has-session -t =cgwt-p--b" {
		t.Errorf("call = %q", got)
	}
}

func TestNewSessionOmitsEmptyDirectory(t *testing.T) {
	r := &recorder{}
	c := NewClientWithRunner(r)
	if err := c.NewSession(context.Background(), "s", "", ""); err != nil {
		t.Fatal(err)
	}
	if got := r.last(); got != "tmux new-session -d -s s" {
		t.Errorf("call = %q", got)
	}
	if err := c.NewSession(context.Background(), "s", "/work", "supervisor"); err != nil {
		t.Fatal(err)
	}
	if got := r.last(); got != "tmux new-session -d -s s -n supervisor -c /work" {
		t.Errorf("call = %q", got)
	}
}

func TestSendKeysSendsLiteralThenEnter(t *testing.T) {
	r := &recorder{}
	if err := NewClientWithRunner(r).SendKeys(context.Background(), "s", "claude --continue"); err != nil {
		t.Fatal(err)
	}
	if len(r.calls) != 2 {
		t.Fatalf("got %d calls, want literal keys then C-m", len(r.calls))
	}
	if first := strings.Join(r.calls[0], " "); first != "tmux send-keys -t s -l -- claude --continue" {
		t.Errorf("first call = %q", first)
	}
	if second := strings.Join(r.calls[1], " "); second != "tmux send-keys -t s C-m" {
		t.Errorf("second call = %q", second)
	}
}

func TestIsDuplicateSessionErr(t *testing.T) {
	err := errors.New("tmux new-session -d -s x: exit status 1: duplicate session: x")
	if !IsDuplicateSessionErr(err) {
		t.Error("expected duplicate session detection")
	}
	if IsDuplicateSessionErr(errors.New("some other failure")) {
		t.Error("unrelated errors are not duplicates")
	}
	if IsDuplicateSessionErr(nil) {
		t.Error("nil is not a duplicate")
	}
}

func TestPaneCommands(t *testing.T) {
	r := &recorder{out: "zsh\nclaude"}
	commands, err := NewClientWithRunner(r).PaneCommands(context.Background(), "s")
	if err != nil {
		t.Fatal(err)
	}
	if len(commands) != 2 || commands[1] != "claude" {
		t.Errorf("commands = %v", commands)
	}
}
