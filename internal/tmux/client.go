// Package tmux wraps the tmux binary behind a small client. Callers never
// shell out themselves; everything funnels through a Runner so tests can
// substitute a fake.
package tmux

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/cgwt-sh/cgwt/internal/execx"
)

// listFormat is the -F format for list-sessions. Fields are pipe-delimited:
// name|windows|created|attached|group. The group field may be empty.
const listFormat = "#{session_name}|#{session_windows}|#{session_created}|#{session_attached}|#{session_group}"

// Client handles tmux operations.
type Client struct {
	runner execx.Runner
}

// NewClient creates a client backed by the real tmux binary.
func NewClient() *Client {
	return &Client{runner: execx.Exec{}}
}

// NewClientWithRunner creates a client with an injected runner (tests).
func NewClientWithRunner(r execx.Runner) *Client {
	return &Client{runner: r}
}

// IsInstalled checks if tmux is available.
func IsInstalled() bool {
	_, err := exec.LookPath("tmux")
	return err == nil
}

// EnsureInstalled returns an error if tmux is not installed.
func EnsureInstalled() error {
	if !IsInstalled() {
		return errors.New("tmux is not installed. Install it with: brew install tmux (macOS) or apt install tmux (Linux)")
	}
	return nil
}

// InTmux returns true if the current process runs inside a tmux session.
func InTmux() bool {
	return os.Getenv("TMUX") != ""
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	return c.runner.Run(ctx, "tmux", args...)
}

func (c *Client) runSilent(ctx context.Context, args ...string) error {
	_, err := c.run(ctx, args...)
	return err
}

// ListSessions returns all tmux sessions. A missing server or empty output
// is not an error; listing is always best-effort.
func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	output, err := c.run(ctx, "list-sessions", "-F", listFormat)
	if err != nil {
		msg := err.Error()
		if strings.Contains(msg, "no server running") ||
			strings.Contains(msg, "no sessions") ||
			strings.Contains(msg, "No such file or directory") ||
			strings.Contains(msg, "error connecting to") {
			return nil, nil
		}
		return nil, err
	}
	return ParseSessions(output), nil
}

// SessionExists checks if a session exists.
func (c *Client) SessionExists(ctx context.Context, session string) bool {
	return c.runSilent(ctx, "has-session", "-t", "="+session) == nil
}

// NewSession creates a detached session, rooted in directory and with its
// first window named window when given.
func (c *Client) NewSession(ctx context.Context, session, directory, window string) error {
	args := []string{"new-session", "-d", "-s", session}
	if window != "" {
		args = append(args, "-n", window)
	}
	if directory != "" {
		args = append(args, "-c", directory)
	}
	return c.runSilent(ctx, args...)
}

// IsDuplicateSessionErr reports whether an error from NewSession means the
// session already existed. Losing a creation race against another cgwt
// invocation surfaces this way and is not fatal.
func IsDuplicateSessionErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate session")
}

// NewWindow opens a new window in an existing session, rooted in directory
// when given, optionally running a command.
func (c *Client) NewWindow(ctx context.Context, session, directory, command string) error {
	args := []string{"new-window", "-t", session + ":"}
	if directory != "" {
		args = append(args, "-c", directory)
	}
	if command != "" {
		args = append(args, command)
	}
	return c.runSilent(ctx, args...)
}

// SendKeys types a command into the session's active pane and presses enter.
func (c *Client) SendKeys(ctx context.Context, session, keys string) error {
	if err := c.runSilent(ctx, "send-keys", "-t", session, "-l", "--", keys); err != nil {
		return err
	}
	return c.runSilent(ctx, "send-keys", "-t", session, "C-m")
}

// SetOption sets a session-scoped user option (e.g. "@cgwt_branch"). tmux
// itself is the only store for this metadata.
func (c *Client) SetOption(ctx context.Context, session, option, value string) error {
	return c.runSilent(ctx, "set-option", "-t", session, option, value)
}

// PaneCommands returns the current command of every pane in a session.
func (c *Client) PaneCommands(ctx context.Context, session string) ([]string, error) {
	output, err := c.run(ctx, "list-panes", "-s", "-t", session, "-F", "#{pane_current_command}")
	if err != nil {
		return nil, err
	}
	if output == "" {
		return nil, nil
	}
	return strings.Split(output, "\n"), nil
}

// CurrentSession returns the session name the current process is attached
// to, or "" when outside tmux.
func (c *Client) CurrentSession(ctx context.Context) string {
	if !InTmux() {
		return ""
	}
	output, err := c.run(ctx, "display-message", "-p", "#{session_name}")
	if err != nil {
		return ""
	}
	return output
}

// SwitchClient switches the attached tmux client to another session without
// blocking. Only valid inside tmux.
func (c *Client) SwitchClient(ctx context.Context, session string) error {
	return c.runSilent(ctx, "switch-client", "-t", session)
}

// Attach takes over the terminal and blocks until the tmux client exits.
// It returns tmux's exit code so the caller can propagate it.
func (c *Client) Attach(session string) (int, error) {
	cmd := exec.Command("tmux", "attach-session", "-t", session)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 1, fmt.Errorf("tmux attach-session -t %s: %w", session, err)
	}
	return 0, nil
}

// KillSession kills a tmux session.
func (c *Client) KillSession(ctx context.Context, session string) error {
	return c.runSilent(ctx, "kill-session", "-t", "="+session)
}
