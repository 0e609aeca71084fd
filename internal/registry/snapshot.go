// Package registry reconstructs the live set of cgwt sessions from tmux and
// partitions it by project. It holds no store of its own; every call
// re-queries the external source of truth.
package registry

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/cgwt-sh/cgwt/internal/name"
	"github.com/cgwt-sh/cgwt/internal/tmux"
)

// Session is one live cgwt session. Identity is Name, which is derived
// solely from (Project, Branch).
type Session struct {
	Name         string    `json:"name"`
	Project      string    `json:"project"`
	Branch       string    `json:"branch"`
	Windows      int       `json:"windows"`
	Created      time.Time `json:"created"`
	Attached     bool      `json:"attached"`
	AgentRunning bool      `json:"agent_running"`
}

// IsSupervisor reports whether this is the project's supervisor session.
func (s Session) IsSupervisor() bool {
	return s.Branch == name.SupervisorBranch
}

// Snapshot queries tmux for the current set of cgwt sessions.
type Snapshot struct {
	client *tmux.Client
	// agentProgram is the executable name whose presence in a pane counts
	// as "agent running", e.g. "claude".
	agentProgram string
}

// NewSnapshot creates a snapshot source. agentCommand may be a full command
// line; only its program name is matched against pane commands.
func NewSnapshot(client *tmux.Client, agentCommand string) *Snapshot {
	return &Snapshot{client: client, agentProgram: programName(agentCommand)}
}

// List returns all live cgwt sessions. Listing is total: any failure of the
// underlying tmux calls degrades to an empty (or partial) result, never an
// error.
func (s *Snapshot) List(ctx context.Context) []Session {
	raw, err := s.client.ListSessions(ctx)
	if err != nil {
		return nil
	}

	var sessions []Session
	for _, r := range raw {
		project, branch, ok := name.Decode(r.Name)
		if !ok {
			continue
		}
		sessions = append(sessions, Session{
			Name:         r.Name,
			Project:      project,
			Branch:       branch,
			Windows:      r.Windows,
			Created:      r.Created,
			Attached:     r.Attached,
			AgentRunning: s.agentRunning(ctx, r.Name),
		})
	}
	return sessions
}

// AgentRunning reports whether any pane of the session currently runs the
// agent program.
func (s *Snapshot) AgentRunning(ctx context.Context, session string) bool {
	return s.agentRunning(ctx, session)
}

func (s *Snapshot) agentRunning(ctx context.Context, session string) bool {
	commands, err := s.client.PaneCommands(ctx, session)
	if err != nil {
		return false
	}
	for _, cmd := range commands {
		if programName(cmd) == s.agentProgram {
			return true
		}
	}
	return false
}

func programName(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return filepath.Base(fields[0])
}
