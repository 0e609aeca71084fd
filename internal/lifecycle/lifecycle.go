// Package lifecycle decides, for one target session, whether to create it,
// reuse it, or just attach, and executes the tmux commands for that
// decision. It is the only package that mutates external state.
package lifecycle

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cgwt-sh/cgwt/internal/gitx"
	"github.com/cgwt-sh/cgwt/internal/registry"
	"github.com/cgwt-sh/cgwt/internal/tmux"
)

// ContextFileName is written into the session's working directory before
// every create/reuse, so the agent inside can discover its own role.
const ContextFileName = ".cgwt-session.yaml"

// CreateOutcome tags the result of the create step. AlreadyExisted is the
// lost-race case and continues down the reuse path instead of failing.
type CreateOutcome int

const (
	Created CreateOutcome = iota
	AlreadyExisted
	Failed
)

// Action is the state transition that was taken for the target session.
type Action int

const (
	// ActionCreated: session did not exist and was created.
	ActionCreated Action = iota
	// ActionWindowAdded: session existed with no agent; a window was added.
	ActionWindowAdded
	// ActionAttached: session existed with the agent already running.
	ActionAttached
)

func (a Action) String() string {
	switch a {
	case ActionCreated:
		return "created"
	case ActionWindowAdded:
		return "window-added"
	default:
		return "attached"
	}
}

// Request describes the session to open.
type Request struct {
	SessionName string
	Project     string
	Branch      string
	Dir         string    // working directory for new panes
	Role        gitx.Role // recorded in tmux options and the context file
	WindowName  string    // name of a new session's first window, "" for tmux default
	AgentCmd    string    // command line launched in new panes
	NoAttach    bool      // create/reuse only, skip attach/switch
}

// Result reports what happened. ExitCode is meaningful only after a
// blocking attach; switch-client returns immediately with 0.
type Result struct {
	Action   Action
	Switched bool
	ExitCode int
}

// Controller drives the open flow against tmux.
type Controller struct {
	client *tmux.Client
	snap   *registry.Snapshot
}

// NewController creates a controller. snap is used to probe whether the
// agent already runs inside an existing session.
func NewController(client *tmux.Client, snap *registry.Snapshot) *Controller {
	return &Controller{client: client, snap: snap}
}

// Open creates, reuses, or plain-attaches the target session, then switches
// or attaches the terminal to it.
//
// Creation is idempotent under concurrent callers: a "duplicate session"
// error means another invocation won the race, and the flow continues as if
// the session had existed from the start.
func (c *Controller) Open(ctx context.Context, req Request) (Result, error) {
	action, err := c.ensure(ctx, req)
	if err != nil {
		return Result{}, err
	}

	res := Result{Action: action}
	if req.NoAttach {
		return res, nil
	}

	if tmux.InTmux() {
		if err := c.client.SwitchClient(ctx, req.SessionName); err != nil {
			return res, err
		}
		res.Switched = true
		return res, nil
	}

	code, err := c.client.Attach(req.SessionName)
	if err != nil {
		return res, err
	}
	res.ExitCode = code
	return res, nil
}

// ensure walks the NotExist/ExistsDormant/ExistsActive transitions.
func (c *Controller) ensure(ctx context.Context, req Request) (Action, error) {
	if !c.client.SessionExists(ctx, req.SessionName) {
		outcome, err := c.create(ctx, req)
		switch outcome {
		case Created:
			return ActionCreated, nil
		case Failed:
			return 0, err
		}
		// AlreadyExisted: fall through to the reuse path.
	}

	writeContextFile(req)

	if c.snap.AgentRunning(ctx, req.SessionName) {
		// Never double-launch the agent.
		return ActionAttached, nil
	}

	if err := c.client.NewWindow(ctx, req.SessionName, req.Dir, ""); err != nil {
		return 0, err
	}
	if req.AgentCmd != "" {
		if err := c.client.SendKeys(ctx, req.SessionName, req.AgentCmd); err != nil {
			return 0, err
		}
	}
	return ActionWindowAdded, nil
}

func (c *Controller) create(ctx context.Context, req Request) (CreateOutcome, error) {
	writeContextFile(req)

	if err := c.client.NewSession(ctx, req.SessionName, req.Dir, req.WindowName); err != nil {
		if tmux.IsDuplicateSessionErr(err) {
			return AlreadyExisted, nil
		}
		return Failed, fmt.Errorf("creating session %q: %w", req.SessionName, err)
	}

	// tmux is the only store for session metadata; record it as user options.
	for option, value := range map[string]string{
		"@cgwt_project": req.Project,
		"@cgwt_branch":  req.Branch,
		"@cgwt_role":    string(req.Role),
	} {
		if err := c.client.SetOption(ctx, req.SessionName, option, value); err != nil {
			log.Printf("Warning: failed to set %s on %s: %v", option, req.SessionName, err)
		}
	}

	if req.AgentCmd != "" {
		if err := c.client.SendKeys(ctx, req.SessionName, req.AgentCmd); err != nil {
			return Failed, fmt.Errorf("launching agent in %q: %w", req.SessionName, err)
		}
	}
	return Created, nil
}

// sessionContext is the YAML document dropped into the working directory.
type sessionContext struct {
	Session   string    `yaml:"session"`
	Project   string    `yaml:"project"`
	Branch    string    `yaml:"branch"`
	Role      string    `yaml:"role"`
	CreatedAt time.Time `yaml:"created_at"`
}

// writeContextFile is best-effort: a failure is logged, never fatal to the
// attach/switch outcome.
func writeContextFile(req Request) {
	if req.Dir == "" {
		return
	}
	data, err := yaml.Marshal(sessionContext{
		Session:   req.SessionName,
		Project:   req.Project,
		Branch:    req.Branch,
		Role:      string(req.Role),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		log.Printf("Warning: failed to encode session context: %v", err)
		return
	}
	path := filepath.Join(req.Dir, ContextFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Printf("Warning: failed to write %s: %v", path, err)
	}
}
