// Package name implements the cgwt session naming convention.
//
// A session name encodes a (project, branch) pair as
// "cgwt-<project>--<branch>", with each component sanitized to tmux-safe
// characters. The double dash is the component separator; sanitization
// collapses dash runs inside a component, so "--" can only occur at the
// boundary.
package name

import (
	"regexp"
	"strings"
)

// Prefix is the namespace for every session this tool creates. Sessions
// without it are invisible to cgwt.
const Prefix = "cgwt"

// SupervisorBranch is the reserved branch component for the supervisor
// session of a worktree-parent directory.
const SupervisorBranch = "supervisor"

const separator = "--"

var (
	disallowed = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
	dashRuns   = regexp.MustCompile(`-{2,}`)
)

// Sanitize reduces a component to [A-Za-z0-9_-]: disallowed runs become a
// single dash, dash runs collapse, and leading/trailing dashes are trimmed.
func Sanitize(s string) string {
	s = disallowed.ReplaceAllString(s, "-")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Encode builds the session name for a (project, branch) pair.
func Encode(project, branch string) string {
	return Prefix + "-" + Sanitize(project) + separator + Sanitize(branch)
}

// Decode recovers the (project, branch) pair from a session name.
//
// Names with the "--" separator decode exactly. Older names used a single
// dash between components; for those the split happens at the LAST dash,
// which is ambiguous when a component itself contained one. That behavior
// is kept as-is for compatibility.
func Decode(sessionName string) (project, branch string, ok bool) {
	rest, found := strings.CutPrefix(sessionName, Prefix+"-")
	if !found || rest == "" {
		return "", "", false
	}

	if parts := strings.Split(rest, separator); len(parts) == 2 && parts[0] != "" && parts[1] != "" {
		return parts[0], parts[1], true
	}

	// Legacy single-dash form.
	idx := strings.LastIndex(rest, "-")
	if idx <= 0 || idx == len(rest)-1 {
		return "", "", false
	}
	return rest[:idx], rest[idx+1:], true
}

// Belongs reports whether a tmux session name was created by this tool.
func Belongs(sessionName string) bool {
	_, _, ok := Decode(sessionName)
	return ok
}
