// Package resolve maps a user-supplied address to exactly one session.
//
// Accepted grammars:
//
//	2            flat index: 0 is the supervisor, n>=1 the n-th branch session
//	0.1          compound index: project 0, branch 1 (both 0-based, sorted order)
//	feature-x    branch name
//	supervisor   alias for the supervisor session ("sup" works too)
//
// Resolution is total: every address yields one target or an error that
// names the valid range or the known branches.
package resolve

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cgwt-sh/cgwt/internal/name"
	"github.com/cgwt-sh/cgwt/internal/registry"
)

// Target is the resolved session an address pointed at.
type Target struct {
	SessionName string
	Project     string
	Branch      string
}

// Aliases for the supervisor session, accepted regardless of its branch.
const (
	AliasSupervisor = "supervisor"
	AliasSup        = "sup"
)

const refPrefix = "refs/heads/"

// Flat resolves an address against a flat session list (single-project or
// legacy callers). Sessions are considered in branch-sorted order,
// supervisor excluded from the numbering.
func Flat(sessions []registry.Session, raw string) (Target, error) {
	supervisor, rest := splitSupervisor(sessions)

	if n, ok := parseIndex(raw); ok {
		if n == 0 {
			if supervisor == nil {
				return Target{}, &NotFoundError{Target: raw, Available: branchNames(sessions)}
			}
			return toTarget(*supervisor), nil
		}
		if n > len(rest) {
			return Target{}, &OutOfRangeError{Dimension: "session", Index: n, Min: 0, Max: len(rest)}
		}
		return toTarget(rest[n-1]), nil
	}

	return byBranch(sessions, supervisor, raw)
}

// Grouped resolves an address against a project grouping (multi-project
// mode). Compound "x.y" indexes the sorted projects then the sorted
// branches; anything non-numeric falls back to branch-name matching across
// every project in sorted order.
func Grouped(groups []registry.ProjectGroup, raw string) (Target, error) {
	if pi, bi, ok := parseCompound(raw); ok {
		if pi >= len(groups) {
			return Target{}, &OutOfRangeError{Dimension: "project", Index: pi, Min: 0, Max: max(len(groups)-1, 0)}
		}
		group := groups[pi]
		if bi >= len(group.Branches) {
			return Target{}, &OutOfRangeError{Dimension: "branch", Index: bi, Min: 0, Max: max(len(group.Branches)-1, 0)}
		}
		entry := group.Branches[bi]
		return Target{SessionName: entry.SessionName, Project: group.Project, Branch: entry.Branch}, nil
	}

	token := strings.TrimPrefix(raw, refPrefix)
	var available []string
	for _, g := range groups {
		for _, b := range g.Branches {
			available = append(available, b.Branch)
			if b.Branch == token || (isSupervisorAlias(token) && b.Branch == name.SupervisorBranch) {
				return Target{SessionName: b.SessionName, Project: g.Project, Branch: b.Branch}, nil
			}
		}
	}
	return Target{}, &NotFoundError{Target: raw, Available: available}
}

func byBranch(sessions []registry.Session, supervisor *registry.Session, raw string) (Target, error) {
	if isSupervisorAlias(raw) {
		if supervisor == nil {
			return Target{}, &NotFoundError{Target: raw, Available: branchNames(sessions)}
		}
		return toTarget(*supervisor), nil
	}

	token := strings.TrimPrefix(raw, refPrefix)
	for _, s := range sessions {
		if strings.TrimPrefix(s.Branch, refPrefix) == token {
			return toTarget(s), nil
		}
	}
	return Target{}, &NotFoundError{Target: raw, Available: branchNames(sessions)}
}

// splitSupervisor separates the supervisor session (if any) from the rest,
// which are returned sorted by branch.
func splitSupervisor(sessions []registry.Session) (*registry.Session, []registry.Session) {
	var supervisor *registry.Session
	rest := make([]registry.Session, 0, len(sessions))
	for i, s := range sessions {
		if s.IsSupervisor() && supervisor == nil {
			supervisor = &sessions[i]
			continue
		}
		rest = append(rest, s)
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].Branch < rest[j].Branch })
	return supervisor, rest
}

func parseIndex(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func parseCompound(raw string) (project, branch int, ok bool) {
	left, right, found := strings.Cut(raw, ".")
	if !found {
		return 0, 0, false
	}
	p, ok1 := parseIndex(left)
	b, ok2 := parseIndex(right)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return p, b, true
}

func isSupervisorAlias(raw string) bool {
	return raw == AliasSupervisor || raw == AliasSup
}

func branchNames(sessions []registry.Session) []string {
	names := make([]string, 0, len(sessions))
	for _, s := range sessions {
		names = append(names, s.Branch)
	}
	sort.Strings(names)
	return names
}

func toTarget(s registry.Session) Target {
	return Target{SessionName: s.Name, Project: s.Project, Branch: s.Branch}
}
