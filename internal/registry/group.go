package registry

import (
	"sort"

	"github.com/cgwt-sh/cgwt/internal/name"
)

// BranchEntry is one branch row within a project group.
type BranchEntry struct {
	Branch      string `json:"branch"`
	SessionName string `json:"session"`
	IsActive    bool   `json:"active"`
}

// ProjectGroup collects a project's sessions, supervisor first.
type ProjectGroup struct {
	Project  string        `json:"project"`
	Branches []BranchEntry `json:"branches"`
}

// Group partitions sessions by project. Within a group the supervisor entry
// sorts first, the rest lexicographically by branch; groups sort by project.
// currentSession is the session the invoking process is attached to (empty
// outside tmux) and marks the active entry. Callers obtain it once, not per
// group.
func Group(sessions []Session, currentSession string) []ProjectGroup {
	byProject := make(map[string][]BranchEntry)
	for _, s := range sessions {
		byProject[s.Project] = append(byProject[s.Project], BranchEntry{
			Branch:      s.Branch,
			SessionName: s.Name,
			IsActive:    currentSession != "" && s.Name == currentSession,
		})
	}

	groups := make([]ProjectGroup, 0, len(byProject))
	for project, branches := range byProject {
		sort.Slice(branches, func(i, j int) bool {
			bi, bj := branches[i].Branch, branches[j].Branch
			if (bi == name.SupervisorBranch) != (bj == name.SupervisorBranch) {
				return bi == name.SupervisorBranch
			}
			return bi < bj
		})
		groups = append(groups, ProjectGroup{Project: project, Branches: branches})
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Project < groups[j].Project })
	return groups
}
