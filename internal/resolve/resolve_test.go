package resolve

import (
	"errors"
	"testing"

	"github.com/cgwt-sh/cgwt/internal/registry"
)

func session(project, branch string) registry.Session {
	return registry.Session{
		Name:    "cgwt-" + project + "--" + branch,
		Project: project,
		Branch:  branch,
	}
}

func flatFixture() []registry.Session {
	return []registry.Session{
		session("proj", "zeta"),
		session("proj", "alpha"),
		session("proj", "mid"),
	}
}

func TestFlatIndex(t *testing.T) {
	sessions := flatFixture()

	got, err := Flat(sessions, "2")
	if err != nil {
		t.Fatalf("Flat(2): %v", err)
	}
	// Sorted order: alpha, mid, zeta -> index 2 is mid.
	if got.Branch != "mid" {
		t.Errorf("Flat(2) = %q, want mid", got.Branch)
	}
}

func TestFlatIndexZeroWithoutSupervisor(t *testing.T) {
	_, err := Flat(flatFixture(), "0")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Flat(0) = %v, want NotFoundError", err)
	}
	if len(nf.Available) != 3 {
		t.Errorf("available branches = %v, want all 3", nf.Available)
	}
}

func TestFlatIndexZeroWithSupervisor(t *testing.T) {
	sessions := append(flatFixture(), session("proj", "supervisor"))
	got, err := Flat(sessions, "0")
	if err != nil {
		t.Fatalf("Flat(0): %v", err)
	}
	if got.Branch != "supervisor" {
		t.Errorf("Flat(0) = %q, want supervisor", got.Branch)
	}
}

func TestFlatIndexOutOfRange(t *testing.T) {
	_, err := Flat(flatFixture(), "4")
	var oor *OutOfRangeError
	if !errors.As(err, &oor) {
		t.Fatalf("Flat(4) = %v, want OutOfRangeError", err)
	}
	if oor.Min != 0 || oor.Max != 3 {
		t.Errorf("valid range = %d-%d, want 0-3", oor.Min, oor.Max)
	}
	if oor.Error() != "session index 4 out of range (valid: 0-3)" {
		t.Errorf("message = %q", oor.Error())
	}
}

func TestFlatBranchName(t *testing.T) {
	got, err := Flat(flatFixture(), "zeta")
	if err != nil {
		t.Fatalf("Flat(zeta): %v", err)
	}
	if got.SessionName != "cgwt-proj--zeta" {
		t.Errorf("got %q", got.SessionName)
	}
}

func TestFlatSupervisorAliases(t *testing.T) {
	sessions := append(flatFixture(), session("proj", "supervisor"))
	for _, alias := range []string{"supervisor", "sup"} {
		got, err := Flat(sessions, alias)
		if err != nil {
			t.Fatalf("Flat(%s): %v", alias, err)
		}
		if got.Branch != "supervisor" {
			t.Errorf("Flat(%s) = %q", alias, got.Branch)
		}
	}
}

func TestFlatUnknownBranchEnumeratesAvailable(t *testing.T) {
	_, err := Flat(flatFixture(), "nope")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(nf.Available) != len(want) {
		t.Fatalf("available = %v", nf.Available)
	}
	for i := range want {
		if nf.Available[i] != want[i] {
			t.Errorf("available[%d] = %q, want %q", i, nf.Available[i], want[i])
		}
	}
}

func groupedFixture() []registry.ProjectGroup {
	return registry.Group([]registry.Session{
		session("alpha", "supervisor"),
		session("alpha", "feature-x"),
		session("alpha", "main"),
		session("beta", "main"),
	}, "")
}

func TestGroupedCompound(t *testing.T) {
	groups := groupedFixture()

	got, err := Grouped(groups, "0.1")
	if err != nil {
		t.Fatalf("Grouped(0.1): %v", err)
	}
	// alpha's branches sort supervisor, feature-x, main.
	if got.Project != "alpha" || got.Branch != "feature-x" {
		t.Errorf("Grouped(0.1) = %+v", got)
	}

	got, err = Grouped(groups, "1.0")
	if err != nil {
		t.Fatalf("Grouped(1.0): %v", err)
	}
	if got.Project != "beta" || got.Branch != "main" {
		t.Errorf("Grouped(1.0) = %+v", got)
	}
}

func TestGroupedCompoundOutOfRange(t *testing.T) {
	groups := groupedFixture()

	_, err := Grouped(groups, "5.0")
	var oor *OutOfRangeError
	if !errors.As(err, &oor) || oor.Dimension != "project" {
		t.Errorf("Grouped(5.0) = %v, want project OutOfRangeError", err)
	}

	_, err = Grouped(groups, "1.3")
	if !errors.As(err, &oor) || oor.Dimension != "branch" {
		t.Errorf("Grouped(1.3) = %v, want branch OutOfRangeError", err)
	}
}

func TestGroupedBranchName(t *testing.T) {
	got, err := Grouped(groupedFixture(), "feature-x")
	if err != nil {
		t.Fatalf("Grouped(feature-x): %v", err)
	}
	if got.SessionName != "cgwt-alpha--feature-x" {
		t.Errorf("got %q", got.SessionName)
	}
}

func TestGroupedRefPrefixStripped(t *testing.T) {
	got, err := Grouped(groupedFixture(), "refs/heads/feature-x")
	if err != nil {
		t.Fatalf("Grouped(refs/heads/feature-x): %v", err)
	}
	if got.Branch != "feature-x" {
		t.Errorf("got %+v", got)
	}
}

func TestGroupedSupervisorAlias(t *testing.T) {
	got, err := Grouped(groupedFixture(), "sup")
	if err != nil {
		t.Fatalf("Grouped(sup): %v", err)
	}
	if got.Project != "alpha" || got.Branch != "supervisor" {
		t.Errorf("got %+v", got)
	}
}

func TestGroupedNotFound(t *testing.T) {
	_, err := Grouped(groupedFixture(), "ghost")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
	if len(nf.Available) != 4 {
		t.Errorf("available = %v, want the 4 known branches", nf.Available)
	}
}
