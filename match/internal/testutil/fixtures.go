// Package testutil provides shared test fixtures for the matcher test
// packages: compact builders for students, rosters and catalogs.
package testutil

import (
	"testing"

	"github.com/course-match/course-match/match"
)

// IntPtr returns a pointer to n, for optional group quotas.
func IntPtr(n int) *int {
	return &n
}

// Student builds a roster entry. A nil score map becomes empty so lookups
// behave like blank cells.
func Student(name, total string, prefs []string, scores map[string]string) *match.Student {
	if scores == nil {
		scores = map[string]string{}
	}
	return &match.Student{
		Name:        name,
		Preferences: prefs,
		Scores:      scores,
		TotalRaw:    total,
	}
}

// MustRoster builds a roster and fails the test on invalid input.
func MustRoster(t *testing.T, students ...*match.Student) *match.Roster {
	t.Helper()
	r, err := match.NewRoster(students)
	if err != nil {
		t.Fatalf("NewRoster: %v", err)
	}
	return r
}

// MustCatalog builds a catalog and fails the test on invalid input.
func MustCatalog(t *testing.T, courses ...*match.Course) *match.Catalog {
	t.Helper()
	c, err := match.NewCatalog(courses)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

// MustRun runs a matcher over the inputs and fails the test on an
// invariant violation.
func MustRun(t *testing.T, roster *match.Roster, catalog *match.Catalog) *match.Result {
	t.Helper()
	result, err := match.NewMatcher(roster, catalog).Run()
	if err != nil {
		t.Fatalf("Matcher.Run: %v", err)
	}
	return result
}
