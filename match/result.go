package match

import "github.com/course-match/course-match/match/trace"

// Result is the terminal state of a matching run.
type Result struct {
	// Assignments maps course name to placed student names, in placement
	// order. Every catalog course has an entry, possibly empty.
	Assignments map[string][]string
	// ByStudent maps each placed student to their course.
	ByStudent map[string]string
	// Unplaced lists students who exhausted their preference list, in the
	// order they ran out, with no duplicates.
	Unplaced []string
	// Trace is the decision log for the run.
	Trace *trace.MatchTrace
}
