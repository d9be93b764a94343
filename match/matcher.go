package match

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/course-match/course-match/match/trace"
)

// Matcher drains the arrival and displaced work queues until every student
// is placed or has exhausted their preference list. Displaced students
// take absolute priority over new arrivals — the discipline is part of the
// algorithm's contract, not a throughput knob: it keeps the placement set
// near a fixed point so arrivals cannot re-trigger a cohort's displacement
// redundantly.
type Matcher struct {
	roster  *Roster
	catalog *Catalog
	state   *PlacementState

	arrivals  AttemptQueue
	displaced AttemptQueue

	// nextPref tracks the last preference index each student attempted.
	// A displaced student resumes one past this.
	nextPref map[string]int

	trace *trace.MatchTrace
}

// NewMatcher seeds the arrival queue with every student at preference 1,
// in roster order.
func NewMatcher(roster *Roster, catalog *Catalog) *Matcher {
	m := &Matcher{
		roster:   roster,
		catalog:  catalog,
		state:    NewPlacementState(catalog),
		nextPref: make(map[string]int, roster.Len()),
		trace:    trace.New(),
	}
	for _, s := range roster.Students() {
		m.arrivals.Enqueue(Attempt{Student: s, Pref: 1})
	}
	return m
}

// Run executes the deferred-acceptance loop to termination and returns the
// terminal assignment. The error reports invariant violations only;
// rejected placements are normal control flow. Every iteration either
// grows the placement set or advances some student's preference pointer,
// so the loop terminates in O(students × depth) attempts.
func (m *Matcher) Run() (*Result, error) {
	depth := m.roster.Depth()
	var unplaced []string
	exhausted := make(map[string]bool)

	for m.displaced.Len() > 0 || m.arrivals.Len() > 0 {
		source := trace.SourceDisplaced
		attempt, ok := m.displaced.Dequeue()
		if !ok {
			attempt, _ = m.arrivals.Dequeue()
			source = trace.SourceArrival
		}
		s := attempt.Student
		m.nextPref[s.Name] = attempt.Pref

		if attempt.Pref > depth {
			logrus.Debugf("%s exhausted all %d preferences", s.Name, depth)
			if !exhausted[s.Name] {
				exhausted[s.Name] = true
				unplaced = append(unplaced, s.Name)
			}
			m.trace.Record(trace.AttemptRecord{
				Student: s.Name, Pref: attempt.Pref, Source: source,
				Verdict: trace.VerdictExhausted,
			})
			continue
		}

		courseName := s.Preferences[attempt.Pref-1]
		if courseName == "" {
			logrus.Debugf("%s has a blank preference %d; advancing", s.Name, attempt.Pref)
			m.arrivals.Enqueue(Attempt{Student: s, Pref: attempt.Pref + 1})
			m.trace.Record(trace.AttemptRecord{
				Student: s.Name, Pref: attempt.Pref, Source: source,
				Verdict: trace.VerdictSkipped, NextPref: attempt.Pref + 1,
			})
			continue
		}

		res := m.state.TryPlace(s, courseName)
		rec := trace.AttemptRecord{
			Student: s.Name, Pref: attempt.Pref, Course: courseName, Source: source,
		}
		switch res.Verdict {
		case VerdictPlaced:
			logrus.Debugf("placed %s into %s (preference %d)", s.Name, courseName, attempt.Pref)
			rec.Verdict = trace.VerdictPlaced
		case VerdictDisplaced:
			d := res.Displaced
			resume := m.nextPref[d.Name] + 1
			logrus.Debugf("%s displaced %s from %s; %s resumes at preference %d",
				s.Name, d.Name, courseName, d.Name, resume)
			m.displaced.Enqueue(Attempt{Student: d, Pref: resume})
			rec.Verdict = trace.VerdictDisplaced
			rec.Displaced = d.Name
			rec.NextPref = resume
		case VerdictRejected:
			logrus.Debugf("rejected %s for %s: %s", s.Name, courseName, res.Reason)
			m.arrivals.Enqueue(Attempt{Student: s, Pref: attempt.Pref + 1})
			rec.Verdict = trace.VerdictRejected
			rec.Reason = string(res.Reason)
			rec.NextPref = attempt.Pref + 1
		}
		m.trace.Record(rec)
	}

	if err := m.state.Verify(); err != nil {
		return nil, fmt.Errorf("inconsistent terminal assignment: %w", err)
	}

	result := m.buildResult(unplaced)
	logrus.Infof("matching complete: %d placed, %d unplaced, %d attempts",
		len(result.ByStudent), len(result.Unplaced), m.trace.Len())
	return result, nil
}

func (m *Matcher) buildResult(unplaced []string) *Result {
	res := &Result{
		Assignments: make(map[string][]string, m.catalog.Len()),
		ByStudent:   make(map[string]string),
		Trace:       m.trace,
	}
	for _, c := range m.catalog.Courses() {
		assigned := m.state.Assigned(c.Name)
		names := make([]string, 0, len(assigned))
		for _, s := range assigned {
			names = append(names, s.Name)
			res.ByStudent[s.Name] = c.Name
		}
		res.Assignments[c.Name] = names
	}
	// Exhaustion is recorded eagerly while the loop runs; filter out anyone
	// who ended up placed anyway before publishing the set.
	for _, name := range unplaced {
		if _, placed := res.ByStudent[name]; !placed {
			res.Unplaced = append(res.Unplaced, name)
		}
	}
	return res
}
