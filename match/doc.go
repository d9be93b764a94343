// Package match implements deferred acceptance with displacement for
// allocating students to courses.
//
// The inputs are an immutable Roster (ranked student preferences plus
// subject scores) and an immutable Catalog (courses with eligibility
// criteria, capacities and group quotas). The Matcher drains two FIFO work
// queues, arrivals and displaced, giving displaced students absolute
// priority, and advances each student down their preference list until
// everyone is either placed or has run out of choices. All mutation of the
// assignment relation goes through PlacementState.TryPlace.
//
// The run is single-threaded and fully deterministic: identical inputs
// produce identical assignments.
package match
