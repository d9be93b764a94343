// Package trace provides decision-trace recording for matching runs.
// This package has no dependencies on match/ — it stores pure data types.
package trace

// Source identifies which work queue an attempt was dequeued from.
type Source string

const (
	SourceArrival   Source = "arrival"
	SourceDisplaced Source = "displaced"
)

// Verdict classifies what happened to a dequeued attempt.
type Verdict string

const (
	VerdictPlaced    Verdict = "placed"
	VerdictDisplaced Verdict = "displaced"
	VerdictRejected  Verdict = "rejected"
	VerdictSkipped   Verdict = "skipped"   // blank preference slot
	VerdictExhausted Verdict = "exhausted" // ran past the last preference
)

// AttemptRecord captures one dequeue and its try-place outcome.
type AttemptRecord struct {
	Seq       int
	Student   string
	Pref      int
	Course    string // empty for skipped and exhausted records
	Source    Source
	Verdict   Verdict
	Reason    string // reject reason, empty otherwise
	Displaced string // evicted student on a displacement
	NextPref  int    // where the re-enqueued student resumes, 0 when nobody was re-enqueued
}
