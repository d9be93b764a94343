package trace

import "fmt"

// Render produces the human-readable trace log, one line per record, in
// execution order.
func (t *MatchTrace) Render() []string {
	lines := make([]string, 0, len(t.Attempts))
	for _, rec := range t.Attempts {
		lines = append(lines, renderRecord(rec))
	}
	return lines
}

func renderRecord(rec AttemptRecord) string {
	head := fmt.Sprintf("#%04d [%s] %s pref %d", rec.Seq, rec.Source, rec.Student, rec.Pref)
	switch rec.Verdict {
	case VerdictPlaced:
		return fmt.Sprintf("%s -> %s: placed", head, rec.Course)
	case VerdictDisplaced:
		return fmt.Sprintf("%s -> %s: placed, displacing %s (resumes at pref %d)",
			head, rec.Course, rec.Displaced, rec.NextPref)
	case VerdictRejected:
		return fmt.Sprintf("%s -> %s: rejected (%s), retries at pref %d",
			head, rec.Course, rec.Reason, rec.NextPref)
	case VerdictSkipped:
		return fmt.Sprintf("%s: blank preference, advances to pref %d", head, rec.NextPref)
	case VerdictExhausted:
		return fmt.Sprintf("%s: preference list exhausted, unplaced", head)
	}
	return head
}
