package match

// Outcome classifies a challenger against an incumbent.
type Outcome int

const (
	Lose Outcome = iota
	TieLose
	TieWin
	Win
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "WIN"
	case TieWin:
		return "TIE_WIN"
	case TieLose:
		return "TIE_LOSE"
	default:
		return "LOSE"
	}
}

// Beats reports whether the outcome admits the challenger.
func (o Outcome) Beats() bool {
	return o == Win || o == TieWin
}

// tieTuple builds the lexicographic tiebreak tuple for a student over the
// given subject list. Missing scores map to -Inf via TieScore.
func tieTuple(s *Student, subjects []string) []float64 {
	t := make([]float64, len(subjects))
	for i, subj := range subjects {
		t[i] = TieScore(s.Score(subj))
	}
	return t
}

// compareTuples orders two equal-length tuples lexicographically,
// returning -1, 0 or 1.
func compareTuples(a, b []float64) int {
	for i := range a {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	return 0
}

// SelectIncumbent picks the eviction candidate across a saturated cohort:
// the placed student with the lowest Total Score, missing totals sorting
// first. Equal totals fall back to the lexicographic tuple over the
// challenger course's tiebreak subjects, the smaller tuple losing. A full
// tie keeps the earliest student in cohort-then-placement order, so
// selection is stable and the run stays deterministic.
func (st *PlacementState) SelectIncumbent(cohort []*Course, tiebreakers []string) *Student {
	var (
		lowest      *Student
		lowestTotal float64
		lowestTuple []float64
	)
	for _, c := range cohort {
		for _, s := range st.byCourse[c.Name] {
			total := s.meritScore()
			if lowest == nil || total < lowestTotal {
				lowest, lowestTotal, lowestTuple = s, total, nil
				continue
			}
			if total > lowestTotal || len(tiebreakers) == 0 {
				continue
			}
			if lowestTuple == nil {
				lowestTuple = tieTuple(lowest, tiebreakers)
			}
			if tup := tieTuple(s, tiebreakers); compareTuples(tup, lowestTuple) < 0 {
				lowest, lowestTuple = s, tup
			}
		}
	}
	return lowest
}

// Outranks ranks a challenger against the incumbent for the given course.
// A challenger with a missing Total Score never displaces anyone. Ties
// defer to the course's tiebreak subjects and otherwise favor the
// incumbent: a symmetric rule would let two equal students displace each
// other forever.
func Outranks(challenger, incumbent *Student, course *Course) Outcome {
	total, ok := challenger.Total()
	if !ok {
		return Lose
	}
	switch incumbentTotal := incumbent.meritScore(); {
	case total > incumbentTotal:
		return Win
	case total < incumbentTotal:
		return Lose
	}
	if len(course.Tiebreakers) == 0 {
		return TieLose
	}
	ct := tieTuple(challenger, course.Tiebreakers)
	it := tieTuple(incumbent, course.Tiebreakers)
	if compareTuples(ct, it) > 0 {
		return TieWin
	}
	return TieLose
}
