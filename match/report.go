package match

// Report builders derive the three output tables from a terminal Result.
// They read state only; nothing here mutates.

// UnplacedReason is the fixed explanation attached to every unplaced row.
const UnplacedReason = "No available courses in preferences"

// naSentinel fills report cells that have no subject, e.g. the last-ranked
// columns of an empty course.
const naSentinel = "N/A"

// PlacedRow is one row of the placed-students table.
type PlacedRow struct {
	StudentName    string
	AssignedCourse string
	Preferences    []string
	TotalScore     string
}

// SubjectScore pairs a criterion subject with the last-ranked student's
// raw score for it.
type SubjectScore struct {
	Subject string
	Score   string
}

// CourseSummaryRow is one row of the per-course report. Vacancy fields
// keep the Capacity type so Unbounded survives to serialization.
type CourseSummaryRow struct {
	CourseName         string
	OriginalVacancies  Capacity
	RemainingVacancies Capacity
	Posted             int
	LastRanked         string
	LastRankedTotal    string
	CriterionScores    []SubjectScore
}

// UnplacedRow is one row of the unplaced-students table.
type UnplacedRow struct {
	StudentName string
	Preferences []string
	Reason      string
}

// BuildPlacedTable lists every placed student with their preferences and
// Total Score, in catalog order then placement order.
func BuildPlacedTable(res *Result, roster *Roster, catalog *Catalog) []PlacedRow {
	rows := make([]PlacedRow, 0, len(res.ByStudent))
	for _, c := range catalog.Courses() {
		for _, name := range res.Assignments[c.Name] {
			s, ok := roster.Student(name)
			if !ok {
				continue
			}
			rows = append(rows, PlacedRow{
				StudentName:    name,
				AssignedCourse: c.Name,
				Preferences:    s.Preferences,
				TotalScore:     s.TotalRaw,
			})
		}
	}
	return rows
}

// BuildCourseSummary derives the per-course report. The last-ranked
// student is the placed student with the lowest Total Score, missing
// totals sorting lowest; an empty course gets "N/A" sentinels throughout.
func BuildCourseSummary(res *Result, roster *Roster, catalog *Catalog) []CourseSummaryRow {
	rows := make([]CourseSummaryRow, 0, catalog.Len())
	for _, c := range catalog.Courses() {
		assigned := res.Assignments[c.Name]
		row := CourseSummaryRow{
			CourseName:         c.Name,
			OriginalVacancies:  c.Capacity,
			RemainingVacancies: c.Capacity.Minus(len(assigned)),
			Posted:             len(assigned),
			LastRanked:         naSentinel,
			LastRankedTotal:    naSentinel,
		}
		last := lastRankedStudent(assigned, roster)
		for _, cr := range c.Criteria {
			score := naSentinel
			if last != nil {
				score = last.Score(cr.Subject)
			}
			row.CriterionScores = append(row.CriterionScores, SubjectScore{Subject: cr.Subject, Score: score})
		}
		if last != nil {
			row.LastRanked = last.Name
			row.LastRankedTotal = last.TotalRaw
		}
		rows = append(rows, row)
	}
	return rows
}

// lastRankedStudent returns the assigned student with the lowest Total
// Score, keeping the earliest on ties so the report is deterministic.
func lastRankedStudent(assigned []string, roster *Roster) *Student {
	var last *Student
	for _, name := range assigned {
		s, ok := roster.Student(name)
		if !ok {
			continue
		}
		if last == nil || s.meritScore() < last.meritScore() {
			last = s
		}
	}
	return last
}

// BuildUnplacedTable lists students who exhausted their preferences and
// are absent from the final assignment. The placement filter repeats the
// one applied at result construction, so a row can never contradict the
// assignment tables.
func BuildUnplacedTable(res *Result, roster *Roster) []UnplacedRow {
	rows := make([]UnplacedRow, 0, len(res.Unplaced))
	for _, name := range res.Unplaced {
		if _, placed := res.ByStudent[name]; placed {
			continue
		}
		s, ok := roster.Student(name)
		if !ok {
			continue
		}
		rows = append(rows, UnplacedRow{
			StudentName: name,
			Preferences: s.Preferences,
			Reason:      UnplacedReason,
		})
	}
	return rows
}
