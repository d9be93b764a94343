package match

// PlaceVerdict is the outcome class of a placement attempt.
type PlaceVerdict int

const (
	VerdictPlaced PlaceVerdict = iota
	VerdictDisplaced
	VerdictRejected
)

func (v PlaceVerdict) String() string {
	switch v {
	case VerdictPlaced:
		return "placed"
	case VerdictDisplaced:
		return "displaced"
	default:
		return "rejected"
	}
}

// RejectReason explains a VerdictRejected result. Rejections are normal
// control flow: the scheduler advances the student to their next
// preference.
type RejectReason string

const (
	ReasonUnknownCourse     RejectReason = "UnknownCourse"
	ReasonCriteriaNotMet    RejectReason = "CriteriaNotMet"
	ReasonCourseFull        RejectReason = "CourseFull"
	ReasonSelfLowestInGroup RejectReason = "AlreadyInCohortAtLowest"
	ReasonOutrankedInGroup  RejectReason = "OutrankedInGroup"
)

// PlaceResult reports what a TryPlace call did. Displaced is set only for
// VerdictDisplaced, Reason only for VerdictRejected.
type PlaceResult struct {
	Verdict   PlaceVerdict
	Displaced *Student
	Reason    RejectReason
}

func rejected(reason RejectReason) PlaceResult {
	return PlaceResult{Verdict: VerdictRejected, Reason: reason}
}

// TryPlace attempts to put the student into the named course. The
// assignment relation is mutated only on the Placed and Displaced
// branches; every rejection leaves state untouched.
//
// Ungrouped courses enforce their capacity as a hard cap. Grouped courses
// admit while the group quota has room and otherwise consider evicting the
// lowest-merit incumbent across the whole cohort.
func (st *PlacementState) TryPlace(s *Student, courseName string) PlaceResult {
	course, ok := st.catalog.Course(courseName)
	if !ok {
		return rejected(ReasonUnknownCourse)
	}
	if !Qualifies(s, course) {
		return rejected(ReasonCriteriaNotMet)
	}

	// The course's own capacity caps both paths. Grouped courses usually
	// inherit their capacity from the quota, but when a tighter cap is
	// configured it still binds.
	if !st.CourseHasRoom(course) {
		return rejected(ReasonCourseFull)
	}

	if course.Group == "" {
		st.attach(s, course)
		return PlaceResult{Verdict: VerdictPlaced}
	}

	if st.GroupHasRoom(course) {
		st.attach(s, course)
		return PlaceResult{Verdict: VerdictPlaced}
	}

	incumbent := st.SelectIncumbent(st.GroupCohort(course), course.Tiebreakers)
	if incumbent == nil {
		// Quota of zero: the group is saturated while holding nobody.
		return rejected(ReasonOutrankedInGroup)
	}
	if incumbent == s {
		// The challenger is already the lowest-merit member of this
		// cohort; evicting them to admit them would be degenerate.
		return rejected(ReasonSelfLowestInGroup)
	}
	if !Outranks(s, incumbent, course).Beats() {
		return rejected(ReasonOutrankedInGroup)
	}

	st.detach(incumbent)
	st.attach(s, course)
	return PlaceResult{Verdict: VerdictDisplaced, Displaced: incumbent}
}
