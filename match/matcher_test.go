package match_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/course-match/course-match/match"
	"github.com/course-match/course-match/match/internal/testutil"
	"github.com/course-match/course-match/match/trace"
)

func TestRun_SimpleFit(t *testing.T) {
	// GIVEN two students both listing X first, with room for both
	roster := testutil.MustRoster(t,
		testutil.Student("A", "90", []string{"X"}, nil),
		testutil.Student("B", "80", []string{"X"}, nil),
	)
	catalog := testutil.MustCatalog(t,
		&match.Course{Name: "X", Capacity: match.BoundedCapacity(2)},
	)

	// WHEN the matcher runs
	result := testutil.MustRun(t, roster, catalog)

	// THEN both land in X in arrival order and nobody is unplaced
	assert.Equal(t, []string{"A", "B"}, result.Assignments["X"])
	assert.Empty(t, result.Unplaced)
}

func TestRun_HardCapAdvancesOverflow(t *testing.T) {
	// GIVEN three students for a two-seat ungrouped course
	roster := testutil.MustRoster(t,
		testutil.Student("A", "90", []string{"X", "Y"}, nil),
		testutil.Student("B", "80", []string{"X", "Y"}, nil),
		testutil.Student("C", "70", []string{"X", "Y"}, nil),
	)
	catalog := testutil.MustCatalog(t,
		&match.Course{Name: "X", Capacity: match.BoundedCapacity(2)},
		&match.Course{Name: "Y", Capacity: match.BoundedCapacity(10)},
	)

	result := testutil.MustRun(t, roster, catalog)

	// THEN the first two keep X and the third falls through to Y
	assert.Equal(t, []string{"A", "B"}, result.Assignments["X"])
	assert.Equal(t, []string{"C"}, result.Assignments["Y"])
	assert.Empty(t, result.Unplaced)
}

func TestRun_HardCapNoFallbackUnplaced(t *testing.T) {
	roster := testutil.MustRoster(t,
		testutil.Student("A", "90", []string{"X"}, nil),
		testutil.Student("B", "80", []string{"X"}, nil),
		testutil.Student("C", "70", []string{"X"}, nil),
	)
	catalog := testutil.MustCatalog(t,
		&match.Course{Name: "X", Capacity: match.BoundedCapacity(2)},
	)

	result := testutil.MustRun(t, roster, catalog)

	assert.Equal(t, []string{"A", "B"}, result.Assignments["X"])
	assert.Equal(t, []string{"C"}, result.Unplaced)
}

func TestRun_GroupQuotaDisplacement(t *testing.T) {
	// GIVEN courses X and Y sharing group G with quota 2, and a stronger
	// late arrival for X
	roster := testutil.MustRoster(t,
		testutil.Student("A", "90", []string{"X"}, nil),
		testutil.Student("B", "80", []string{"Y"}, nil),
		testutil.Student("C", "85", []string{"X"}, nil),
	)
	catalog := testutil.MustCatalog(t,
		&match.Course{Name: "X", Capacity: match.UnboundedCapacity(), Group: "G", GroupQuota: testutil.IntPtr(2)},
		&match.Course{Name: "Y", Capacity: match.UnboundedCapacity(), Group: "G", GroupQuota: testutil.IntPtr(2)},
	)

	// WHEN the matcher runs
	result := testutil.MustRun(t, roster, catalog)

	// THEN C displaces B, and B (with no later preference) ends unplaced
	assert.Equal(t, []string{"A", "C"}, result.Assignments["X"])
	assert.Empty(t, result.Assignments["Y"])
	assert.Equal(t, []string{"B"}, result.Unplaced)
}

func TestRun_DisplacedStudentResumesAtNextPreference(t *testing.T) {
	// B is displaced from their first choice and must land on their
	// second, not retry the first.
	roster := testutil.MustRoster(t,
		testutil.Student("A", "90", []string{"X", ""}, nil),
		testutil.Student("B", "80", []string{"Y", "Z"}, nil),
		testutil.Student("C", "85", []string{"X", ""}, nil),
	)
	catalog := testutil.MustCatalog(t,
		&match.Course{Name: "X", Capacity: match.UnboundedCapacity(), Group: "G", GroupQuota: testutil.IntPtr(2)},
		&match.Course{Name: "Y", Capacity: match.UnboundedCapacity(), Group: "G", GroupQuota: testutil.IntPtr(2)},
		&match.Course{Name: "Z", Capacity: match.BoundedCapacity(5)},
	)

	result := testutil.MustRun(t, roster, catalog)

	assert.Equal(t, "Z", result.ByStudent["B"])
	assert.Empty(t, result.Unplaced)
}

func TestRun_BlankPreferenceSlotsAreSkipped(t *testing.T) {
	roster := testutil.MustRoster(t,
		testutil.Student("A", "90", []string{"", "X", ""}, nil),
	)
	catalog := testutil.MustCatalog(t,
		&match.Course{Name: "X", Capacity: match.BoundedCapacity(1)},
	)

	result := testutil.MustRun(t, roster, catalog)

	assert.Equal(t, "X", result.ByStudent["A"])
}

func TestRun_UnknownCoursePreferenceIsNotFatal(t *testing.T) {
	roster := testutil.MustRoster(t,
		testutil.Student("A", "90", []string{"Atlantis", "X"}, nil),
	)
	catalog := testutil.MustCatalog(t,
		&match.Course{Name: "X", Capacity: match.BoundedCapacity(1)},
	)

	result := testutil.MustRun(t, roster, catalog)

	assert.Equal(t, "X", result.ByStudent["A"])
	assert.Empty(t, result.Unplaced)
}

func TestRun_CriteriaGating(t *testing.T) {
	// A student with Math = "ABS" can never enter a Math >= 70 course.
	roster := testutil.MustRoster(t,
		testutil.Student("A", "90", []string{"X"}, map[string]string{"Math": "ABS"}),
	)
	catalog := testutil.MustCatalog(t,
		&match.Course{Name: "X", Capacity: match.UnboundedCapacity(),
			Criteria: []match.Criterion{{Subject: "Math", Cmp: match.AtLeast, Threshold: 70}}},
	)

	result := testutil.MustRun(t, roster, catalog)

	assert.Empty(t, result.Assignments["X"])
	assert.Equal(t, []string{"A"}, result.Unplaced)
}

func TestRun_DisplacementChain(t *testing.T) {
	// A displacement cascade: High displaces Mid from X, Mid then displaces
	// Low from Y (Low's second choice), and Low runs out of preferences.
	roster := testutil.MustRoster(t,
		testutil.Student("Low", "60", []string{"X", "Y"}, nil),
		testutil.Student("Mid", "70", []string{"X", "Y"}, nil),
		testutil.Student("High", "80", []string{"X", "Y"}, nil),
	)
	catalog := testutil.MustCatalog(t,
		&match.Course{Name: "X", Capacity: match.UnboundedCapacity(), Group: "GX", GroupQuota: testutil.IntPtr(1)},
		&match.Course{Name: "Y", Capacity: match.UnboundedCapacity(), Group: "GY", GroupQuota: testutil.IntPtr(1)},
	)

	result := testutil.MustRun(t, roster, catalog)

	assert.Equal(t, []string{"High"}, result.Assignments["X"])
	assert.Equal(t, []string{"Mid"}, result.Assignments["Y"])
	assert.Equal(t, []string{"Low"}, result.Unplaced)
}

func TestRun_PreferenceRespect(t *testing.T) {
	// Every placed student's earlier preferences must be genuinely
	// unavailable at termination: either disqualifying or full of
	// incumbents the student does not outrank.
	roster := testutil.MustRoster(t,
		testutil.Student("A", "90", []string{"X", "Y"}, map[string]string{"Math": "90"}),
		testutil.Student("B", "85", []string{"X", "Y"}, map[string]string{"Math": "85"}),
		testutil.Student("C", "80", []string{"X", "Y"}, map[string]string{"Math": "40"}),
	)
	xCriteria := []match.Criterion{{Subject: "Math", Cmp: match.AtLeast, Threshold: 50}}
	catalog := testutil.MustCatalog(t,
		&match.Course{Name: "X", Capacity: match.BoundedCapacity(1), Criteria: xCriteria},
		&match.Course{Name: "Y", Capacity: match.BoundedCapacity(5)},
	)

	result := testutil.MustRun(t, roster, catalog)

	assert.Equal(t, []string{"A"}, result.Assignments["X"])
	assert.ElementsMatch(t, []string{"B", "C"}, result.Assignments["Y"])

	// B qualified for X but X was at its hard cap; C failed X's criterion.
	bStudent, _ := roster.Student("B")
	cStudent, _ := roster.Student("C")
	xCourse, _ := catalog.Course("X")
	assert.True(t, match.Qualifies(bStudent, xCourse))
	assert.False(t, match.Qualifies(cStudent, xCourse))
}

func TestRun_Determinism(t *testing.T) {
	build := func() (*match.Roster, *match.Catalog) {
		students := []*match.Student{
			testutil.Student("S01", "77", []string{"X", "Y", "Z"}, map[string]string{"Math": "70"}),
			testutil.Student("S02", "77", []string{"X", "Z", "Y"}, map[string]string{"Math": "71"}),
			testutil.Student("S03", "90", []string{"Y", "X", "Z"}, map[string]string{"Math": "50"}),
			testutil.Student("S04", "ABS", []string{"X", "Y", "Z"}, map[string]string{"Math": "90"}),
			testutil.Student("S05", "64", []string{"Z", "Z", "X"}, map[string]string{"Math": "66"}),
			testutil.Student("S06", "77", []string{"Y", "X", ""}, map[string]string{"Math": "71"}),
			testutil.Student("S07", "81", []string{"X", "Y", "Z"}, map[string]string{"Math": "12"}),
			testutil.Student("S08", "59", []string{"Z", "X", "Y"}, map[string]string{"Math": "88"}),
		}
		roster, err := match.NewRoster(students)
		if err != nil {
			t.Fatal(err)
		}
		catalog, err := match.NewCatalog([]*match.Course{
			{Name: "X", Capacity: match.UnboundedCapacity(), Group: "G", GroupQuota: testutil.IntPtr(3), Tiebreakers: []string{"Math"}},
			{Name: "Y", Capacity: match.UnboundedCapacity(), Group: "G", GroupQuota: testutil.IntPtr(3), Tiebreakers: []string{"Math"}},
			{Name: "Z", Capacity: match.BoundedCapacity(2)},
		})
		if err != nil {
			t.Fatal(err)
		}
		return roster, catalog
	}

	canonical := func(result *match.Result) string {
		data, err := json.Marshal(result.Assignments)
		if err != nil {
			t.Fatal(err)
		}
		return string(data)
	}

	rosterA, catalogA := build()
	rosterB, catalogB := build()
	first := testutil.MustRun(t, rosterA, catalogA)
	second := testutil.MustRun(t, rosterB, catalogB)

	assert.Equal(t, canonical(first), canonical(second),
		"identical inputs must produce byte-identical assignments")
	assert.Equal(t, first.Unplaced, second.Unplaced)
}

func TestRun_TerminationBound(t *testing.T) {
	// The attempt count stays within students × (depth + students).
	roster := testutil.MustRoster(t,
		testutil.Student("A", "90", []string{"X", "Y"}, nil),
		testutil.Student("B", "80", []string{"X", "Y"}, nil),
		testutil.Student("C", "70", []string{"X", "Y"}, nil),
		testutil.Student("D", "60", []string{"X", "Y"}, nil),
	)
	catalog := testutil.MustCatalog(t,
		&match.Course{Name: "X", Capacity: match.UnboundedCapacity(), Group: "G", GroupQuota: testutil.IntPtr(1)},
		&match.Course{Name: "Y", Capacity: match.UnboundedCapacity(), Group: "G", GroupQuota: testutil.IntPtr(1)},
	)

	result := testutil.MustRun(t, roster, catalog)

	students, depth := roster.Len(), roster.Depth()
	assert.LessOrEqual(t, result.Trace.Len(), students*(depth+students))
}

func TestRun_TraceRecordsEveryAttempt(t *testing.T) {
	roster := testutil.MustRoster(t,
		testutil.Student("A", "90", []string{"X"}, nil),
		testutil.Student("B", "80", []string{"X"}, nil),
	)
	catalog := testutil.MustCatalog(t,
		&match.Course{Name: "X", Capacity: match.BoundedCapacity(1)},
	)

	result := testutil.MustRun(t, roster, catalog)

	// A placed; B rejected at pref 1, then exhausted.
	var verdicts []trace.Verdict
	for _, rec := range result.Trace.Attempts {
		verdicts = append(verdicts, rec.Verdict)
	}
	assert.Equal(t, []trace.Verdict{
		trace.VerdictPlaced, trace.VerdictRejected, trace.VerdictExhausted,
	}, verdicts)
	assert.Equal(t, trace.SourceArrival, result.Trace.Attempts[1].Source)
}
