package ingest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/course-match/course-match/match"
)

// writeWorkbook materializes rows as a single-sheet xlsx file for tests.
func writeWorkbook(t *testing.T, path string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestReadStudentWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.xlsx")
	writeWorkbook(t, path, [][]any{
		{"Student Name", "Preference 1", "Preference 2", "Math", "Science", "Total Score"},
		{"Alice", "X", "Y", 88, 75, 90},
		{"Bob", "Y", "", "ABS", 60, 80},
	})

	roster, err := ReadStudentWorkbook(path)
	require.NoError(t, err)

	assert.Equal(t, 2, roster.Len())
	assert.Equal(t, 2, roster.Depth())

	alice, ok := roster.Student("Alice")
	require.True(t, ok)
	assert.Equal(t, []string{"X", "Y"}, alice.Preferences)
	assert.Equal(t, "88", alice.Score("Math"))
	total, numeric := alice.Total()
	assert.True(t, numeric)
	assert.Equal(t, 90.0, total)

	bob, ok := roster.Student("Bob")
	require.True(t, ok)
	assert.Equal(t, []string{"Y", ""}, bob.Preferences)
	_, numeric = match.ToNumber(bob.Score("Math"))
	assert.False(t, numeric)
}

func TestReadStudentWorkbook_DuplicateName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.xlsx")
	writeWorkbook(t, path, [][]any{
		{"Student Name", "Preference 1", "Total Score"},
		{"Alice", "X", 90},
		{"Alice", "Y", 80},
	})
	_, err := ReadStudentWorkbook(path)
	assert.ErrorContains(t, err, "duplicate student")
}

func TestReadCourseWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.xlsx")
	writeWorkbook(t, path, [][]any{
		{"Course Name", "Capacity", "Group", "Group Constraint", "Math", "Science", "Tiebreaker Subjects"},
		{"X", 25, "", "", ">= 70", "", "Math, Science"},
		{"Y", "", "G", 40, "", "<= 50", ""},
		{"Z", "", "", "", "", "", ""},
	})

	catalog, err := ReadCourseWorkbook(path)
	require.NoError(t, err)

	x, ok := catalog.Course("X")
	require.True(t, ok)
	seats, bounded := x.Capacity.Seats()
	assert.True(t, bounded)
	assert.Equal(t, 25, seats)
	require.Len(t, x.Criteria, 1)
	assert.Equal(t, match.Criterion{Subject: "Math", Cmp: match.AtLeast, Threshold: 70}, x.Criteria[0])
	assert.Equal(t, []string{"Math", "Science"}, x.Tiebreakers)
	assert.Nil(t, x.GroupQuota)

	// Blank capacity under a group constraint: the constraint is the cap.
	y, ok := catalog.Course("Y")
	require.True(t, ok)
	seats, bounded = y.Capacity.Seats()
	assert.True(t, bounded)
	assert.Equal(t, 40, seats)
	assert.Equal(t, "G", y.Group)
	require.NotNil(t, y.GroupQuota)
	assert.Equal(t, 40, *y.GroupQuota)
	require.Len(t, y.Criteria, 1)
	assert.Equal(t, match.AtMost, y.Criteria[0].Cmp)

	// Blank capacity and no constraint: unlimited.
	z, ok := catalog.Course("Z")
	require.True(t, ok)
	assert.True(t, z.Capacity.IsUnbounded())
}

func TestReadCourseWorkbook_MalformedCriterionRejects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.xlsx")
	writeWorkbook(t, path, [][]any{
		{"Course Name", "Capacity", "Group", "Group Constraint", "Math", "Tiebreaker Subjects"},
		{"X", 10, "", "", "at least 70", ""},
	})
	_, err := ReadCourseWorkbook(path)
	assert.ErrorContains(t, err, "malformed criterion")
	assert.ErrorContains(t, err, "row 2")
}
