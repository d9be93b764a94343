package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/course-match/course-match/match"
)

// Well-known column headers shared with the report workbooks.
const (
	colStudentName = "Student Name"
	colTotalScore  = "Total Score"
	colCourseName  = "Course Name"
	colCapacity    = "Capacity"
	colGroup       = "Group"
	colGroupQuota  = "Group Constraint"
	colTiebreakers = "Tiebreaker Subjects"
)

// ReadStudentWorkbook loads the roster from the first sheet of an xlsx
// workbook laid out as: Student Name | Preference 1..P | subject columns |
// Total Score. The preference depth is inferred from the headers.
func ReadStudentWorkbook(path string) (*match.Roster, error) {
	rows, err := sheetRows(path)
	if err != nil {
		return nil, fmt.Errorf("student workbook: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("student workbook: no header row")
	}
	header := rows[0]

	var prefCols, subjectCols []int
	totalCol := -1
	for i, h := range header {
		name := strings.TrimSpace(h)
		switch {
		case name == colStudentName || name == "":
		case strings.HasPrefix(name, "Preference"):
			prefCols = append(prefCols, i)
		case name == colTotalScore:
			totalCol = i
		default:
			subjectCols = append(subjectCols, i)
		}
	}
	if len(prefCols) == 0 {
		return nil, fmt.Errorf("student workbook: no Preference columns")
	}
	if totalCol < 0 {
		return nil, fmt.Errorf("student workbook: no %q column", colTotalScore)
	}

	students := make([]*match.Student, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := strings.TrimSpace(cellAt(row, 0))
		if name == "" {
			continue
		}
		prefs := make([]string, len(prefCols))
		for j, col := range prefCols {
			prefs[j] = strings.TrimSpace(cellAt(row, col))
		}
		scores := make(map[string]string, len(subjectCols))
		for _, col := range subjectCols {
			scores[strings.TrimSpace(header[col])] = cellAt(row, col)
		}
		students = append(students, &match.Student{
			Name:        name,
			Preferences: prefs,
			Scores:      scores,
			TotalRaw:    cellAt(row, totalCol),
		})
	}
	roster, err := match.NewRoster(students)
	if err != nil {
		return nil, fmt.Errorf("student workbook: %w", err)
	}
	return roster, nil
}

// ReadCourseWorkbook loads the catalog from the first sheet of an xlsx
// workbook laid out as: Course Name | Capacity | Group | Group Constraint |
// criterion subject columns | Tiebreaker Subjects. A blank capacity means
// unlimited unless a group constraint supplies the cap. Malformed
// criterion cells reject the workbook with a row-addressed error.
func ReadCourseWorkbook(path string) (*match.Catalog, error) {
	rows, err := sheetRows(path)
	if err != nil {
		return nil, fmt.Errorf("course workbook: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("course workbook: no header row")
	}
	header := rows[0]

	nameCol, capacityCol, groupCol, quotaCol, tieCol := -1, -1, -1, -1, -1
	var subjectCols []int
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case colCourseName:
			nameCol = i
		case colCapacity:
			capacityCol = i
		case colGroup:
			groupCol = i
		case colGroupQuota:
			quotaCol = i
		case colTiebreakers:
			tieCol = i
		case "":
		default:
			subjectCols = append(subjectCols, i)
		}
	}
	if nameCol < 0 {
		return nil, fmt.Errorf("course workbook: no %q column", colCourseName)
	}

	courses := make([]*match.Course, 0, len(rows)-1)
	for rowIdx, row := range rows[1:] {
		name := strings.TrimSpace(cellAt(row, nameCol))
		if name == "" {
			continue
		}

		quotaCell := strings.TrimSpace(cellAt(row, quotaCol))
		var quota *int
		if quotaCell != "" {
			q, err := parseIntCell(quotaCell)
			if err != nil {
				return nil, fmt.Errorf("course workbook row %d: group constraint: %w", rowIdx+2, err)
			}
			quota = &q
		}

		capacity := match.UnboundedCapacity()
		if capCell := strings.TrimSpace(cellAt(row, capacityCol)); capCell != "" {
			n, err := parseIntCell(capCell)
			if err != nil {
				return nil, fmt.Errorf("course workbook row %d: capacity: %w", rowIdx+2, err)
			}
			capacity = match.BoundedCapacity(n)
		} else if quota != nil {
			// Blank capacity under a group constraint: the constraint is
			// the cap, matching the source spreadsheets.
			capacity = match.BoundedCapacity(*quota)
		}

		var criteria []match.Criterion
		for _, col := range subjectCols {
			cr, ok, err := ParseCriterionCell(strings.TrimSpace(header[col]), cellAt(row, col))
			if err != nil {
				return nil, fmt.Errorf("course workbook row %d: %w", rowIdx+2, err)
			}
			if ok {
				criteria = append(criteria, cr)
			}
		}

		courses = append(courses, &match.Course{
			Name:        name,
			Capacity:    capacity,
			Group:       strings.TrimSpace(cellAt(row, groupCol)),
			GroupQuota:  quota,
			Criteria:    criteria,
			Tiebreakers: SplitTiebreakers(cellAt(row, tieCol)),
		})
	}
	catalog, err := match.NewCatalog(courses)
	if err != nil {
		return nil, fmt.Errorf("course workbook: %w", err)
	}
	return catalog, nil
}

// sheetRows opens a workbook and returns the rows of its first sheet.
func sheetRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetRows(f.GetSheetName(0))
}

// cellAt reads a cell tolerant of ragged rows; excelize trims trailing
// blanks, so short rows are normal.
func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// parseIntCell parses an integer cell, tolerating float renderings like
// "25.0" that spreadsheets produce.
func parseIntCell(cell string) (int, error) {
	if n, err := strconv.Atoi(cell); err == nil {
		return n, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", cell)
	}
	if v != float64(int(v)) {
		return 0, fmt.Errorf("not an integer: %q", cell)
	}
	return int(v), nil
}
