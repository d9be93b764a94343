// Package export serializes the report tables to xlsx workbooks and the
// decision trace to a log file. It consumes terminal state only.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/course-match/course-match/match"
)

// Workbook file names, kept stable for downstream consumers.
const (
	PlacedWorkbook   = "outputmatchingresults.xlsx"
	CourseWorkbook   = "course_report.xlsx"
	UnplacedWorkbook = "unplaced_students_report.xlsx"
	TraceLogFile     = "matcher_log.txt"
)

// OutputFiles lists the artifacts a run produced. Unplaced is empty when
// no student went unplaced.
type OutputFiles struct {
	Students     string `json:"students"`
	CourseReport string `json:"course_report"`
	Unplaced     string `json:"unplaced,omitempty"`
}

// WriteReports writes the three report workbooks into dir, creating it if
// needed. The unplaced workbook is only written when it has rows.
func WriteReports(dir string, placed []match.PlacedRow, summary []match.CourseSummaryRow, unplaced []match.UnplacedRow, depth int) (*OutputFiles, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	files := &OutputFiles{
		Students:     filepath.Join(dir, PlacedWorkbook),
		CourseReport: filepath.Join(dir, CourseWorkbook),
	}
	if err := writePlacedWorkbook(files.Students, placed, depth); err != nil {
		return nil, err
	}
	if err := writeCourseWorkbook(files.CourseReport, summary); err != nil {
		return nil, err
	}
	if len(unplaced) > 0 {
		files.Unplaced = filepath.Join(dir, UnplacedWorkbook)
		if err := writeUnplacedWorkbook(files.Unplaced, unplaced, depth); err != nil {
			return nil, err
		}
	}
	return files, nil
}

func writePlacedWorkbook(path string, rows []match.PlacedRow, depth int) error {
	header := []any{"Student Name", "Assigned Course"}
	for i := 1; i <= depth; i++ {
		header = append(header, fmt.Sprintf("Preference %d", i))
	}
	header = append(header, "Total Score")

	cells := make([][]any, 0, len(rows))
	for _, r := range rows {
		row := []any{r.StudentName, r.AssignedCourse}
		for i := 0; i < depth; i++ {
			row = append(row, prefAt(r.Preferences, i))
		}
		row = append(row, r.TotalScore)
		cells = append(cells, row)
	}
	return writeSheet(path, "Matching Results", header, cells)
}

func writeCourseWorkbook(path string, rows []match.CourseSummaryRow) error {
	header := []any{
		"Course Name", "Original Vacancies", "Remaining Vacancies",
		"Number of students posted", "Last Ranked Student Posted",
	}
	// Criterion columns vary per course; the sheet carries the union in
	// first-seen order so every row lands under its own subject.
	var subjects []string
	seen := make(map[string]bool)
	for _, r := range rows {
		for _, cs := range r.CriterionScores {
			if !seen[cs.Subject] {
				seen[cs.Subject] = true
				subjects = append(subjects, cs.Subject)
			}
		}
	}
	for _, subject := range subjects {
		header = append(header, fmt.Sprintf("Last Ranked Student %s Score", subject))
	}
	header = append(header, "Last Ranked Student Overall Score")

	cells := make([][]any, 0, len(rows))
	for _, r := range rows {
		row := []any{
			r.CourseName, vacancyCell(r.OriginalVacancies), vacancyCell(r.RemainingVacancies),
			r.Posted, r.LastRanked,
		}
		scores := make(map[string]string, len(r.CriterionScores))
		for _, cs := range r.CriterionScores {
			scores[cs.Subject] = cs.Score
		}
		for _, subject := range subjects {
			if score, ok := scores[subject]; ok {
				row = append(row, score)
			} else {
				row = append(row, "")
			}
		}
		row = append(row, r.LastRankedTotal)
		cells = append(cells, row)
	}
	return writeSheet(path, "Course Report", header, cells)
}

func writeUnplacedWorkbook(path string, rows []match.UnplacedRow, depth int) error {
	header := []any{"Student Name", "Reason for not being placed"}
	for i := 1; i <= depth; i++ {
		header = append(header, fmt.Sprintf("Preference %d", i))
	}

	cells := make([][]any, 0, len(rows))
	for _, r := range rows {
		row := []any{r.StudentName, r.Reason}
		for i := 0; i < depth; i++ {
			row = append(row, prefAt(r.Preferences, i))
		}
		cells = append(cells, row)
	}
	return writeSheet(path, "Unplaced Students Report", header, cells)
}

// writeSheet materializes a header plus data rows as a one-sheet workbook.
func writeSheet(path, sheet string, header []any, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return fmt.Errorf("write %s: %w", filepath.Base(path), err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// vacancyCell renders a vacancy count, preserving Unbounded as its
// "Unlimited" label instead of a numeric sentinel.
func vacancyCell(c match.Capacity) any {
	if n, bounded := c.Seats(); bounded {
		return n
	}
	return c.String()
}

func prefAt(prefs []string, i int) string {
	if i < 0 || i >= len(prefs) {
		return ""
	}
	return prefs[i]
}
