package api

import (
	"fmt"

	"github.com/course-match/course-match/match"
)

// JSON row converters. Keys mirror the report workbook headers so the
// frontend renders either source the same way. Unbounded vacancies become
// JSON null, which the frontend reads as "No limit".

func placedJSON(rows []match.PlacedRow) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		row := map[string]any{
			"Student Name":    r.StudentName,
			"Assigned Course": r.AssignedCourse,
			"Total Score":     r.TotalScore,
		}
		addPreferences(row, r.Preferences)
		out = append(out, row)
	}
	return out
}

func summaryJSON(rows []match.CourseSummaryRow) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		row := map[string]any{
			"Course Name":                       r.CourseName,
			"Original Vacancies":                vacancyJSON(r.OriginalVacancies),
			"Remaining Vacancies":               vacancyJSON(r.RemainingVacancies),
			"Number of students posted":         r.Posted,
			"Last Ranked Student Posted":        r.LastRanked,
			"Last Ranked Student Overall Score": r.LastRankedTotal,
		}
		for _, cs := range r.CriterionScores {
			row[fmt.Sprintf("Last Ranked Student %s Score", cs.Subject)] = cs.Score
		}
		out = append(out, row)
	}
	return out
}

func unplacedJSON(rows []match.UnplacedRow) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		row := map[string]any{
			"Student Name":                r.StudentName,
			"Reason for not being placed": r.Reason,
		}
		addPreferences(row, r.Preferences)
		out = append(out, row)
	}
	return out
}

func addPreferences(row map[string]any, prefs []string) {
	for i, p := range prefs {
		row[fmt.Sprintf("Preference %d", i+1)] = p
	}
}

func vacancyJSON(c match.Capacity) any {
	if n, bounded := c.Seats(); bounded {
		return n
	}
	return nil
}
