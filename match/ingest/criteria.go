package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/course-match/course-match/match"
)

// criterionCellRE matches a workbook criterion cell: a comparator followed
// by a number, e.g. ">= 70" or "<=55.5".
var criterionCellRE = regexp.MustCompile(`^([<>]=)\s*(\d+(?:\.\d+)?)$`)

// criterionLineRE matches a scenario-spec criterion line with the subject
// inline, e.g. "Math >= 70".
var criterionLineRE = regexp.MustCompile(`^(.+?)\s*([<>]=)\s*(\d+(?:\.\d+)?)$`)

// ParseCriterionCell parses a workbook criterion cell for the given
// subject column. A blank cell means no criterion (ok=false); anything
// that is neither blank nor comparator+number is a malformed criterion and
// rejects the input up-front.
func ParseCriterionCell(subject, cell string) (match.Criterion, bool, error) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return match.Criterion{}, false, nil
	}
	m := criterionCellRE.FindStringSubmatch(trimmed)
	if m == nil {
		return match.Criterion{}, false, fmt.Errorf("malformed criterion %q for subject %q", cell, subject)
	}
	threshold, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return match.Criterion{}, false, fmt.Errorf("malformed criterion %q for subject %q: %w", cell, subject, err)
	}
	return match.Criterion{
		Subject:   subject,
		Cmp:       match.Comparator(m[1]),
		Threshold: threshold,
	}, true, nil
}

// ParseCriterionLine parses a scenario-spec criterion like "Math >= 70".
func ParseCriterionLine(line string) (match.Criterion, error) {
	m := criterionLineRE.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return match.Criterion{}, fmt.Errorf("malformed criterion %q", line)
	}
	threshold, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return match.Criterion{}, fmt.Errorf("malformed criterion %q: %w", line, err)
	}
	return match.Criterion{
		Subject:   strings.TrimSpace(m[1]),
		Cmp:       match.Comparator(m[2]),
		Threshold: threshold,
	}, nil
}

// SplitTiebreakers parses a comma-separated tiebreaker cell into an
// ordered subject list; blanks yield an empty list.
func SplitTiebreakers(cell string) []string {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, ",")
	subjects := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			subjects = append(subjects, s)
		}
	}
	return subjects
}
