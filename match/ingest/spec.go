// Package ingest builds the core input model — Roster and Catalog — from
// external sources: spreadsheet workbooks (the operational path) and a
// self-contained YAML scenario spec (handy for dry runs and tests).
package ingest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/course-match/course-match/match"
)

// ScenarioSpec is a whole matching scenario in one YAML document.
type ScenarioSpec struct {
	Students []StudentSpec `yaml:"students"`
	Courses  []CourseSpec  `yaml:"courses"`
}

// StudentSpec defines one student row.
type StudentSpec struct {
	Name        string            `yaml:"name"`
	Preferences []string          `yaml:"preferences"`
	Scores      map[string]string `yaml:"scores,omitempty"`
	TotalScore  string            `yaml:"total_score,omitempty"`
}

// CourseSpec defines one course row. A nil capacity means unlimited.
type CourseSpec struct {
	Name        string   `yaml:"name"`
	Capacity    *int     `yaml:"capacity,omitempty"`
	Group       string   `yaml:"group,omitempty"`
	GroupQuota  *int     `yaml:"group_quota,omitempty"`
	Criteria    []string `yaml:"criteria,omitempty"`
	Tiebreakers []string `yaml:"tiebreakers,omitempty"`
}

// LoadScenarioSpec reads and decodes a scenario YAML file.
func LoadScenarioSpec(path string) (*ScenarioSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario spec: %w", err)
	}
	var spec ScenarioSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse scenario spec: %w", err)
	}
	return &spec, nil
}

// Build converts the spec into the validated core input model.
func (sp *ScenarioSpec) Build() (*match.Roster, *match.Catalog, error) {
	students := make([]*match.Student, 0, len(sp.Students))
	for _, ss := range sp.Students {
		scores := make(map[string]string, len(ss.Scores))
		for subject, raw := range ss.Scores {
			scores[subject] = raw
		}
		students = append(students, &match.Student{
			Name:        ss.Name,
			Preferences: ss.Preferences,
			Scores:      scores,
			TotalRaw:    ss.TotalScore,
		})
	}
	roster, err := match.NewRoster(students)
	if err != nil {
		return nil, nil, fmt.Errorf("scenario students: %w", err)
	}

	courses := make([]*match.Course, 0, len(sp.Courses))
	for _, cs := range sp.Courses {
		capacity := match.UnboundedCapacity()
		if cs.Capacity != nil {
			capacity = match.BoundedCapacity(*cs.Capacity)
		}
		criteria := make([]match.Criterion, 0, len(cs.Criteria))
		for _, line := range cs.Criteria {
			cr, err := ParseCriterionLine(line)
			if err != nil {
				return nil, nil, fmt.Errorf("course %q: %w", cs.Name, err)
			}
			criteria = append(criteria, cr)
		}
		courses = append(courses, &match.Course{
			Name:        cs.Name,
			Capacity:    capacity,
			Group:       cs.Group,
			GroupQuota:  cs.GroupQuota,
			Criteria:    criteria,
			Tiebreakers: cs.Tiebreakers,
		})
	}
	catalog, err := match.NewCatalog(courses)
	if err != nil {
		return nil, nil, fmt.Errorf("scenario courses: %w", err)
	}
	return roster, catalog, nil
}
