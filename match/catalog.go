package match

import "fmt"

// Catalog is the immutable course input, indexed by name and by group.
type Catalog struct {
	courses []*Course
	byName  map[string]*Course
	cohorts map[string][]*Course
}

// NewCatalog validates and indexes the course list. Group quotas must be
// consistent across a group: the quota applies jointly, so two members
// declaring different values is a contradiction.
func NewCatalog(courses []*Course) (*Catalog, error) {
	c := &Catalog{
		byName:  make(map[string]*Course, len(courses)),
		cohorts: make(map[string][]*Course),
	}
	quotas := make(map[string]int)
	for i, course := range courses {
		if course.Name == "" {
			return nil, fmt.Errorf("course at row %d has an empty name", i+1)
		}
		if _, dup := c.byName[course.Name]; dup {
			return nil, fmt.Errorf("duplicate course name %q", course.Name)
		}
		if n, bounded := course.Capacity.Seats(); bounded && n < 0 {
			return nil, fmt.Errorf("course %q: negative capacity %d", course.Name, n)
		}
		if course.GroupQuota != nil {
			if course.Group == "" {
				return nil, fmt.Errorf("course %q: group quota without a group", course.Name)
			}
			if *course.GroupQuota < 0 {
				return nil, fmt.Errorf("course %q: negative group quota %d", course.Name, *course.GroupQuota)
			}
			if prev, seen := quotas[course.Group]; seen && prev != *course.GroupQuota {
				return nil, fmt.Errorf("group %q: conflicting quotas %d and %d", course.Group, prev, *course.GroupQuota)
			}
			quotas[course.Group] = *course.GroupQuota
		}
		c.byName[course.Name] = course
		c.courses = append(c.courses, course)
		if course.Group != "" {
			c.cohorts[course.Group] = append(c.cohorts[course.Group], course)
		}
	}
	return c, nil
}

// Courses returns the catalog in input order.
func (c *Catalog) Courses() []*Course {
	return c.courses
}

// Course looks a course up by name.
func (c *Catalog) Course(name string) (*Course, bool) {
	course, ok := c.byName[name]
	return course, ok
}

// Len is the number of courses.
func (c *Catalog) Len() int {
	return len(c.courses)
}

// GroupCohort returns the courses sharing a group with the given course,
// itself included, in catalog order. Ungrouped courses form a singleton
// cohort.
func (c *Catalog) GroupCohort(course *Course) []*Course {
	if course.Group == "" {
		return []*Course{course}
	}
	return c.cohorts[course.Group]
}
