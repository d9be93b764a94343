package match

import "fmt"

// PlacementState owns the mutable assignment relation: course → students
// in placement order, and its inverse. All writes go through TryPlace;
// everything else only reads.
type PlacementState struct {
	catalog   *Catalog
	byCourse  map[string][]*Student
	byStudent map[string]*Course
}

// NewPlacementState returns an empty assignment over the catalog.
func NewPlacementState(catalog *Catalog) *PlacementState {
	st := &PlacementState{
		catalog:   catalog,
		byCourse:  make(map[string][]*Student, catalog.Len()),
		byStudent: make(map[string]*Course),
	}
	for _, c := range catalog.Courses() {
		st.byCourse[c.Name] = nil
	}
	return st
}

// Assigned returns the students placed in a course, in placement order.
func (st *PlacementState) Assigned(courseName string) []*Student {
	return st.byCourse[courseName]
}

// CourseOf returns the course currently holding the student, nil when
// unplaced.
func (st *PlacementState) CourseOf(s *Student) *Course {
	return st.byStudent[s.Name]
}

// attach appends the student to the course's list, detaching any prior
// placement first so no student ever appears twice.
func (st *PlacementState) attach(s *Student, c *Course) {
	st.detach(s)
	st.byCourse[c.Name] = append(st.byCourse[c.Name], s)
	st.byStudent[s.Name] = c
}

// detach removes the student from whichever course holds them. Idempotent:
// detaching an unplaced student is a no-op.
func (st *PlacementState) detach(s *Student) {
	prev, ok := st.byStudent[s.Name]
	if !ok {
		return
	}
	list := st.byCourse[prev.Name]
	for i, cur := range list {
		if cur == s {
			st.byCourse[prev.Name] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	delete(st.byStudent, s.Name)
}

// Verify checks the terminal invariants: one placement per student, course
// capacities, group quotas, and agreement between the course lists and the
// inverse index. A violation here is a bug in the transaction, not bad
// input.
func (st *PlacementState) Verify() error {
	seen := make(map[string]string)
	for _, c := range st.catalog.Courses() {
		assigned := st.byCourse[c.Name]
		if n, bounded := c.Capacity.Seats(); bounded && len(assigned) > n {
			return fmt.Errorf("course %q holds %d students, capacity is %d", c.Name, len(assigned), n)
		}
		for _, s := range assigned {
			if prev, dup := seen[s.Name]; dup {
				return fmt.Errorf("student %q placed in both %q and %q", s.Name, prev, c.Name)
			}
			seen[s.Name] = c.Name
			if st.byStudent[s.Name] != c {
				return fmt.Errorf("student %q listed under %q but indexed elsewhere", s.Name, c.Name)
			}
		}
	}
	for name, c := range st.byStudent {
		if seen[name] != c.Name {
			return fmt.Errorf("student %q indexed to %q but missing from its list", name, c.Name)
		}
	}
	checked := make(map[string]bool)
	for _, c := range st.catalog.Courses() {
		if c.GroupQuota == nil || checked[c.Group] {
			continue
		}
		checked[c.Group] = true
		if used := st.GroupUsage(c); used > *c.GroupQuota {
			return fmt.Errorf("group %q holds %d students, quota is %d", c.Group, used, *c.GroupQuota)
		}
	}
	return nil
}
