package match

// CourseHasRoom reports whether the course can take one more student under
// its own capacity.
func (st *PlacementState) CourseHasRoom(c *Course) bool {
	return c.Capacity.HasRoom(len(st.byCourse[c.Name]))
}

// GroupCohort enumerates the courses sharing the course's group quota.
// Computed from the immutable catalog, not from placement state.
func (st *PlacementState) GroupCohort(c *Course) []*Course {
	return st.catalog.GroupCohort(c)
}

// GroupUsage sums placements across the course's cohort.
func (st *PlacementState) GroupUsage(c *Course) int {
	total := 0
	for _, member := range st.GroupCohort(c) {
		total += len(st.byCourse[member.Name])
	}
	return total
}

// GroupHasRoom reports whether the cohort can take one more student under
// the group quota. Courses without a quota always have group room.
func (st *PlacementState) GroupHasRoom(c *Course) bool {
	if c.GroupQuota == nil {
		return true
	}
	return st.GroupUsage(c) < *c.GroupQuota
}
