package match

// Qualifies reports whether the student meets every subject criterion of
// the course. A course without criteria admits everyone. Missing and
// non-numeric scores fail whichever criterion reads them.
func Qualifies(s *Student, c *Course) bool {
	for _, cr := range c.Criteria {
		if !Compare(s.Score(cr.Subject), cr.Cmp, cr.Threshold) {
			return false
		}
	}
	return true
}
