package match

import "fmt"

// Roster is the immutable student input: insertion-ordered, unique names,
// uniform preference depth across all students.
type Roster struct {
	students []*Student
	byName   map[string]*Student
	depth    int
}

// NewRoster validates and indexes the student list. Duplicate names and
// ragged preference lists are input errors, not matching concerns.
func NewRoster(students []*Student) (*Roster, error) {
	r := &Roster{byName: make(map[string]*Student, len(students))}
	for i, s := range students {
		if s.Name == "" {
			return nil, fmt.Errorf("student at row %d has an empty name", i+1)
		}
		if _, dup := r.byName[s.Name]; dup {
			return nil, fmt.Errorf("duplicate student name %q", s.Name)
		}
		if i == 0 {
			r.depth = len(s.Preferences)
		} else if len(s.Preferences) != r.depth {
			return nil, fmt.Errorf("student %q lists %d preferences, roster depth is %d",
				s.Name, len(s.Preferences), r.depth)
		}
		r.byName[s.Name] = s
		r.students = append(r.students, s)
	}
	return r, nil
}

// Students returns the roster in input order.
func (r *Roster) Students() []*Student {
	return r.students
}

// Student looks a student up by name.
func (r *Roster) Student(name string) (*Student, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// Len is the number of students.
func (r *Roster) Len() int {
	return len(r.students)
}

// Depth is the preference depth P shared by every student.
func (r *Roster) Depth() int {
	return r.depth
}
