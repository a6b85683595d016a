package storage

import (
	"slices"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// InsertStudent creates a new student with an empty adjacency list.
func (g *Graph) InsertStudent(id, name, category string, interests []string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return NewError("InsertStudent").Student(id).Cause(ErrInvalidID).Err()
	}
	if _, exists := g.students.Get(id); exists {
		return NewError("InsertStudent").Student(id).Cause(ErrDuplicateID).Err()
	}

	g.students.Set(id, &Student{
		ID:        id,
		Name:      name,
		Category:  category,
		Interests: normalizeInterests(interests),
	})
	if _, exists := g.adjacency.Get(id); !exists {
		g.adjacency.Set(id, orderedmap.New[string, Weight]())
	}
	return nil
}

// RemoveStudent deletes a student and every friendship touching it.
func (g *Graph) RemoveStudent(id string) error {
	if _, exists := g.students.Get(id); !exists {
		return StudentNotFoundError("RemoveStudent", id)
	}

	if nm := g.neighbors(id); nm != nil {
		for pair := nm.Oldest(); pair != nil; pair = pair.Next() {
			if other := g.neighbors(pair.Key); other != nil {
				other.Delete(id)
			}
			g.edgeCount--
		}
	}

	g.adjacency.Delete(id)
	g.students.Delete(id)
	return nil
}

// UpdateStudent replaces a student's name and category. Empty values keep
// the current attribute.
func (g *Graph) UpdateStudent(id, name, category string) error {
	s, exists := g.students.Get(id)
	if !exists {
		return StudentNotFoundError("UpdateStudent", id)
	}
	if name = strings.TrimSpace(name); name != "" {
		s.Name = name
	}
	if category = strings.TrimSpace(category); category != "" {
		s.Category = category
	}
	return nil
}

// AddInterest appends an interest tag. Adding a tag the student already has
// is a no-op.
func (g *Graph) AddInterest(id, interest string) error {
	s, exists := g.students.Get(id)
	if !exists {
		return StudentNotFoundError("AddInterest", id)
	}
	s.Interests = normalizeInterests(append(s.Interests, interest))
	return nil
}

// RemoveInterest deletes an interest tag.
func (g *Graph) RemoveInterest(id, interest string) error {
	s, exists := g.students.Get(id)
	if !exists {
		return StudentNotFoundError("RemoveInterest", id)
	}
	interest = strings.TrimSpace(interest)
	idx := slices.Index(s.Interests, interest)
	if idx < 0 {
		return NewError("RemoveInterest").Student(id).Context("interest " + interest).Cause(ErrStudentNotFound).Err()
	}
	s.Interests = slices.Delete(s.Interests, idx, idx+1)
	return nil
}

// Student returns a copy of the student with the given ID.
func (g *Graph) Student(id string) (Student, error) {
	s, exists := g.students.Get(id)
	if !exists {
		return Student{}, StudentNotFoundError("Student", id)
	}
	return s.Clone(), nil
}

// HasStudent reports whether a student exists.
func (g *Graph) HasStudent(id string) bool {
	_, exists := g.students.Get(id)
	return exists
}

// StudentIDs returns all student IDs in insertion order.
func (g *Graph) StudentIDs() []string {
	ids := make([]string, 0, g.students.Len())
	for pair := g.students.Oldest(); pair != nil; pair = pair.Next() {
		ids = append(ids, pair.Key)
	}
	return ids
}

// Students returns copies of all students in insertion order.
func (g *Graph) Students() []Student {
	out := make([]Student, 0, g.students.Len())
	for pair := g.students.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value.Clone())
	}
	return out
}

// Category returns the student's category, or "" when unknown.
func (g *Graph) Category(id string) string {
	if s, exists := g.students.Get(id); exists {
		return s.Category
	}
	return ""
}

// Interests returns a copy of the student's interests, or nil when unknown.
func (g *Graph) Interests(id string) []string {
	if s, exists := g.students.Get(id); exists {
		return slices.Clone(s.Interests)
	}
	return nil
}

// SearchStudents returns students whose name or category contains the query,
// case-insensitively, in insertion order.
func (g *Graph) SearchStudents(query string) []Student {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var out []Student
	for pair := g.students.Oldest(); pair != nil; pair = pair.Next() {
		s := pair.Value
		if strings.Contains(strings.ToLower(s.Name), query) ||
			strings.Contains(strings.ToLower(s.Category), query) {
			out = append(out, s.Clone())
		}
	}
	return out
}
