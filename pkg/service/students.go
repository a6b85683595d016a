package service

import (
	"fmt"

	"github.com/dd0wney/socialgraph/pkg/audit"
	"github.com/dd0wney/socialgraph/pkg/logging"
	"github.com/dd0wney/socialgraph/pkg/storage"
	"github.com/dd0wney/socialgraph/pkg/validation"
)

// AddStudent validates req and inserts the student.
func (s *Service) AddStudent(req validation.StudentRequest) error {
	if err := validation.ValidateStudentRequest(&req); err != nil {
		return fmt.Errorf("invalid student: %w", err)
	}
	return s.mutate(studentChange("insert_student", audit.ActionCreate, req.ID), func(g *storage.Graph) error {
		return g.InsertStudent(req.ID, req.Name, req.Category, req.Interests)
	}, logging.StudentID(req.ID))
}

// RemoveStudent deletes a student and all of their friendships.
func (s *Service) RemoveStudent(id string) error {
	return s.mutate(studentChange("remove_student", audit.ActionDelete, id), func(g *storage.Graph) error {
		return g.RemoveStudent(id)
	}, logging.StudentID(id))
}

// UpdateStudent changes a student's name and category. Empty values keep the
// current ones.
func (s *Service) UpdateStudent(id, name, category string) error {
	return s.mutate(studentChange("update_student", audit.ActionUpdate, id), func(g *storage.Graph) error {
		return g.UpdateStudent(id, name, category)
	}, logging.StudentID(id))
}

// AddInterest adds an interest to a student.
func (s *Service) AddInterest(id, interest string) error {
	return s.mutate(interestChange("add_interest", audit.ActionCreate, id, interest), func(g *storage.Graph) error {
		return g.AddInterest(id, interest)
	}, logging.StudentID(id), logging.String("interest", interest))
}

// RemoveInterest removes an interest from a student.
func (s *Service) RemoveInterest(id, interest string) error {
	return s.mutate(interestChange("remove_interest", audit.ActionDelete, id, interest), func(g *storage.Graph) error {
		return g.RemoveInterest(id, interest)
	}, logging.StudentID(id), logging.String("interest", interest))
}

// Student returns a copy of one student.
func (s *Service) Student(id string) (storage.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.Student(id)
}

// Students lists every student in insertion order.
func (s *Service) Students() []storage.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.Students()
}

// Search matches name or category, case-insensitively.
func (s *Service) Search(query string) []storage.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.SearchStudents(query)
}

// Statistics summarises the network.
func (s *Service) Statistics() storage.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.GetStatistics()
}
