package service

import (
	"fmt"

	"github.com/dd0wney/socialgraph/pkg/audit"
	"github.com/dd0wney/socialgraph/pkg/logging"
	"github.com/dd0wney/socialgraph/pkg/report"
	"github.com/dd0wney/socialgraph/pkg/storage"
	"github.com/dd0wney/socialgraph/pkg/validation"
)

// AddFriendship validates req and links the two students.
func (s *Service) AddFriendship(req validation.FriendshipRequest) error {
	if err := validation.ValidateFriendshipRequest(&req); err != nil {
		return fmt.Errorf("invalid friendship: %w", err)
	}
	return s.mutate(friendshipChange("add_friendship", audit.ActionCreate, req.StudentA, req.StudentB), func(g *storage.Graph) error {
		return g.AddFriendship(req.StudentA, req.StudentB, storage.Weight(req.Weight))
	}, logging.Friendship(req.StudentA, req.StudentB))
}

// UpdateFriendshipWeight changes the weight of an existing friendship.
func (s *Service) UpdateFriendshipWeight(id1, id2 string, w storage.Weight) error {
	return s.mutate(friendshipChange("update_friendship", audit.ActionUpdate, id1, id2), func(g *storage.Graph) error {
		return g.UpdateFriendshipWeight(id1, id2, w)
	}, logging.Friendship(id1, id2))
}

// RemoveFriendship unlinks two students.
func (s *Service) RemoveFriendship(id1, id2 string) error {
	return s.mutate(friendshipChange("remove_friendship", audit.ActionDelete, id1, id2), func(g *storage.Graph) error {
		return g.RemoveFriendship(id1, id2)
	}, logging.Friendship(id1, id2))
}

// AreFriends reports whether two students are linked.
func (s *Service) AreFriends(id1, id2 string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.AreConnected(id1, id2)
}

// Friends lists id's friends with their tie weight, in the order they were
// added.
func (s *Service) Friends(id string) ([]report.Friend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.graph.HasStudent(id) {
		return nil, storage.StudentNotFoundError("Friends", id)
	}
	friends := make([]report.Friend, 0, s.graph.Degree(id))
	s.graph.ForEachNeighbor(id, func(neighbor string, w storage.Weight) bool {
		if st, err := s.graph.Student(neighbor); err == nil {
			friends = append(friends, report.Friend{ID: st.ID, Name: st.Name, Category: st.Category, Weight: w})
		}
		return true
	})
	return friends, nil
}
