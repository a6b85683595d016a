package algorithms

import "github.com/dd0wney/socialgraph/pkg/storage"

// CommunityStatistics aggregates size, internal friendships, categories and
// members for every label in the assignment. Members are listed in student
// insertion order. Assigned IDs that are not in the graph are skipped.
func CommunityStatistics(graph *storage.Graph, assignment map[string]int) map[int]*CommunityStats {
	stats := make(map[int]*CommunityStats)
	if len(assignment) == 0 {
		return stats
	}

	for _, student := range graph.Students() {
		label, ok := assignment[student.ID]
		if !ok {
			continue
		}
		s, exists := stats[label]
		if !exists {
			s = &CommunityStats{
				ID:         label,
				Categories: make(map[string]int),
				Members:    make([]string, 0),
			}
			stats[label] = s
		}
		s.Size++
		s.Members = append(s.Members, student.ID)
		s.Categories[student.Category]++
	}

	for _, f := range graph.Friendships() {
		la, okA := assignment[f.A]
		lb, okB := assignment[f.B]
		if okA && okB && la == lb {
			stats[la].InternalEdges++
		}
	}

	return stats
}
