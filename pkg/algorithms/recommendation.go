package algorithms

import (
	"cmp"
	"slices"

	"github.com/dd0wney/socialgraph/pkg/storage"
)

const (
	mutualFriendPoints    = 2.0
	closeFriendBonus      = 0.5 // per weight level above normal
	sameCategoryBonus     = 1.0
	interestCategoryBonus = 0.5 // must stay below one shared interest
)

// Recommendation is a suggested friend for a student.
type Recommendation struct {
	StudentID       string   `json:"student_id"`
	Score           float64  `json:"score"`
	MutualFriends   []string `json:"mutual_friends,omitempty"`
	SharedInterests []string `json:"shared_interests,omitempty"`
	SameCategory    bool     `json:"same_category"`
}

// RecommendByMutualFriends ranks non-friends of id by mutual friends. Each
// mutual friend is worth two points, plus half a point for every weight level
// above normal on the edge between id and that friend. Sharing id's category
// adds one point. Candidates scoring zero are dropped. A non-positive limit
// returns every candidate.
func RecommendByMutualFriends(graph *storage.Graph, id string, limit int) []Recommendation {
	if !graph.HasStudent(id) {
		return []Recommendation{}
	}

	friends := make(map[string]storage.Weight, graph.Degree(id))
	graph.ForEachNeighbor(id, func(neighbor string, w storage.Weight) bool {
		friends[neighbor] = w
		return true
	})
	category := graph.Category(id)

	recs := make([]Recommendation, 0)
	for _, candidate := range graph.StudentIDs() {
		if candidate == id {
			continue
		}
		if _, isFriend := friends[candidate]; isFriend {
			continue
		}

		var mutual []string
		score := 0.0
		for _, m := range graph.Neighbors(candidate) {
			w, ok := friends[m]
			if !ok {
				continue
			}
			mutual = append(mutual, m)
			score += mutualFriendPoints
			if w > storage.WeightNormal {
				score += float64(w-storage.WeightNormal) * closeFriendBonus
			}
		}

		sameCategory := graph.Category(candidate) == category
		if sameCategory {
			score += sameCategoryBonus
		}
		if score <= 0 {
			continue
		}

		recs = append(recs, Recommendation{
			StudentID:     candidate,
			Score:         score,
			MutualFriends: mutual,
			SameCategory:  sameCategory,
		})
	}

	return sortRecommendations(recs, limit)
}

// RecommendByInterests ranks non-friends of id that share at least one
// interest. The score is the number of shared interests plus half a point
// for the same category.
func RecommendByInterests(graph *storage.Graph, id string, limit int) []Recommendation {
	student, err := graph.Student(id)
	if err != nil {
		return []Recommendation{}
	}

	recs := make([]Recommendation, 0)
	for _, other := range graph.Students() {
		if other.ID == id || graph.AreConnected(id, other.ID) {
			continue
		}

		var shared []string
		for _, interest := range student.Interests {
			if other.HasInterest(interest) {
				shared = append(shared, interest)
			}
		}
		if len(shared) == 0 {
			continue
		}

		score := float64(len(shared))
		sameCategory := other.Category == student.Category
		if sameCategory {
			score += interestCategoryBonus
		}

		recs = append(recs, Recommendation{
			StudentID:       other.ID,
			Score:           score,
			SharedInterests: shared,
			SameCategory:    sameCategory,
		})
	}

	return sortRecommendations(recs, limit)
}

// sortRecommendations orders by score descending, keeping insertion order
// among equal scores, and truncates to limit.
func sortRecommendations(recs []Recommendation, limit int) []Recommendation {
	slices.SortStableFunc(recs, func(a, b Recommendation) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}
