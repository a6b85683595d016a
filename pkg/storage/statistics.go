package storage

import (
	"cmp"
	"slices"
)

// CategoryCount is the number of students in one category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// PopularStudent is a student together with the number of friends.
type PopularStudent struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Friends int    `json:"friends"`
}

// Statistics summarises the network.
type Statistics struct {
	StudentCount       int              `json:"student_count"`
	FriendshipCount    int              `json:"friendship_count"`
	AverageFriends     float64          `json:"average_friends"`
	Density            float64          `json:"density"`
	IsolatedStudents   int              `json:"isolated_students"`
	ByCategory         []CategoryCount  `json:"by_category"`
	MostPopular        []PopularStudent `json:"most_popular"`
	WeightDistribution map[Weight]int   `json:"weight_distribution"`
}

// mostPopularLimit bounds Statistics.MostPopular
const mostPopularLimit = 5

// GetStatistics computes summary statistics for the current graph.
func (g *Graph) GetStatistics() Statistics {
	stats := Statistics{
		StudentCount:       g.StudentCount(),
		FriendshipCount:    g.edgeCount,
		WeightDistribution: map[Weight]int{WeightNormal: 0, WeightClose: 0, WeightClosest: 0},
	}
	if stats.StudentCount == 0 {
		return stats
	}

	n := float64(stats.StudentCount)
	stats.AverageFriends = float64(2*stats.FriendshipCount) / n
	if stats.StudentCount > 1 {
		stats.Density = float64(stats.FriendshipCount) / (n * (n - 1) / 2)
	}

	categories := make(map[string]int)
	var order []string
	popular := make([]PopularStudent, 0, stats.StudentCount)
	for pair := g.students.Oldest(); pair != nil; pair = pair.Next() {
		s := pair.Value
		if _, seen := categories[s.Category]; !seen {
			order = append(order, s.Category)
		}
		categories[s.Category]++

		deg := g.Degree(s.ID)
		if deg == 0 {
			stats.IsolatedStudents++
		}
		popular = append(popular, PopularStudent{ID: s.ID, Name: s.Name, Friends: deg})
	}

	for _, c := range order {
		stats.ByCategory = append(stats.ByCategory, CategoryCount{Category: c, Count: categories[c]})
	}
	slices.SortStableFunc(stats.ByCategory, func(a, b CategoryCount) int {
		return cmp.Compare(b.Count, a.Count)
	})

	slices.SortStableFunc(popular, func(a, b PopularStudent) int {
		return cmp.Compare(b.Friends, a.Friends)
	})
	if len(popular) > mostPopularLimit {
		popular = popular[:mostPopularLimit]
	}
	stats.MostPopular = popular

	for _, f := range g.Friendships() {
		stats.WeightDistribution[f.Weight]++
	}
	return stats
}
