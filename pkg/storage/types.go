package storage

import (
	"fmt"
	"slices"
	"strings"
)

// Weight classifies the strength of a friendship.
type Weight int

const (
	// WeightNormal is an ordinary friendship
	WeightNormal Weight = 1
	// WeightClose is a close friendship
	WeightClose Weight = 2
	// WeightClosest is the strongest tie
	WeightClosest Weight = 3

	MinWeight = WeightNormal
	MaxWeight = WeightClosest
)

// Valid reports whether w is one of the three tie-strength classes.
func (w Weight) Valid() bool {
	return w >= MinWeight && w <= MaxWeight
}

// String returns the human readable tie class.
func (w Weight) String() string {
	switch w {
	case WeightNormal:
		return "normal"
	case WeightClose:
		return "close"
	case WeightClosest:
		return "closest"
	default:
		return fmt.Sprintf("weight(%d)", int(w))
	}
}

// Student is a node of the social graph.
type Student struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Interests []string `json:"interests"`
}

// Clone returns a deep copy so callers cannot alias graph-owned slices.
func (s *Student) Clone() Student {
	c := *s
	c.Interests = slices.Clone(s.Interests)
	if c.Interests == nil {
		c.Interests = []string{}
	}
	return c
}

// HasInterest reports whether the student lists the given interest.
func (s *Student) HasInterest(interest string) bool {
	return slices.Contains(s.Interests, strings.TrimSpace(interest))
}

// Friendship is an undirected weighted edge between two students.
type Friendship struct {
	A      string `json:"id1"`
	B      string `json:"id2"`
	Weight Weight `json:"weight"`
}

// normalizeInterests trims, drops empty entries and de-duplicates while
// keeping first-seen order.
func normalizeInterests(interests []string) []string {
	out := make([]string, 0, len(interests))
	for _, interest := range interests {
		interest = strings.TrimSpace(interest)
		if interest == "" || slices.Contains(out, interest) {
			continue
		}
		out = append(out, interest)
	}
	return out
}
