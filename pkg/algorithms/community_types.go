package algorithms

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoEdgeWeight is returned by modularity optimisation on a graph whose
// friendships carry no weight at all. Modularity is undefined there.
var ErrNoEdgeWeight = errors.New("graph has no friendship weight")

// CommunityMethod selects the partitioning algorithm.
type CommunityMethod string

const (
	// MethodGreedyModularity merges communities greedily while modularity improves
	MethodGreedyModularity CommunityMethod = "greedy_modularity"
	// MethodConnectedComponents puts every connected component in its own community
	MethodConnectedComponents CommunityMethod = "connected_components"
	// MethodLabelPropagation lets students adopt the heaviest label around them
	MethodLabelPropagation CommunityMethod = "label_propagation"
)

// ParseCommunityMethod converts a string to a CommunityMethod.
func ParseCommunityMethod(s string) (CommunityMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "greedy", "greedy_modularity", "modularity":
		return MethodGreedyModularity, nil
	case "components", "connected_components":
		return MethodConnectedComponents, nil
	case "label_propagation", "propagation", "lpa":
		return MethodLabelPropagation, nil
	default:
		return "", fmt.Errorf("unknown community method %q", s)
	}
}

// CommunityOptions configures community detection.
type CommunityOptions struct {
	Method CommunityMethod
	// MaxIterations bounds label propagation; zero uses the default
	MaxIterations int
}

// DefaultCommunityOptions returns greedy modularity detection.
func DefaultCommunityOptions() CommunityOptions {
	return CommunityOptions{Method: MethodGreedyModularity}
}

// Community represents a detected community
type Community struct {
	ID      int      `json:"id"`
	Members []string `json:"members"`
	Size    int      `json:"size"`
	Density float64  `json:"density"` // Edge density within community
}

// CommunityDetectionResult contains detected communities
type CommunityDetectionResult struct {
	Communities   []*Community    `json:"communities"`
	Modularity    float64         `json:"modularity"`     // Quality measure of the partitioning
	NodeCommunity map[string]int  `json:"node_community"` // Student ID -> Community ID
	Method        CommunityMethod `json:"method"`

	// Fallback is set when modularity optimisation could not run and the
	// partition comes from connected components instead.
	Fallback       bool   `json:"fallback"`
	FallbackReason string `json:"fallback_reason,omitempty"`
}

// CommunityStats aggregates the members of one community.
type CommunityStats struct {
	ID            int            `json:"id"`
	Size          int            `json:"size"`
	InternalEdges int            `json:"internal_edges"`
	Categories    map[string]int `json:"categories"`
	Members       []string       `json:"members"`
}

// DominantCategory returns the most common category, ties broken by name.
func (s *CommunityStats) DominantCategory() (string, int) {
	best, count := "", 0
	for category, n := range s.Categories {
		if n > count || (n == count && category < best) {
			best, count = category, n
		}
	}
	return best, count
}
