package visualization

import (
	"math"
	"slices"

	"github.com/dd0wney/socialgraph/pkg/algorithms"
	"github.com/dd0wney/socialgraph/pkg/storage"
)

// HierarchicalLayout places the root student in the centre and each BFS
// level on a concentric ring around it. Students the root cannot reach go
// on an outer ring.
type HierarchicalLayout struct {
	config *LayoutConfig
}

// NewHierarchicalLayout creates a new shell layout
func NewHierarchicalLayout(config *LayoutConfig) *HierarchicalLayout {
	return &HierarchicalLayout{config: defaultPadding(config)}
}

// ComputeLayout arranges students in rings by hop distance from the root
func (hl *HierarchicalLayout) ComputeLayout(g *storage.Graph, ids []string) (map[string]Position, error) {
	positions := make(map[string]Position, len(ids))

	if len(ids) == 0 {
		return positions, nil
	}

	root := hl.config.Root
	if root == "" || !slices.Contains(ids, root) {
		root = mostConnected(g, ids)
	}

	// Build levels using BFS, restricted to the requested students
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	levels := make([][]string, 0)
	placed := make(map[string]bool, len(ids))
	for _, level := range algorithms.Levels(g, root) {
		ring := make([]string, 0, len(level))
		for _, id := range level {
			if wanted[id] {
				ring = append(ring, id)
				placed[id] = true
			}
		}
		if len(ring) > 0 {
			levels = append(levels, ring)
		}
	}

	// Unreachable students form the outermost ring
	outer := make([]string, 0)
	for _, id := range ids {
		if !placed[id] {
			outer = append(outer, id)
		}
	}
	if len(outer) > 0 {
		levels = append(levels, outer)
	}

	mid, maxRadius := hl.config.center()
	ringGap := maxRadius / math.Max(float64(len(levels)-1), 1)
	for i, level := range levels {
		placeRing(positions, mid, float64(i)*ringGap, level)
	}

	return positions, nil
}

// mostConnected returns the first student with the highest degree
func mostConnected(g *storage.Graph, ids []string) string {
	best, bestDegree := ids[0], -1
	for _, id := range ids {
		if d := g.Degree(id); d > bestDegree {
			best, bestDegree = id, d
		}
	}
	return best
}
