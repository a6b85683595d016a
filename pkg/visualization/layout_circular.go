package visualization

import "github.com/dd0wney/socialgraph/pkg/storage"

// CircularLayout puts every student on one circle, in the order given.
type CircularLayout struct {
	config *LayoutConfig
}

func NewCircularLayout(config *LayoutConfig) *CircularLayout {
	return &CircularLayout{config: defaultPadding(config)}
}

// ComputeLayout ignores friendships. A single student sits in the centre.
func (cl *CircularLayout) ComputeLayout(_ *storage.Graph, ids []string) (map[string]Position, error) {
	positions := make(map[string]Position, len(ids))
	mid, radius := cl.config.center()
	switch len(ids) {
	case 0:
	case 1:
		positions[ids[0]] = mid
	default:
		placeRing(positions, mid, radius, ids)
	}
	return positions, nil
}
