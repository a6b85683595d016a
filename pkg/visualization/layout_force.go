package visualization

import (
	"math"
	"math/rand/v2"

	"github.com/dd0wney/socialgraph/pkg/storage"
)

// ForceDirectedLayout implements a spring layout: every pair of students
// repels and friends attract in proportion to the friendship weight.
type ForceDirectedLayout struct {
	config *LayoutConfig
}

// NewForceDirectedLayout creates a new force-directed layout
func NewForceDirectedLayout(config *LayoutConfig) *ForceDirectedLayout {
	if config.Iterations == 0 {
		config.Iterations = 50
	}
	return &ForceDirectedLayout{config: defaultPadding(config)}
}

// ComputeLayout computes positions using force-directed algorithm
func (fdl *ForceDirectedLayout) ComputeLayout(g *storage.Graph, ids []string) (map[string]Position, error) {
	if len(ids) == 0 {
		return make(map[string]Position), nil
	}

	if len(ids) == 1 {
		mid, _ := fdl.config.center()
		return map[string]Position{ids[0]: mid}, nil
	}

	rng := rand.New(rand.NewPCG(fdl.config.Seed, fdl.config.Seed+1))
	cfg := fdl.config

	// Initialize random positions
	positions := make(map[string]Position, len(ids))
	for _, id := range ids {
		positions[id] = Position{
			X: rng.Float64()*(cfg.Width-2*cfg.Padding) + cfg.Padding,
			Y: rng.Float64()*(cfg.Height-2*cfg.Padding) + cfg.Padding,
		}
	}

	// Friendships among the requested students only
	type spring struct {
		a, b string
		w    float64
	}
	springs := make([]spring, 0)
	for _, f := range g.Friendships() {
		_, okA := positions[f.A]
		_, okB := positions[f.B]
		if okA && okB {
			springs = append(springs, spring{a: f.A, b: f.B, w: float64(f.Weight)})
		}
	}

	k := math.Sqrt((cfg.Width * cfg.Height) / float64(len(ids))) // Optimal distance
	temperature := cfg.Width / 10.0

	for iter := 0; iter < cfg.Iterations; iter++ {
		forces := make(map[string]Position, len(ids))

		// Repulsion between all students
		for i, id1 := range ids {
			for _, id2 := range ids[i+1:] {
				dx := positions[id1].X - positions[id2].X
				dy := positions[id1].Y - positions[id2].Y
				dist := math.Max(math.Sqrt(dx*dx+dy*dy), 0.01)

				force := (k * k) / dist
				fx, fy := (dx/dist)*force, (dy/dist)*force

				forces[id1] = Position{X: forces[id1].X + fx, Y: forces[id1].Y + fy}
				forces[id2] = Position{X: forces[id2].X - fx, Y: forces[id2].Y - fy}
			}
		}

		// Attraction along friendships, stronger ties pull harder
		for _, s := range springs {
			dx := positions[s.a].X - positions[s.b].X
			dy := positions[s.a].Y - positions[s.b].Y
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist < 0.01 {
				continue
			}

			force := s.w * (dist * dist) / k
			fx, fy := (dx/dist)*force, (dy/dist)*force

			forces[s.a] = Position{X: forces[s.a].X - fx, Y: forces[s.a].Y - fy}
			forces[s.b] = Position{X: forces[s.b].X + fx, Y: forces[s.b].Y + fy}
		}

		// Apply forces with cooling
		cool := 1.0 - float64(iter)/float64(cfg.Iterations)
		for _, id := range ids {
			fx, fy := forces[id].X, forces[id].Y
			force := math.Sqrt(fx*fx + fy*fy)
			if force > 0 {
				step := math.Min(force, temperature) * cool
				positions[id] = Position{
					X: positions[id].X + (fx/force)*step,
					Y: positions[id].Y + (fy/force)*step,
				}
			}
		}

		temperature *= 0.95
	}

	return normalizePositions(positions, cfg.Width, cfg.Height, cfg.Padding), nil
}
