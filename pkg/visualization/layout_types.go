// Package visualization computes 2D positions for students so the network
// can be drawn by a terminal or browser client.
package visualization

import (
	"fmt"
	"strings"

	"github.com/dd0wney/socialgraph/pkg/storage"
)

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Width      float64 // Canvas width
	Height     float64 // Canvas height
	Iterations int     // Number of iterations for iterative algorithms
	Padding    float64 // Padding from edges
	Seed       uint64  // Seed for the initial spring positions
	Root       string  // Centre student for the shell layout; empty picks the most connected
}

// Layout interface for different layout algorithms
type Layout interface {
	ComputeLayout(g *storage.Graph, ids []string) (map[string]Position, error)
}

// Kind names a layout algorithm.
type Kind string

const (
	KindSpring   Kind = "spring"
	KindCircular Kind = "circular"
	KindShell    Kind = "shell"
)

// Kinds lists the supported layouts.
var Kinds = []Kind{KindSpring, KindCircular, KindShell}

// NewLayout returns the layout for a kind name.
func NewLayout(kind string, config *LayoutConfig) (Layout, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(kind))) {
	case "", KindSpring:
		return NewForceDirectedLayout(config), nil
	case KindCircular:
		return NewCircularLayout(config), nil
	case KindShell:
		return NewHierarchicalLayout(config), nil
	default:
		return nil, fmt.Errorf("unknown layout %q", kind)
	}
}
