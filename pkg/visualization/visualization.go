package visualization

import (
	"encoding/json"

	"github.com/dd0wney/socialgraph/pkg/storage"
)

// Visualization represents a student network with layout
type Visualization struct {
	Students    []storage.Student
	Friendships []storage.Friendship
	Positions   map[string]Position
	Communities map[string]int // optional colouring, student ID -> community
}

// Build lays out every student of g. communities may be nil.
func Build(g *storage.Graph, layout Layout, communities map[string]int) (*Visualization, error) {
	positions, err := layout.ComputeLayout(g, g.StudentIDs())
	if err != nil {
		return nil, err
	}
	return &Visualization{
		Students:    g.Students(),
		Friendships: g.Friendships(),
		Positions:   positions,
		Communities: communities,
	}, nil
}

// StudentViz is a positioned student in the exported document
type StudentViz struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Community *int    `json:"community,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// FriendshipViz is an exported friendship
type FriendshipViz struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Weight int    `json:"weight"`
}

// VizData is the exported document
type VizData struct {
	Students    []StudentViz    `json:"students"`
	Friendships []FriendshipViz `json:"friendships"`
}

// Data flattens the visualization into exportable records
func (v *Visualization) Data() VizData {
	data := VizData{
		Students:    make([]StudentViz, 0, len(v.Students)),
		Friendships: make([]FriendshipViz, 0, len(v.Friendships)),
	}

	for _, s := range v.Students {
		pos := v.Positions[s.ID]
		sv := StudentViz{ID: s.ID, Name: s.Name, Category: s.Category, X: pos.X, Y: pos.Y}
		if c, ok := v.Communities[s.ID]; ok {
			sv.Community = &c
		}
		data.Students = append(data.Students, sv)
	}

	for _, f := range v.Friendships {
		data.Friendships = append(data.Friendships, FriendshipViz{From: f.A, To: f.B, Weight: int(f.Weight)})
	}

	return data
}

// ExportJSON exports the visualization to JSON
func (v *Visualization) ExportJSON() ([]byte, error) {
	return json.Marshal(v.Data())
}
