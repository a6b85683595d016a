package persistence

import (
	"github.com/dd0wney/socialgraph/pkg/storage"
)

// replayer applies decoded records to a fresh graph, collecting failures as
// warnings instead of aborting the load.
type replayer struct {
	graph    *storage.Graph
	warnings []Warning
}

func newReplayer() *replayer {
	return &replayer{graph: storage.NewGraph()}
}

func (r *replayer) warn(source string, line int, err error) {
	r.warnings = append(r.warnings, Warning{Source: source, Line: line, Err: err})
}

func (r *replayer) student(source string, line int, s storage.Student) {
	if err := r.graph.InsertStudent(s.ID, s.Name, s.Category, s.Interests); err != nil {
		r.warn(source, line, err)
	}
}

// friendship defaults a missing weight to a normal tie.
func (r *replayer) friendship(source string, line int, id1, id2 string, weight *int) {
	w := storage.WeightNormal
	if weight != nil {
		w = storage.Weight(*weight)
	}
	if err := r.graph.AddFriendship(id1, id2, w); err != nil {
		r.warn(source, line, err)
	}
}

func (r *replayer) result() *LoadResult {
	return &LoadResult{Graph: r.graph, Warnings: r.warnings}
}
