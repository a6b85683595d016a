package algorithms

import (
	"cmp"
	"slices"

	"github.com/dd0wney/socialgraph/pkg/storage"
)

// DetectCommunities partitions every student into exactly one community.
// Greedy modularity is tried first. When it cannot run, connected components
// are used and the result is flagged as a fallback. An empty graph yields an
// empty assignment.
func DetectCommunities(graph *storage.Graph, opts CommunityOptions) *CommunityDetectionResult {
	if opts.Method == "" {
		opts.Method = MethodGreedyModularity
	}
	if graph.IsEmpty() {
		return &CommunityDetectionResult{
			Communities:   []*Community{},
			NodeCommunity: map[string]int{},
			Method:        opts.Method,
		}
	}

	switch opts.Method {
	case MethodConnectedComponents:
		return ConnectedComponents(graph)
	case MethodLabelPropagation:
		return LabelPropagation(graph, opts.MaxIterations)
	}

	ids := graph.StudentIDs()
	groups, err := greedyModularity(graph, ids)
	if err != nil {
		result := ConnectedComponents(graph)
		result.Fallback = true
		result.FallbackReason = err.Error()
		return result
	}

	return buildResult(graph, ids, groups, MethodGreedyModularity)
}

// greedyModularity runs Clauset-Newman-Moore agglomeration on the weighted
// graph. Every student starts alone and the pair of adjacent communities
// with the largest positive modularity gain is merged until no merge helps.
// Ties go to the pair with the lowest insertion indices. The returned groups
// hold indices into ids.
func greedyModularity(graph *storage.Graph, ids []string) ([][]int, error) {
	total := float64(graph.TotalWeight())
	if total == 0 {
		return nil, ErrNoEdgeWeight
	}

	n := len(ids)
	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}

	// a[i]: fraction of edge ends attached to community i
	a := make([]float64, n)
	for i, id := range ids {
		graph.ForEachNeighbor(id, func(_ string, w storage.Weight) bool {
			a[i] += float64(w)
			return true
		})
		a[i] /= 2 * total
	}

	// dq[i][j]: modularity change when merging communities i and j
	dq := make([]map[int]float64, n)
	for i := range dq {
		dq[i] = make(map[int]float64)
	}
	for _, f := range graph.Friendships() {
		i, j := index[f.A], index[f.B]
		gain := 2 * (float64(f.Weight)/(2*total) - a[i]*a[j])
		dq[i][j] = gain
		dq[j][i] = gain
	}

	members := make([][]int, n)
	for i := range members {
		members[i] = []int{i}
	}

	for {
		bi, bj, best := -1, -1, 0.0
		for i := range n {
			for j, gain := range dq[i] {
				if gain <= 0 {
					continue
				}
				if bi < 0 || gain > best || (gain == best && (i < bi || (i == bi && j < bj))) {
					bi, bj, best = i, j, gain
				}
			}
		}
		if bi < 0 {
			break
		}
		mergeCommunities(dq, a, bi, bj)
		members[bi] = append(members[bi], members[bj]...)
		members[bj] = nil
	}

	groups := make([][]int, 0)
	for _, m := range members {
		if len(m) > 0 {
			slices.Sort(m)
			groups = append(groups, m)
		}
	}
	return groups, nil
}

// mergeCommunities folds community j into i and updates the gain table.
func mergeCommunities(dq []map[int]float64, a []float64, i, j int) {
	neighbors := make(map[int]struct{}, len(dq[i])+len(dq[j]))
	for k := range dq[i] {
		neighbors[k] = struct{}{}
	}
	for k := range dq[j] {
		neighbors[k] = struct{}{}
	}
	delete(neighbors, i)
	delete(neighbors, j)

	for k := range neighbors {
		gik, inI := dq[i][k]
		gjk, inJ := dq[j][k]

		var gain float64
		switch {
		case inI && inJ:
			gain = gik + gjk
		case inI:
			gain = gik - 2*a[j]*a[k]
		default:
			gain = gjk - 2*a[i]*a[k]
		}

		dq[i][k] = gain
		dq[k][i] = gain
		delete(dq[k], j)
	}

	delete(dq[i], j)
	dq[j] = make(map[int]float64)
	a[i] += a[j]
	a[j] = 0
}

// buildResult turns index groups into sorted communities: larger first, then
// by the insertion position of the first member.
func buildResult(graph *storage.Graph, ids []string, groups [][]int, method CommunityMethod) *CommunityDetectionResult {
	slices.SortStableFunc(groups, func(x, y []int) int {
		if c := cmp.Compare(len(y), len(x)); c != 0 {
			return c
		}
		return cmp.Compare(x[0], y[0])
	})

	result := &CommunityDetectionResult{
		Communities:   make([]*Community, 0, len(groups)),
		NodeCommunity: make(map[string]int, len(ids)),
		Method:        method,
	}

	for label, group := range groups {
		c := &Community{
			ID:      label,
			Members: make([]string, 0, len(group)),
			Size:    len(group),
		}
		for _, idx := range group {
			c.Members = append(c.Members, ids[idx])
			result.NodeCommunity[ids[idx]] = label
		}
		result.Communities = append(result.Communities, c)
	}

	for _, c := range result.Communities {
		c.Density = communityDensity(graph, c.Members, result.NodeCommunity, c.ID)
	}
	result.Modularity = Modularity(graph, result.NodeCommunity)
	return result
}

// communityDensity is internal friendships over possible pairs.
func communityDensity(graph *storage.Graph, members []string, assignment map[string]int, label int) float64 {
	size := len(members)
	if size < 2 {
		return 0
	}
	internal := 0
	for _, id := range members {
		for _, neighbor := range graph.Neighbors(id) {
			if l, ok := assignment[neighbor]; ok && l == label {
				internal++
			}
		}
	}
	internal /= 2
	return float64(internal) / float64(size*(size-1)/2)
}

// Modularity computes the weighted modularity of an assignment. Students
// absent from the assignment are ignored. A graph without friendship weight
// scores 0.
func Modularity(graph *storage.Graph, assignment map[string]int) float64 {
	total := float64(graph.TotalWeight())
	if total == 0 {
		return 0
	}

	internal := make(map[int]float64)
	degree := make(map[int]float64)

	for _, f := range graph.Friendships() {
		la, okA := assignment[f.A]
		lb, okB := assignment[f.B]
		if okA && okB && la == lb {
			internal[la] += float64(f.Weight)
		}
	}
	for _, id := range graph.StudentIDs() {
		label, ok := assignment[id]
		if !ok {
			continue
		}
		graph.ForEachNeighbor(id, func(_ string, w storage.Weight) bool {
			degree[label] += float64(w)
			return true
		})
	}

	q := 0.0
	for label, d := range degree {
		frac := d / (2 * total)
		q += internal[label]/total - frac*frac
	}
	return q
}
