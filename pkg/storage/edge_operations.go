package storage

// AddFriendship connects two existing students. An existing friendship has
// its weight overwritten in place.
func (g *Graph) AddFriendship(id1, id2 string, w Weight) error {
	if !w.Valid() {
		return InvalidWeightError("AddFriendship", id1, id2, w)
	}
	if id1 == id2 {
		return NewError("AddFriendship").Friendship(id1, id2).Cause(ErrSelfLoop).Err()
	}
	n1, n2 := g.neighbors(id1), g.neighbors(id2)
	if n1 == nil || !g.HasStudent(id1) {
		return NewError("AddFriendship").Student(id1).Cause(ErrStudentNotFound).Err()
	}
	if n2 == nil || !g.HasStudent(id2) {
		return NewError("AddFriendship").Student(id2).Cause(ErrStudentNotFound).Err()
	}

	if _, existed := n1.Set(id2, w); !existed {
		g.edgeCount++
	}
	n2.Set(id1, w)
	return nil
}

// UpdateFriendshipWeight changes the weight of an existing friendship.
func (g *Graph) UpdateFriendshipWeight(id1, id2 string, w Weight) error {
	if !g.AreConnected(id1, id2) {
		return FriendshipNotFoundError("UpdateFriendshipWeight", id1, id2)
	}
	if !w.Valid() {
		return InvalidWeightError("UpdateFriendshipWeight", id1, id2, w)
	}
	g.neighbors(id1).Set(id2, w)
	g.neighbors(id2).Set(id1, w)
	return nil
}

// RemoveFriendship deletes both directions of a friendship.
func (g *Graph) RemoveFriendship(id1, id2 string) error {
	if !g.AreConnected(id1, id2) {
		return FriendshipNotFoundError("RemoveFriendship", id1, id2)
	}
	g.neighbors(id1).Delete(id2)
	g.neighbors(id2).Delete(id1)
	g.edgeCount--
	return nil
}

// AreConnected reports whether two students are friends.
func (g *Graph) AreConnected(id1, id2 string) bool {
	nm := g.neighbors(id1)
	if nm == nil {
		return false
	}
	_, ok := nm.Get(id2)
	return ok
}

// Weight returns the weight of the friendship between two students.
func (g *Graph) Weight(id1, id2 string) (Weight, error) {
	if nm := g.neighbors(id1); nm != nil {
		if w, ok := nm.Get(id2); ok {
			return w, nil
		}
	}
	return 0, FriendshipNotFoundError("Weight", id1, id2)
}

// Neighbors returns the friends of a student in the order the friendships
// were created. Unknown or isolated students yield an empty slice.
func (g *Graph) Neighbors(id string) []string {
	nm := g.neighbors(id)
	if nm == nil {
		return []string{}
	}
	out := make([]string, 0, nm.Len())
	for pair := nm.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Degree returns the number of friends of a student.
func (g *Graph) Degree(id string) int {
	nm := g.neighbors(id)
	if nm == nil {
		return 0
	}
	return nm.Len()
}

// ForEachNeighbor calls fn for every friend of id with the friendship weight,
// in insertion order. Iteration stops when fn returns false.
func (g *Graph) ForEachNeighbor(id string, fn func(neighbor string, w Weight) bool) {
	nm := g.neighbors(id)
	if nm == nil {
		return
	}
	for pair := nm.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Friendships returns every friendship exactly once. The first endpoint is
// the student that appears first in insertion order.
func (g *Graph) Friendships() []Friendship {
	out := make([]Friendship, 0, g.edgeCount)
	seen := make(map[string]bool, g.students.Len())
	for pair := g.adjacency.Oldest(); pair != nil; pair = pair.Next() {
		id := pair.Key
		for n := pair.Value.Oldest(); n != nil; n = n.Next() {
			if seen[n.Key] {
				continue
			}
			out = append(out, Friendship{A: id, B: n.Key, Weight: n.Value})
		}
		seen[id] = true
	}
	return out
}

// TotalWeight returns the sum of all friendship weights.
func (g *Graph) TotalWeight() int {
	total := 0
	for _, f := range g.Friendships() {
		total += int(f.Weight)
	}
	return total
}
