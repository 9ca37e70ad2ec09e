package eqsat

// eclass is the set of Node objects sharing one value number under the
// e-graph's current equivalence relation. Membership order is insertion
// order, which is what makes congruence's Cartesian product over child
// e-classes (see egraph.go) deterministic given a deterministic saturation
// order.
type eclass struct {
	members []Node
	seen    map[Node]struct{}
}

func newEClass(n Node) *eclass {
	return &eclass{
		members: []Node{n},
		seen:    map[Node]struct{}{n: {}},
	}
}

// add appends n if it is not already a member. Reports whether n was newly
// added.
func (e *eclass) add(n Node) bool {
	if _, ok := e.seen[n]; ok {
		return false
	}
	e.seen[n] = struct{}{}
	e.members = append(e.members, n)
	return true
}

// absorb merges other's members into e, preserving other's relative order
// after e's existing members.
func (e *eclass) absorb(other *eclass) {
	for _, n := range other.members {
		e.add(n)
	}
}
