package eqsat

import "fmt"

// Bindings maps each VariablePattern name encountered during a successful
// match to the VariableNode it matched.
type Bindings map[string]*VariableNode

// Matcher attempts a structural match of one fixed pattern against
// candidate nodes. A Matcher is reusable: it holds only its pattern, and
// Match builds a fresh Bindings map on every call, so repeated calls on the
// same Matcher with the same node return equivalent bindings and never leak
// state between calls.
type Matcher struct {
	root Pattern
}

// NewMatcher builds a Matcher for root.
func NewMatcher(root Pattern) *Matcher {
	return &Matcher{root: root}
}

// Match attempts to match the Matcher's pattern against node. On success it
// returns the binding from each VariablePattern name in the pattern to the
// VariableNode it matched, and true. On failure it returns nil, false —
// matching a non-matching node is not an error, only an absent result.
func (m *Matcher) Match(node Node) (Bindings, bool) {
	bindings := make(Bindings)
	if !matchRec(m.root, node, bindings) {
		return nil, false
	}
	return bindings, true
}

// matchRec walks pattern and node in lockstep. Shape (variant + operator /
// value / name) must agree; VariablePattern binds on first encounter of a
// given name and requires identity with the prior binding on subsequent
// encounters, so a pattern like X+X only matches x+x, never x+y.
//
// Fatal on an unknown Pattern variant.
func matchRec(pattern Pattern, node Node, bindings Bindings) bool {
	switch p := pattern.(type) {
	case *ConstantPattern:
		c, ok := node.(*ConstantNode)
		return ok && c.Value == p.Value

	case *VariablePattern:
		v, ok := node.(*VariableNode)
		if !ok {
			return false
		}
		if bound, seen := bindings[p.Name]; seen {
			return bound == v
		}
		bindings[p.Name] = v
		return true

	case *BinaryPattern:
		b, ok := node.(*BinaryNode)
		if !ok || b.Op != p.Op {
			return false
		}
		// BinaryNode is fixed-arity by construction, so an arity
		// mismatch can't arise here; it would only matter for a
		// dynamically-typed term representation.
		return matchRec(p.Lhs, b.Lhs, bindings) && matchRec(p.Rhs, b.Rhs, bindings)

	default:
		panic(fmt.Sprintf("eqsat: matcher: unknown pattern variant %T", pattern))
	}
}
