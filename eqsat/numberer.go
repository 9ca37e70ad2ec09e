package eqsat

import "fmt"

// VN is a value number: a non-negative integer assigned by a Numberer such
// that vn(a) == vn(b) iff a and b denote structurally identical terms. VNs
// are process-local to one Numberer instance and, once assigned, immutable.
type VN int

// binaryKey is the canonical-form key for a BinaryNode: its children's VNs
// plus its operator. Two BinaryNodes intern to the same VN iff their keys
// are equal, which is exactly structural equality once children are
// themselves canonicalized.
type binaryKey struct {
	lhs, rhs VN
	op       BinaryOp
}

// Numberer assigns a stable VN to every node it sees, reusing an existing
// VN whenever a node's structural shape has already been seen. It is the
// engine's hash-cons.
//
// The identity cache grows unboundedly with the number of distinct
// intermediate nodes created during saturation — it is not an LRU cache.
// This is a known characteristic, not a bug: a bounded-size replacement is
// a valid extension, but the cache is meant to serve nodes reused from the
// caller's original input graph, and saturation in this engine is a single
// bounded pass, not an unbounded iterative loop, so unbounded growth is
// capped by the size of that one pass.
type Numberer struct {
	next VN

	identity  map[Node]VN
	constants map[int]VN
	variables map[string]VN
	binaries  map[binaryKey]VN

	onAllocate func(VN)
}

// NumbererOption configures a Numberer at construction.
type NumbererOption func(*Numberer)

// WithAllocationHook registers fn to be called once, synchronously, every
// time the Numberer mints a fresh VN. EGraph uses this to drive logging and
// metrics without coupling the Numberer to either concern.
func WithAllocationHook(fn func(VN)) NumbererOption {
	return func(n *Numberer) { n.onAllocate = fn }
}

// NewNumberer creates an empty Numberer.
func NewNumberer(opts ...NumbererOption) *Numberer {
	n := &Numberer{
		identity:  make(map[Node]VN),
		constants: make(map[int]VN),
		variables: make(map[string]VN),
		binaries:  make(map[binaryKey]VN),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// GetNumber returns the canonical VN for node, assigning a fresh one on
// first sight of a new structural shape and reusing an existing one
// otherwise. The order of VN allocation is deterministic given a
// deterministic node-visitation order, since recursion into a BinaryNode's
// children always numbers lhs before rhs.
//
// Fatal on an unknown Node variant.
func (n *Numberer) GetNumber(node Node) VN {
	if vn, ok := n.identity[node]; ok {
		return vn
	}
	vn := n.numberByShape(node)
	n.identity[node] = vn
	return vn
}

func (n *Numberer) numberByShape(node Node) VN {
	switch v := node.(type) {
	case *ConstantNode:
		return internWith(n, n.constants, v.Value)
	case *VariableNode:
		return internWith(n, n.variables, v.Name)
	case *BinaryNode:
		key := binaryKey{
			lhs: n.GetNumber(v.Lhs),
			rhs: n.GetNumber(v.Rhs),
			op:  v.Op,
		}
		return internWith(n, n.binaries, key)
	default:
		panic(fmt.Sprintf("eqsat: numberer: unknown node variant %T", node))
	}
}

// internWith looks key up in table, allocating a fresh VN on miss and
// invoking the Numberer's allocation hook, if any.
func internWith[K comparable](n *Numberer, table map[K]VN, key K) VN {
	if vn, ok := table[key]; ok {
		return vn
	}
	vn := n.next
	n.next++
	table[key] = vn
	if n.onAllocate != nil {
		n.onAllocate(vn)
	}
	return vn
}
