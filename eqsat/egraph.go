package eqsat

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/gitrdm/eqsat/eqsat/metrics"
)

// EGraph holds an equivalence relation over the nodes reachable from one
// root, seeded once and saturated once. Construction is synchronous and
// single-threaded: NewEGraph returns only after saturation has finished,
// and there is no API to add nodes afterward. Callers only query.
//
// Equivalence is tracked with a union-find over value numbers: parent maps
// a VN to its representative, with path compression, and classes maps each
// *representative* VN to the eclass it owns. This replaces the source's
// approach of aliasing multiple map entries onto one shared set object —
// see DESIGN.md — but preserves the same invariant (I2): any VN ever
// merged into a destination resolves, after merge, to that destination's
// e-class.
type EGraph struct {
	rules    []Rule
	numberer *Numberer

	parent  map[VN]VN
	classes map[VN]*eclass

	root    Node
	logger  hclog.Logger
	metrics *metrics.Recorder
}

// Option configures an EGraph at construction.
type Option func(*EGraph)

// WithLogger attaches a structured logger. Saturation emits Trace-level
// records for VN allocation and Debug-level records for e-class merges and
// rule applications. A nil logger (the default) is equivalent to
// hclog.NewNullLogger().
func WithLogger(l hclog.Logger) Option {
	return func(g *EGraph) { g.logger = l }
}

// WithMetrics attaches a Prometheus recorder. A nil recorder (the default)
// disables metrics entirely; Recorder's methods are nil-safe so this
// package never has to branch on whether metrics are enabled.
func WithMetrics(r *metrics.Recorder) Option {
	return func(g *EGraph) { g.metrics = r }
}

// NewEGraph builds an e-graph from rules and root and performs one bounded
// saturation pass before returning (see the saturate method). rules may be
// empty, in which case construction performs congruence closure only
// (spec scenario: "congruence only").
//
// Returns an error only for a malformed call (nil root) — this is a
// caller-facing construction failure, distinct from the fatal
// programmer-error panics raised by unknown Node/Pattern variants deeper in
// the engine.
func NewEGraph(rules []Rule, root Node, opts ...Option) (*EGraph, error) {
	if root == nil {
		return nil, fmt.Errorf("eqsat: NewEGraph: root must not be nil")
	}

	g := &EGraph{
		rules:   append([]Rule(nil), rules...),
		parent:  make(map[VN]VN),
		classes: make(map[VN]*eclass),
		root:    root,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = hclog.NewNullLogger()
	}
	g.numberer = NewNumberer(WithAllocationHook(func(vn VN) {
		g.logger.Trace("eqsat: vn allocated", "vn", vn)
		g.metrics.ObserveVN()
	}))

	g.seed(root)
	g.saturate(root)
	return g, nil
}

// EquivalentTo returns the e-class of node: every node currently known to
// share node's place in the equivalence relation, in insertion order. The
// returned slice is a copy; mutating it does not affect the e-graph.
//
// Lookup is by value number, so the result for node always holds a node
// structurally equal to it; it holds node itself only if node was the first
// object of its shape to be added (later objects of the same shape are
// deduplicated by addSingleNode). Returns nil if no node of node's shape was
// ever added to the e-graph.
func (g *EGraph) EquivalentTo(node Node) []Node {
	vn := g.numberer.GetNumber(node)
	root, ok := g.find(vn)
	if !ok {
		return nil
	}
	cls := g.classes[root]
	out := make([]Node, len(cls.members))
	copy(out, cls.members)
	return out
}

// AllNodes returns every node held by any e-class, deduplicated, in a
// deterministic order (canonical VN ascending, then insertion order within
// each class). Determinism here is a debuggability property: it is not
// observable through EquivalentTo, which spec section 5 notes explicitly.
func (g *EGraph) AllNodes() []Node {
	roots := make([]VN, 0, len(g.classes))
	for vn := range g.classes {
		roots = append(roots, vn)
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })

	seen := make(map[Node]struct{})
	var all []Node
	for _, vn := range roots {
		for _, n := range g.classes[vn].members {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			all = append(all, n)
		}
	}
	return all
}

// seed walks root once, deduplicating by identity, and adds every unique
// node to its own singleton e-class keyed by VN. Visitation order is
// deterministic (parent before children is irrelevant here — only the
// dedup-by-identity set matters — but children are always visited lhs
// before rhs), so seeding is reproducible given a deterministic tree.
func (g *EGraph) seed(root Node) {
	visited := make(map[Node]struct{})
	var visit func(Node)
	visit = func(n Node) {
		if _, ok := visited[n]; ok {
			return
		}
		visited[n] = struct{}{}
		g.addSingleNode(n)
		for _, in := range n.Inputs() {
			visit(in)
		}
	}
	visit(root)
}

// addSingleNode adds n to the e-graph under its own VN if that VN has no
// e-class yet. Idempotent on VN: the first node of a VN wins, later
// additions with the same VN are no-ops. Reports whether n was newly
// added.
func (g *EGraph) addSingleNode(n Node) bool {
	vn := g.numberer.GetNumber(n)
	if _, ok := g.parent[vn]; ok {
		return false
	}
	g.parent[vn] = vn
	g.classes[vn] = newEClass(n)
	return true
}

// find returns the canonical (root) VN for vn, path-compressing along the
// way, and whether vn is known to the e-graph at all.
func (g *EGraph) find(vn VN) (VN, bool) {
	root, ok := g.parent[vn]
	if !ok {
		return 0, false
	}
	for root != g.parent[root] {
		root = g.parent[root]
	}
	// Path compression: repoint every VN on the walk directly at root.
	for vn != root {
		next := g.parent[vn]
		g.parent[vn] = root
		vn = next
	}
	return root, true
}

// merge unions the e-classes of a and b. A no-op if they are already the
// same class. Otherwise the smaller class (by member count) is absorbed
// into the larger (weighted union), and the smaller's representative VN is
// repointed at the larger's — which, combined with find's path
// compression, guarantees invariant I2: any VN ever merged into a
// destination resolves, after merge, to that destination's e-class.
func (g *EGraph) merge(a, b Node) {
	vnA, okA := g.find(g.numberer.GetNumber(a))
	vnB, okB := g.find(g.numberer.GetNumber(b))
	if !okA || !okB {
		panic("eqsat: merge: node not present in e-graph")
	}
	if vnA == vnB {
		return
	}

	from, to := vnA, vnB
	if len(g.classes[from].members) > len(g.classes[to].members) {
		from, to = to, from
	}

	g.classes[to].absorb(g.classes[from])
	delete(g.classes, from)
	g.parent[from] = to

	g.logger.Debug("eqsat: merged e-classes", "from_vn", from, "to_vn", to, "size", len(g.classes[to].members))
	g.metrics.ObserveMerge()
}

// saturate performs the single bounded traverse-and-rewrite pass:
// post-order from root, each node visited at
// most once (tracked by VN). At each node it (a) realizes congruence
// closure over the Cartesian product of its children's current e-classes,
// then (b) tries every rule's LHS against every node currently in its
// e-class, instantiating and unioning the RHS on success.
//
// Nodes introduced by rule application in step (b) are not themselves
// re-traversed in this pass — this engine does not iterate to a fixpoint
// (spec section 9; a rule set like X => X + 0 would not terminate under a
// fixpoint policy). Scenario "combined, nested" in the test suite works
// anyway because congruence closure lifts an inner rewrite's equivalence
// into its parent during the same post-order sweep.
func (g *EGraph) saturate(root Node) {
	visited := make(map[VN]struct{})
	var visit func(Node)
	visit = func(n Node) {
		vn := g.numberer.GetNumber(n)
		if _, ok := visited[vn]; ok {
			return
		}
		visited[vn] = struct{}{}

		inputs := n.Inputs()
		childClasses := make([][]Node, len(inputs))
		for i, in := range inputs {
			visit(in)
			childClasses[i] = g.EquivalentTo(in)
		}

		g.applyCongruence(n, childClasses)
		g.applyRules(n)
	}
	visit(root)
}

// applyCongruence synthesizes, for every combination of inputs drawn from
// childClasses, a sibling of n with those inputs substituted, and unions
// each sibling's e-class with n's. This realizes: x == y implies f(x) ==
// f(y). Merging is unconditional (not only when the sibling is structurally
// novel) since merge is already a safe no-op when two nodes are already in
// the same class — see DESIGN.md for why this is a deliberate
// generalization of the source's narrower "merge only if newly added"
// behavior.
func (g *EGraph) applyCongruence(n Node, childClasses [][]Node) {
	if len(childClasses) == 0 {
		return
	}
	for _, combo := range cartesianProduct(childClasses) {
		sibling := cloneWithInputs(n, combo)
		g.addSingleNode(sibling)
		g.merge(n, sibling)
	}
}

// applyRules tries every rule's LHS against every node currently in n's
// e-class (which may already have grown via applyCongruence above), and
// unions a successful instantiation with the matched node.
func (g *EGraph) applyRules(n Node) {
	for _, candidate := range g.EquivalentTo(n) {
		for _, rule := range g.rules {
			matcher := NewMatcher(rule.LHS)
			bindings, ok := matcher.Match(candidate)
			if !ok {
				continue
			}
			rewritten := Instantiate(rule.RHS, bindings)
			g.addSingleNode(rewritten)
			g.merge(candidate, rewritten)
			g.metrics.ObserveRuleMatch()
			g.logger.Debug("eqsat: rule applied", "lhs", rule.LHS, "rhs", rule.RHS, "node", candidate)
		}
	}
}

// cartesianProduct returns every combination obtained by choosing one
// element from each input slice, in order, preserving the insertion order
// of each slice (so the result is deterministic given deterministic
// e-class iteration order). A single empty input slice yields no
// combinations at all.
func cartesianProduct(slices [][]Node) [][]Node {
	combos := [][]Node{{}}
	for _, options := range slices {
		if len(options) == 0 {
			return nil
		}
		var next [][]Node
		for _, combo := range combos {
			for _, opt := range options {
				extended := make([]Node, len(combo)+1)
				copy(extended, combo)
				extended[len(combo)] = opt
				next = append(next, extended)
			}
		}
		combos = next
	}
	return combos
}
