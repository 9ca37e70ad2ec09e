package eqsat

import "fmt"

// Pattern mirrors Node but additionally carries named free variables that
// bind during matching. The concrete variants are ConstantPattern,
// VariablePattern, and BinaryPattern; like Node, the set is closed.
//
// A VariablePattern matches only a VariableNode bearing the identical
// name — this is a restriction, not full unification over arbitrary
// sub-terms (see Matcher).
type Pattern interface {
	// Inputs returns the pattern's children in order, mirroring Node.Inputs.
	Inputs() []Pattern

	String() string

	pattern() // seals the variant set to this package
}

// ConstantPattern matches a ConstantNode with an equal Value.
type ConstantPattern struct {
	Value int
}

// PConstant builds a ConstantPattern for v.
func PConstant(v int) *ConstantPattern { return &ConstantPattern{Value: v} }

func (p *ConstantPattern) Inputs() []Pattern { return nil }
func (p *ConstantPattern) String() string    { return fmt.Sprintf("%d", p.Value) }
func (*ConstantPattern) pattern()            {}

// VariablePattern matches a VariableNode whose Name is identical. The same
// pattern-variable name used twice within one pattern must match the same
// VariableNode both times (see Matcher).
type VariablePattern struct {
	Name string
}

// PVariable builds a VariablePattern with the given name.
func PVariable(name string) *VariablePattern { return &VariablePattern{Name: name} }

func (p *VariablePattern) Inputs() []Pattern { return nil }
func (p *VariablePattern) String() string    { return p.Name }
func (*VariablePattern) pattern()            {}

// BinaryPattern matches a BinaryNode with an equal Op, recursing into Lhs
// and Rhs.
type BinaryPattern struct {
	Op       BinaryOp
	Lhs, Rhs Pattern
}

// PBinary builds a BinaryPattern for op over lhs and rhs.
func PBinary(op BinaryOp, lhs, rhs Pattern) *BinaryPattern {
	return &BinaryPattern{Op: op, Lhs: lhs, Rhs: rhs}
}

func (p *BinaryPattern) Inputs() []Pattern { return []Pattern{p.Lhs, p.Rhs} }
func (p *BinaryPattern) String() string {
	return fmt.Sprintf("(%s %s %s)", p.Lhs, p.Op, p.Rhs)
}
func (*BinaryPattern) pattern() {}

// Rule asserts that any sub-term matching LHS is equivalent to the
// instantiation of RHS under the match's bindings. Rules are owned by the
// caller and borrowed for the lifetime of saturation; the e-graph never
// mutates a Rule.
type Rule struct {
	LHS Pattern
	RHS Pattern
}
