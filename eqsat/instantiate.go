package eqsat

import "fmt"

// Instantiate produces a fresh Node tree from pattern under bindings,
// typically applied to a rule's RHS after its LHS matched. ConstantPattern
// and BinaryPattern translate directly; a VariablePattern becomes the bound
// node if its name is in bindings, or — if unbound — a fresh free Variable
// carrying the pattern's name.
//
// Emitting a fresh Variable for an unbound RHS pattern name is a semantic
// choice, not the only defensible one (a stricter design could reject an
// unbound RHS variable as a rule-authoring error); this engine follows the
// source's behavior. See DESIGN.md, Open Question 1.
//
// Fatal on an unknown Pattern variant.
func Instantiate(pattern Pattern, bindings Bindings) Node {
	switch p := pattern.(type) {
	case *ConstantPattern:
		return Constant(p.Value)

	case *VariablePattern:
		if bound, ok := bindings[p.Name]; ok {
			return bound
		}
		return Variable(p.Name)

	case *BinaryPattern:
		return Binary(p.Op, Instantiate(p.Lhs, bindings), Instantiate(p.Rhs, bindings))

	default:
		panic(fmt.Sprintf("eqsat: instantiate: unknown pattern variant %T", pattern))
	}
}
