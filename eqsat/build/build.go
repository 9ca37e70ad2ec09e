// Package build provides operator-style construction sugar over eqsat.Node
// and eqsat.Pattern. Go has no operator overloading, so where the engine's
// original source used "x * 2" and "x * 2 >> 1" directly, callers here use
// the free functions below. The eqsat package itself never imports this
// package — sugar is strictly a caller convenience, per spec section 1
// ("the concrete surface syntax or operator overloading used by callers to
// build expressions" is explicitly out of the engine's core scope).
package build

import "github.com/gitrdm/eqsat/eqsat"

// Node-building sugar.

func Add(lhs, rhs eqsat.Node) *eqsat.BinaryNode { return eqsat.Binary(eqsat.ADD, lhs, rhs) }
func Sub(lhs, rhs eqsat.Node) *eqsat.BinaryNode { return eqsat.Binary(eqsat.SUB, lhs, rhs) }
func Mul(lhs, rhs eqsat.Node) *eqsat.BinaryNode { return eqsat.Binary(eqsat.MUL, lhs, rhs) }
func Div(lhs, rhs eqsat.Node) *eqsat.BinaryNode { return eqsat.Binary(eqsat.DIV, lhs, rhs) }
func Shl(lhs, rhs eqsat.Node) *eqsat.BinaryNode { return eqsat.Binary(eqsat.LSHIFT, lhs, rhs) }
func Shr(lhs, rhs eqsat.Node) *eqsat.BinaryNode { return eqsat.Binary(eqsat.RSHIFT, lhs, rhs) }

// V and C are short-hand for building leaf nodes: V("x") is a variable
// named x, C(42) is the constant 42.
func V(name string) *eqsat.VariableNode { return eqsat.Variable(name) }
func C(value int) *eqsat.ConstantNode   { return eqsat.Constant(value) }

// Pattern-building sugar, prefixed P to avoid colliding with the Node
// sugar above.

func PAdd(lhs, rhs eqsat.Pattern) *eqsat.BinaryPattern {
	return eqsat.PBinary(eqsat.ADD, lhs, rhs)
}
func PSub(lhs, rhs eqsat.Pattern) *eqsat.BinaryPattern {
	return eqsat.PBinary(eqsat.SUB, lhs, rhs)
}
func PMul(lhs, rhs eqsat.Pattern) *eqsat.BinaryPattern {
	return eqsat.PBinary(eqsat.MUL, lhs, rhs)
}
func PDiv(lhs, rhs eqsat.Pattern) *eqsat.BinaryPattern {
	return eqsat.PBinary(eqsat.DIV, lhs, rhs)
}
func PShl(lhs, rhs eqsat.Pattern) *eqsat.BinaryPattern {
	return eqsat.PBinary(eqsat.LSHIFT, lhs, rhs)
}
func PShr(lhs, rhs eqsat.Pattern) *eqsat.BinaryPattern {
	return eqsat.PBinary(eqsat.RSHIFT, lhs, rhs)
}

// PV and PC build leaf patterns: PV("x") is a pattern variable named x,
// PC(2) matches only the constant 2.
func PV(name string) *eqsat.VariablePattern { return eqsat.PVariable(name) }
func PC(value int) *eqsat.ConstantPattern   { return eqsat.PConstant(value) }
