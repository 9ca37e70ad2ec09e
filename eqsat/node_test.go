package eqsat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeConstructors(t *testing.T) {
	t.Run("Constant carries its value", func(t *testing.T) {
		c := Constant(42)
		assert.Equal(t, 42, c.Value)
		assert.Empty(t, c.Inputs())
	})

	t.Run("Variable carries its name", func(t *testing.T) {
		v := Variable("x")
		assert.Equal(t, "x", v.Name)
		assert.Empty(t, v.Inputs())
	})

	t.Run("Binary carries op and operands in order", func(t *testing.T) {
		x := Variable("x")
		two := Constant(2)
		b := Binary(MUL, x, two)
		require.Len(t, b.Inputs(), 2)
		assert.Same(t, Node(x), b.Inputs()[0])
		assert.Same(t, Node(two), b.Inputs()[1])
		assert.Equal(t, MUL, b.Op)
	})
}

func TestNodeIdentity(t *testing.T) {
	// Two ConstantNode values with the same value are distinct objects;
	// identity comparison (==) must tell them apart even though they are
	// structurally identical. Only the Numberer reconciles them.
	a := Constant(1)
	b := Constant(1)
	assert.NotSame(t, a, b)
	assert.False(t, Node(a) == Node(b))
}

func TestBinaryOpString(t *testing.T) {
	cases := map[BinaryOp]string{
		ADD: "+", SUB: "-", MUL: "*", DIV: "/", LSHIFT: "<<", RSHIFT: ">>",
	}
	for op, want := range cases {
		assert.Equal(t, want, op.String())
	}
}

func TestBinaryOpStringUnknownPanics(t *testing.T) {
	assert.Panics(t, func() {
		_ = BinaryOp(999).String()
	})
}

func TestCloneWithInputsUnknownVariantPanics(t *testing.T) {
	assert.Panics(t, func() {
		cloneWithInputs(fakeNode{}, nil)
	})
}

// fakeNode implements Node from outside the package's variant set, which
// is only possible because node() is unexported and this test lives inside
// the package — it exists purely to exercise the fatal default case of
// cloneWithInputs.
type fakeNode struct{}

func (fakeNode) Inputs() []Node { return nil }
func (fakeNode) String() string { return "fake" }
func (fakeNode) node()          {}
