package eqsat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcherBoundaryBehavior(t *testing.T) {
	t.Run("variable pattern matches only the exact name", func(t *testing.T) {
		m := NewMatcher(PVariable("x"))
		_, ok := m.Match(Variable("x"))
		assert.True(t, ok)

		m2 := NewMatcher(PVariable("x"))
		_, ok = m2.Match(Variable("y"))
		assert.False(t, ok)
	})

	t.Run("constant pattern matches only the exact value", func(t *testing.T) {
		m := NewMatcher(PConstant(2))
		_, ok := m.Match(Constant(2))
		assert.True(t, ok)

		m2 := NewMatcher(PConstant(2))
		_, ok = m2.Match(Constant(3))
		assert.False(t, ok)
	})

	t.Run("op mismatch never matches", func(t *testing.T) {
		x, two := Variable("x"), Constant(2)
		pat := PBinary(ADD, PVariable("x"), PConstant(2))
		m := NewMatcher(pat)
		_, ok := m.Match(Binary(SUB, x, two))
		assert.False(t, ok)
	})
}

func TestMatcherDoubleVariableIdentity(t *testing.T) {
	pat := PBinary(ADD, PVariable("x"), PVariable("x"))

	x := Variable("x")
	m1 := NewMatcher(pat)
	_, ok := m1.Match(Binary(ADD, x, x))
	assert.True(t, ok, "X + X should match x + x")

	y := Variable("y")
	m2 := NewMatcher(pat)
	_, ok = m2.Match(Binary(ADD, x, y))
	assert.False(t, ok, "X + X should not match x + y")
}

func TestMatcherBindings(t *testing.T) {
	pat := PBinary(MUL, PVariable("x"), PConstant(2))
	x := Variable("x")
	m := NewMatcher(pat)

	bindings, ok := m.Match(Binary(MUL, x, Constant(2)))
	require.True(t, ok)
	require.Contains(t, bindings, "x")
	assert.Same(t, x, bindings["x"])
}

func TestMatcherIsPureAndReusable(t *testing.T) {
	pat := PBinary(ADD, PVariable("x"), PVariable("x"))
	m := NewMatcher(pat)
	x := Variable("x")
	node := Binary(ADD, x, x)

	b1, ok1 := m.Match(node)
	b2, ok2 := m.Match(node)

	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, b1, b2)

	// A failed match on an unrelated node must not leak bindings into the
	// next call on the same Matcher.
	y := Variable("y")
	_, ok := m.Match(Binary(ADD, x, y))
	assert.False(t, ok)

	b3, ok3 := m.Match(node)
	require.True(t, ok3)
	assert.Equal(t, b1, b3)
}

func TestMatcherUnknownVariantPanics(t *testing.T) {
	assert.Panics(t, func() {
		matchRec(fakePattern{}, Constant(1), Bindings{})
	})
}

type fakePattern struct{}

func (fakePattern) Inputs() []Pattern { return nil }
func (fakePattern) String() string    { return "fake" }
func (fakePattern) pattern()          {}
