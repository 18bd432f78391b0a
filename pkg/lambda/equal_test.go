package lambda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructurallyEqual(t *testing.T) {
	tests := []struct {
		name     string
		lhs, rhs string
		expected Verdict
	}{
		{"alpha-equivalent identities", "λx.x", "λy.y", VerdictEqual},
		{"K versus KI", "λx.λy.x", "λx.λy.y", VerdictNotEqual},
		{"renamed nested", "λx.λy.x y", "λa.λb.a b", VerdictEqual},
		{"abstraction versus variable", "λx.x", "x", VerdictNotEqual},
		{"application versus abstraction", "x x", "λx.x", VerdictNotEqual},
		{"unreduced redex", "(λx.x) y", "y", VerdictNotEqual},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lhs := MustParse[Pure](tt.lhs)
			rhs := MustParse[Pure](tt.rhs)
			assert.Equal(t, tt.expected, StructurallyEqual(lhs, rhs, nil))
		})
	}
}

func TestStructurallyEqualFreeVariables(t *testing.T) {
	x, y := NewBinding(), NewBinding()
	assert.Equal(t, VerdictEqual, StructurallyEqual(ref(x), ref(x), nil))
	assert.Equal(t, VerdictNotEqual, StructurallyEqual(ref(x), ref(y), nil))
	assert.Equal(t, VerdictEqual, StructurallyEqual(ref(x), ref(y), map[*Binding]*Binding{x: y}))

	// y is bound on the right, so a free y on the left is a different name.
	assert.Equal(t, VerdictNotEqual, StructurallyEqual(abs(x, ref(y)), abs(y, ref(y)), nil))
}

func TestStructurallyEqualDoesNotLeakContext(t *testing.T) {
	x, y := NewBinding(), NewBinding()
	context := map[*Binding]*Binding{}
	// (λx.x) x against (λy.y) y: the free occurrences differ.
	lhs := app(abs(x, ref(x)), ref(x))
	rhs := app(abs(y, ref(y)), ref(y))

	assert.Equal(t, VerdictNotEqual, StructurallyEqual(lhs, rhs, context))
	assert.Empty(t, context)
}

func TestStructurallyEqualConstants(t *testing.T) {
	x := NewBinding()
	assert.Equal(t, VerdictUndefined, StructurallyEqual(Const(1), Const(1), nil))
	assert.Equal(t, VerdictUndefined, StructurallyEqual(Const(1), Const(2), nil))
	assert.Equal(t, VerdictNotEqual, StructurallyEqual(Const(1), Ref[Impure](x), nil))
	assert.Equal(t, VerdictNotEqual, StructurallyEqual(Ref[Impure](x), Const(1), nil))

	// A difference elsewhere decides the comparison.
	lhs := Apply(Const(1), Ref[Impure](x))
	rhs := Apply(Const(1), Lambda(func(y ImpureTerm) ImpureTerm { return y }))
	assert.Equal(t, VerdictNotEqual, StructurallyEqual(lhs, rhs, nil))

	undecided := Apply(Ref[Impure](x), Const("s"))
	assert.Equal(t, VerdictUndefined, StructurallyEqual(undecided, undecided, nil))
}

func TestEqual(t *testing.T) {
	two := "λf.λx.f (f x)"
	add := "λm.λn.λf.λx.m f (n f x)"
	four := "λf.λx.f (f (f (f x)))"

	sum := MustParse[Pure]("(" + add + ") (" + two + ") (" + two + ")")
	assert.True(t, Equal(sum, MustParse[Pure](four)))
	assert.False(t, Equal(sum, MustParse[Pure](two)))
	assert.Equal(t, VerdictEqual, Equivalent(MustParse[Pure]("(λx.x) (λy.y)"), MustParse[Pure]("λz.z")))
}

func TestEqualSurvivesRenaming(t *testing.T) {
	reduced := MustParse[Pure]("(λx.λy.x y) (λz.z)")
	assert.True(t, Equal(reduced, MustParse[Pure]("λa.a")))

	// λy.x y [x := y] renames y; it must not compare equal to λy.y y.
	x, y := NewBinding(), NewBinding()
	renamed := Substitute(abs(y, app(ref(x), ref(y))), x, ref(y))
	requireDifferent(t, abs(y, app(ref(y), ref(y))), renamed)
}

func TestEqualPanicsOnConstants(t *testing.T) {
	assert.PanicsWithValue(t, "lambda: equality between terms holding host constants is undefined", func() {
		Equal(Const(1), Const(1))
	})
	require.NotPanics(t, func() {
		assert.False(t, Equal(Const(1), Lambda(func(x ImpureTerm) ImpureTerm { return x })))
	})
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "equal", VerdictEqual.String())
	assert.Equal(t, "not equal", VerdictNotEqual.String())
	assert.Equal(t, "undefined", VerdictUndefined.String())
}

func TestStructurallyEqualKAndFlippedK(t *testing.T) {
	x, y := NewBinding(), NewBinding()

	// λx.λy.x returns its first argument, λy.λx.x its second. The body
	// references the same binding on both sides, but it is bound at
	// different depths.
	k := abs(x, abs(y, ref(x)))
	flipped := abs(y, abs(x, ref(x)))

	assert.Equal(t, VerdictNotEqual, StructurallyEqual(k, flipped, nil))
	assert.Equal(t, VerdictNotEqual, StructurallyEqual(flipped, k, nil))
	assert.False(t, Equal(k, flipped))
}
