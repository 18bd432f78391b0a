package lambda

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const omega = "(λx.x x)(λx.x x)"

func TestReduce(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"variable", "x", "a"},
		{"identity", "λx.x", "λa.a"},
		{"identity applied", "(λx.x) y", "a"},
		{"K", "(λx.λy.x) a b", "a"},
		{"K erases argument", "(λx.λy.x) a ((λz.z) b)", "a"},
		{"KI", "(λx.λy.y) a b", "a"},
		{"S K K", "(λx.λy.λz.x z (y z)) (λa.λb.a) (λc.λd.c) e", "a"},
		{"under lambda", "λf.(λx.x) f", "λa.a"},
		{"stuck application", "f ((λx.x) y)", "a b"},
		{"shared argument", "(λf.f (f x)) (λy.y)", "a"},
		{"nested app", "(λx.λy.x y) a b", "a b"},
		{"capture avoided", "(λx.λy.x) y", "λa.b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, err := Parse[Pure](tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, PrintUnreduced(Reduce(term, false)))
		})
	}
}

func TestReduceWeak(t *testing.T) {
	// The redex only appears in the body once x is substituted.
	term := MustParse[Pure]("(λx.λy.x y) (λz.z)")

	weak := Reduce(term, true)
	assert.Equal(t, "λa.(λb.b)a", PrintUnreduced(weak))

	full := Reduce(term, false)
	assert.Equal(t, "λa.a", PrintUnreduced(full))
}

func TestReduceWeakLeavesDivergentBody(t *testing.T) {
	// The body has no normal form once x is substituted; weak reduction
	// never enters it.
	term := MustParse[Pure]("(λx.λy.x x) (λx.x x)")
	result := Reduce(term, true)
	_, ok := result.(Abs[Pure])
	assert.True(t, ok)
}

func TestReduceIdempotent(t *testing.T) {
	inputs := []string{
		"λx.x",
		"(λx.λy.x) a",
		"(λf.λx.f (f x)) (λf.λx.f (f x))",
		"(λp.p (λx.λy.y)) ((λx.λy.λf.f x y) a b)",
		"λa.(λb.b a) (λc.c)",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			once := Reduce(MustParse[Pure](input), false)
			twice := Reduce(once, false)
			require.Equal(t, VerdictEqual, StructurallyEqual(once, twice, nil))
		})
	}
}

func TestReduceDoesNotMutate(t *testing.T) {
	term := MustParse[Pure]("(λx.x) y")
	before := PrintUnreduced(term)
	_ = Reduce(term, false)
	assert.Equal(t, before, PrintUnreduced(term))
}

func TestReducerStepLimit(t *testing.T) {
	r := Reducer[Pure]{MaxSteps: 50}
	_, err := r.Reduce(context.Background(), MustParse[Pure](omega))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStepLimit))
	assert.Equal(t, uint64(50), r.Stats().BetaReductions)
}

func TestReducerWithinLimit(t *testing.T) {
	r := Reducer[Pure]{MaxSteps: 10}
	result, err := r.Reduce(context.Background(), MustParse[Pure]("(λx.λy.x) a b"))
	require.NoError(t, err)
	assert.Equal(t, "a", PrintUnreduced(result))
	assert.Equal(t, uint64(2), r.Stats().BetaReductions)
}

func TestReducerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var r Reducer[Pure]
	_, err := r.Reduce(ctx, MustParse[Pure](omega))
	require.ErrorIs(t, err, context.Canceled)
}

func TestReducerCountsRenames(t *testing.T) {
	var r Reducer[Pure]
	// the argument y is free and collides with the inner parameter
	result, err := r.Reduce(context.Background(), MustParse[Pure]("(λx.λy.x y) y"))
	require.NoError(t, err)
	assert.Equal(t, "λa.b a", PrintUnreduced(result))
	assert.Equal(t, uint64(1), r.Stats().Renames)
}

func TestStep(t *testing.T) {
	term := MustParse[Pure]("(λx.x) ((λy.y) z)")

	var trace []string
	for {
		next, ok := Step(term)
		if !ok {
			break
		}
		term = next
		trace = append(trace, PrintUnreduced(term))
	}

	assert.Equal(t, []string{"(λa.a)b", "a"}, trace)
}

func TestStepNormalOrderTerminates(t *testing.T) {
	// The argument diverges but is discarded; leftmost-outermost steps
	// never touch it.
	term := MustParse[Pure]("(λx.λy.y) (" + omega + ") z")
	for i := 0; i < 10; i++ {
		next, ok := Step(term)
		if !ok {
			break
		}
		term = next
	}
	assert.Equal(t, "a", PrintUnreduced(term))
}

func TestCall(t *testing.T) {
	id := MustParse[Pure]("λx.x")
	k := MustParse[Pure]("λx.λy.x")

	assert.True(t, Equal(k, Call(id, k)))

	weak := CallWeak(k, MustParse[Pure]("λz.(λw.w) z"))
	assert.Equal(t, "λa.λb.(λc.c)b", PrintUnreduced(weak))
}

func TestLet(t *testing.T) {
	names := Names{}
	body, err := ParseWith[Pure]("i a", names)
	require.NoError(t, err)
	value, err := ParseWith[Pure]("λx.x", names)
	require.NoError(t, err)

	term := Let(names["i"], value, body)

	assert.Equal(t, "(λa.a b)(λc.c)", PrintUnreduced(term))
	assert.Equal(t, "a", Print(term))
}

func TestReducerTrace(t *testing.T) {
	names := Names{}
	term, err := ParseWith[Pure]("(λx.λy.x) a b", names)
	require.NoError(t, err)

	var r Reducer[Pure]
	assert.Nil(t, r.TraceSnapshot())

	r.EnableTrace(10)
	_, err = r.Reduce(context.Background(), term)
	require.NoError(t, err)

	assert.Equal(t, []TraceEvent{
		{Step: 1, Param: names["x"]},
		{Step: 2, Param: names["y"]},
	}, r.TraceSnapshot())
}

func TestReducerTraceCapacity(t *testing.T) {
	var r Reducer[Pure]
	r.EnableTrace(1)
	_, err := r.Reduce(context.Background(), MustParse[Pure]("(λx.λy.x y) y"))
	require.NoError(t, err)

	events := r.TraceSnapshot()
	require.Len(t, events, 1)
	assert.Equal(t, 1, events[0].Renames)

	r.DisableTrace()
	_, err = r.Reduce(context.Background(), MustParse[Pure]("(λx.x) z"))
	require.NoError(t, err)
	assert.Len(t, r.TraceSnapshot(), 1)
	assert.Equal(t, uint64(2), r.Stats().BetaReductions)
}

func TestReducerCountsNestedRenames(t *testing.T) {
	var r Reducer[Pure]
	// both inner parameters occur free in the argument
	result, err := r.Reduce(context.Background(), MustParse[Pure]("(λx.λy.λz.x y z) (y z)"))
	require.NoError(t, err)
	assert.Equal(t, "λa.λb.c d a b", PrintUnreduced(result))
	assert.Equal(t, uint64(2), r.Stats().Renames)
}
