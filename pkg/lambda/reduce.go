package lambda

import (
	"context"

	"github.com/pkg/errors"
)

// ErrStepLimit is returned by a Reducer that ran out of beta reductions.
var ErrStepLimit = errors.New("reduction step limit exceeded")

// Stats holds reduction statistics.
type Stats struct {
	BetaReductions uint64
	Renames        uint64
}

// Reduce performs beta-reduction on term. Applications reduce their function
// to normal form and their argument in the requested mode before
// substituting; weak reduction leaves lambda bodies untouched.
//
// Reduce does not return for terms without a normal form. Use a Reducer
// with a step limit or a cancellable context to bound it.
func Reduce[V Variable[V]](term Term[V], weak bool) Term[V] {
	var r Reducer[V]
	result, err := r.reduce(context.Background(), term, weak)
	if err != nil {
		// No budget and a background context cannot fail.
		panic(err)
	}
	return result
}

// Reducer runs the same reduction as Reduce under an external budget.
type Reducer[V Variable[V]] struct {
	// Weak stops at the outermost abstraction.
	Weak bool
	// MaxSteps bounds the number of beta reductions; zero means unbounded.
	MaxSteps uint64

	stats Stats
	trace traceBuffer
}

// Reduce reduces term, failing with ErrStepLimit once MaxSteps beta
// reductions have been spent or with the context's error once ctx is done.
func (r *Reducer[V]) Reduce(ctx context.Context, term Term[V]) (Term[V], error) {
	return r.reduce(ctx, term, r.Weak)
}

// Stats returns the totals accumulated over every call to Reduce.
func (r *Reducer[V]) Stats() Stats {
	return r.stats
}

func (r *Reducer[V]) reduce(ctx context.Context, term Term[V], weak bool) (Term[V], error) {
	switch t := term.(type) {
	case Var[V]:
		return t, nil
	case Abs[V]:
		if weak {
			return t, nil
		}
		body, err := r.reduce(ctx, t.Body, false)
		if err != nil {
			return nil, err
		}
		return Abs[V]{Param: t.Param, Body: body}, nil
	case App[V]:
		fun, err := r.reduce(ctx, t.Fun, false)
		if err != nil {
			return nil, err
		}
		arg, err := r.reduce(ctx, t.Arg, weak)
		if err != nil {
			return nil, err
		}
		abs, ok := fun.(Abs[V])
		if !ok {
			return App[V]{Fun: fun, Arg: arg}, nil
		}
		if err := r.spend(ctx); err != nil {
			return nil, err
		}
		s := substitution[V]{target: abs.Param, replacement: arg}
		body := s.apply(abs.Body)
		r.stats.Renames += uint64(s.renames)
		r.trace.record(TraceEvent{
			Step:    r.stats.BetaReductions,
			Param:   abs.Param,
			Renames: s.renames,
			Weak:    weak,
		})
		return r.reduce(ctx, body, weak)
	default:
		panic(unknownTerm(term))
	}
}

func (r *Reducer[V]) spend(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.MaxSteps > 0 && r.stats.BetaReductions >= r.MaxSteps {
		return errors.Wrapf(ErrStepLimit, "after %d beta reductions", r.stats.BetaReductions)
	}
	r.stats.BetaReductions++
	return nil
}
