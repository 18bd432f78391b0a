package church

import (
	"github.com/pkg/errors"

	"github.com/vic/calcula/pkg/lambda"
)

// DecodeBool applies term to the host values true and false and evaluates
// the selection.
func DecodeBool(term lambda.PureTerm) (bool, error) {
	b, err := lambda.Evaluate[bool](lambda.Apply(lambda.Lift(term), lambda.Const(true), lambda.Const(false)))
	if err != nil {
		return false, errors.Wrap(err, "decoding boolean")
	}
	return b, nil
}

// DecodeNumeral applies term to a host successor and zero and evaluates the
// count.
func DecodeNumeral(term lambda.PureTerm) (int, error) {
	succ := lambda.Func(func(n int) int { return n + 1 })
	n, err := lambda.Evaluate[int](lambda.Apply(lambda.Lift(term), succ, lambda.Const(0)))
	if err != nil {
		return 0, errors.Wrap(err, "decoding numeral")
	}
	return n, nil
}
