package lambda

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// HostFunc is a unary host function carried by a term.
type HostFunc func(any) (any, error)

// Role names the position a value held when evaluation failed.
type Role int

const (
	RoleResult Role = iota
	RoleFunction
	RoleArgument
)

func (r Role) String() string {
	switch r {
	case RoleResult:
		return "result"
	case RoleFunction:
		return "function"
	case RoleArgument:
		return "argument"
	default:
		return "unknown"
	}
}

// ShapeError reports a reduced term that is not a host constant where one
// was required.
type ShapeError struct {
	Role Role
	Term ImpureTerm
}

func (e *ShapeError) Error() string {
	var found string
	switch e.Term.(type) {
	case Var[Impure]:
		found = "bound variable"
	case Abs[Impure]:
		found = "lambda"
	default:
		found = "application"
	}
	return fmt.Sprintf("expected a constant %s but found %s `%s`", e.Role, found, PrintUnreduced(e.Term))
}

// ConversionError reports a host value that is not of the type its position
// requires.
type ConversionError struct {
	Role   Role
	Value  any
	Target reflect.Type
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: cannot convert `%v` (%T) to %s", e.Role, e.Value, e.Value, e.Target)
}

// Const returns a leaf holding a host value.
func Const(value any) ImpureTerm {
	return Var[Impure]{Leaf: Constant(value)}
}

// Func returns a leaf holding f. Applying it to a constant that is not a T
// fails with a ConversionError in the argument role.
func Func[T, R any](f func(T) R) ImpureTerm {
	return Const(HostFunc(func(x any) (any, error) {
		arg, ok := x.(T)
		if !ok {
			return nil, &ConversionError{Role: RoleArgument, Value: x, Target: reflect.TypeFor[T]()}
		}
		return f(arg), nil
	}))
}

// Invoke reduces fn and arg, calls the host function fn holds on the value
// arg holds and returns the result as a constant.
func Invoke(fn, arg ImpureTerm) (ImpureTerm, error) {
	fnValue, err := constantOf(Reduce(fn, false), RoleFunction)
	if err != nil {
		return nil, err
	}
	argValue, err := constantOf(Reduce(arg, false), RoleArgument)
	if err != nil {
		return nil, err
	}
	result, err := call(fnValue, argValue)
	if err != nil {
		return nil, err
	}
	return Const(result), nil
}

// Evaluate reduces term to normal form and computes its host value. The
// normal form must be a constant, or applications of constant host
// functions to terms that evaluate in turn.
func Evaluate[R any](term ImpureTerm) (R, error) {
	var zero R
	value, err := evaluate(Reduce(term, false), RoleResult)
	if err != nil {
		return zero, err
	}
	result, ok := value.(R)
	if !ok {
		return zero, &ConversionError{Role: RoleResult, Value: value, Target: reflect.TypeFor[R]()}
	}
	return result, nil
}

func evaluate(term ImpureTerm, role Role) (any, error) {
	switch t := term.(type) {
	case Var[Impure]:
		return constantOf(t, role)
	case Abs[Impure]:
		return nil, &ShapeError{Role: role, Term: t}
	case App[Impure]:
		fn, err := evaluate(t.Fun, RoleFunction)
		if err != nil {
			return nil, err
		}
		arg, err := evaluate(t.Arg, RoleArgument)
		if err != nil {
			return nil, err
		}
		return call(fn, arg)
	default:
		panic(unknownTerm(term))
	}
}

func constantOf(term ImpureTerm, role Role) (any, error) {
	if v, ok := term.(Var[Impure]); ok {
		if value, ok := v.Leaf.Value(); ok {
			return value, nil
		}
	}
	return nil, &ShapeError{Role: role, Term: term}
}

func call(fn, arg any) (any, error) {
	var f HostFunc
	switch fn := fn.(type) {
	case HostFunc:
		f = fn
	case func(any) (any, error):
		f = fn
	case func(any) any:
		f = func(x any) (any, error) { return fn(x), nil }
	default:
		return nil, &ConversionError{Role: RoleFunction, Value: fn, Target: reflect.TypeFor[HostFunc]()}
	}
	result, err := f(arg)
	if err != nil {
		var conv *ConversionError
		if errors.As(err, &conv) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "host function %v", fn)
	}
	return result, nil
}

func unknownTerm(term any) string {
	return fmt.Sprintf("lambda: unknown term %T", term)
}
