// Package church provides Church encodings of booleans, natural numbers,
// pairs, options and lists as pure lambda terms.
//
// Numerals take the successor first: n = λs.λz.s (s ... (s z)).
package church

import (
	"fmt"

	"github.com/vic/calcula/pkg/lambda"
)

type term = lambda.PureTerm

func lam(body func(x term) term) term {
	return lambda.Lambda(body)
}

func lam2(body func(x, y term) term) term {
	return lam(func(x term) term {
		return lam(func(y term) term { return body(x, y) })
	})
}

func lam3(body func(x, y, z term) term) term {
	return lam(func(x term) term {
		return lam2(func(y, z term) term { return body(x, y, z) })
	})
}

func ap(fun term, args ...term) term {
	return lambda.Apply(fun, args...)
}

// Booleans select one of two arguments.
var (
	True  = lam2(func(t, f term) term { return t })
	False = lam2(func(t, f term) term { return f })

	And        = lam2(func(p, q term) term { return ap(p, q, p) })
	Or         = lam2(func(p, q term) term { return ap(p, p, q) })
	Not        = lam(func(p term) term { return ap(p, False, True) })
	IfThenElse = lam3(func(c, t, f term) term { return ap(c, t, f) })
)

// Arithmetic on numerals.
var (
	Succ = lam3(func(n, s, z term) term { return ap(s, ap(n, s, z)) })
	Add  = lam2(func(m, n term) term {
		return lam2(func(s, z term) term { return ap(m, s, ap(n, s, z)) })
	})
	Mul = lam2(func(m, n term) term {
		return lam(func(s term) term { return ap(m, ap(n, s)) })
	})
	IsZero = lam(func(n term) term {
		return ap(n, lam(func(term) term { return False }), True)
	})
)

// Pairs hold two terms and hand them to a selector.
var (
	Pair   = lam3(func(l, r, f term) term { return ap(f, l, r) })
	First  = lam(func(p term) term { return ap(p, True) })
	Second = lam(func(p term) term { return ap(p, False) })
)

// Options are pairs of a presence flag and a value.
var (
	Some   = lam(func(x term) term { return ap(Pair, True, x) })
	None   = lambda.Reduce(ap(Pair, False, False), false)
	IsSome = First
	Unwrap = Second

	MapSome = lam2(func(f, p term) term {
		return ap(IfThenElse, ap(IsSome, p), ap(Some, ap(f, ap(Unwrap, p))), None)
	})
)

// Lists are None or Some of a head and tail pair.
var (
	Cons = lam2(func(x, xs term) term { return ap(Some, ap(Pair, x, xs)) })
	// Head returns the first element as an option.
	Head = lam(func(l term) term { return ap(MapSome, First, l) })
	// Tail returns the rest of the list, or None for the empty list.
	Tail = lam(func(l term) term {
		return ap(IfThenElse, ap(IsSome, l), ap(Second, ap(Unwrap, l)), None)
	})
)

// Bool returns the encoding of b.
func Bool(b bool) lambda.PureTerm {
	if b {
		return True
	}
	return False
}

// Numeral returns the encoding of n. It panics if n is negative.
func Numeral(n int) lambda.PureTerm {
	if n < 0 {
		panic(fmt.Sprintf("church: numeral of negative %d", n))
	}
	return lam2(func(s, z term) term {
		result := z
		for range n {
			result = ap(s, result)
		}
		return result
	})
}
