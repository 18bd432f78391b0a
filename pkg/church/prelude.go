package church

import (
	"strconv"

	"github.com/vic/calcula/pkg/lambda"
)

// Definition names a term.
type Definition struct {
	Name string
	Term lambda.PureTerm
}

var prelude = []Definition{
	{"id", lam(func(x term) term { return x })},
	{"true", True},
	{"false", False},
	{"and", And},
	{"or", Or},
	{"not", Not},
	{"if", IfThenElse},
	{"succ", Succ},
	{"add", Add},
	{"mul", Mul},
	{"iszero", IsZero},
	{"pair", Pair},
	{"fst", First},
	{"snd", Second},
	{"some", Some},
	{"none", None},
	{"issome", IsSome},
	{"unwrap", Unwrap},
	{"mapsome", MapSome},
	{"cons", Cons},
	{"head", Head},
	{"tail", Tail},
}

// Prelude returns the standard definitions in order.
func Prelude() []Definition {
	return append([]Definition(nil), prelude...)
}

// Lookup resolves a prelude name. Names made only of digits resolve to the
// numeral they spell.
func Lookup(name string) (lambda.PureTerm, bool) {
	if isNumeral(name) {
		n, err := strconv.Atoi(name)
		if err != nil {
			return nil, false
		}
		return Numeral(n), true
	}
	for _, def := range prelude {
		if def.Name == name {
			return def.Term, true
		}
	}
	return nil, false
}

func isNumeral(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
