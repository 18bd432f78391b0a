package lambda

// Term represents a lambda calculus term whose leaves hold variables of
// type V. Terms are immutable; every transformation builds a new term and
// subtrees may be shared freely.
type Term[V Variable[V]] interface {
	String() string
	isTerm(V)
}

// PureTerm is a term built only from bound references.
type PureTerm = Term[Pure]

// ImpureTerm is a term whose leaves may also hold host constants.
type ImpureTerm = Term[Impure]

// Var represents a variable usage.
type Var[V Variable[V]] struct {
	Leaf V
}

func (Var[V]) isTerm(V) {}

func (v Var[V]) String() string {
	return Print[V](v)
}

// Abs represents an abstraction (lambda) introducing Param over Body.
type Abs[V Variable[V]] struct {
	Param *Binding
	Body  Term[V]
}

func (Abs[V]) isTerm(V) {}

func (a Abs[V]) String() string {
	return Print[V](a)
}

// App represents an application.
type App[V Variable[V]] struct {
	Fun Term[V]
	Arg Term[V]
}

func (App[V]) isTerm(V) {}

func (a App[V]) String() string {
	return Print[V](a)
}

// Ref returns a variable term referring to b.
func Ref[V Variable[V]](b *Binding) Term[V] {
	var zero V
	return Var[V]{Leaf: zero.FromBinding(b)}
}

// Lambda builds an abstraction over a fresh binding. body receives a
// reference to that binding and returns the abstraction's body.
func Lambda[V Variable[V]](body func(x Term[V]) Term[V]) Term[V] {
	b := NewBinding()
	return Abs[V]{Param: b, Body: body(Ref[V](b))}
}

// Apply builds the left-associative application fun arg0 arg1 ... without
// reducing it.
func Apply[V Variable[V]](fun Term[V], args ...Term[V]) Term[V] {
	for _, arg := range args {
		fun = App[V]{Fun: fun, Arg: arg}
	}
	return fun
}

// Call applies fun to arg and reduces the result to normal form.
func Call[V Variable[V]](fun, arg Term[V]) Term[V] {
	return Reduce(Apply(fun, arg), false)
}

// CallWeak applies fun to arg and reduces the result without entering
// lambda bodies.
func CallWeak[V Variable[V]](fun, arg Term[V]) Term[V] {
	return Reduce(Apply(fun, arg), true)
}

// Let represents a let binding (sugar for application).
// let b = value in body -> (λb. body) value
func Let[V Variable[V]](b *Binding, value, body Term[V]) Term[V] {
	return App[V]{
		Fun: Abs[V]{Param: b, Body: body},
		Arg: value,
	}
}

// MapVariables rebuilds term with every leaf converted by f. Lambda
// parameters keep their bindings.
func MapVariables[V Variable[V], W Variable[W]](term Term[V], f func(V) W) Term[W] {
	switch t := term.(type) {
	case Var[V]:
		return Var[W]{Leaf: f(t.Leaf)}
	case Abs[V]:
		return Abs[W]{Param: t.Param, Body: MapVariables(t.Body, f)}
	case App[V]:
		return App[W]{Fun: MapVariables(t.Fun, f), Arg: MapVariables(t.Arg, f)}
	default:
		panic(unknownTerm(term))
	}
}

// Lift converts a pure term so it can carry host constants.
func Lift(term PureTerm) ImpureTerm {
	return MapVariables(term, ImpureFromPure)
}
