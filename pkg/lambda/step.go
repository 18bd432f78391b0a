package lambda

// Step performs the leftmost-outermost beta reduction in term. It reports
// false when term has no redex, i.e. is already in normal form.
//
// Repeating Step reaches the normal form whenever one exists, so callers can
// bound or trace a reduction one step at a time.
func Step[V Variable[V]](term Term[V]) (Term[V], bool) {
	switch t := term.(type) {
	case Var[V]:
		return t, false
	case Abs[V]:
		body, ok := Step(t.Body)
		if !ok {
			return t, false
		}
		return Abs[V]{Param: t.Param, Body: body}, true
	case App[V]:
		if abs, ok := t.Fun.(Abs[V]); ok {
			return Substitute(abs.Body, abs.Param, t.Arg), true
		}
		if fun, ok := Step(t.Fun); ok {
			return App[V]{Fun: fun, Arg: t.Arg}, true
		}
		if arg, ok := Step(t.Arg); ok {
			return App[V]{Fun: t.Fun, Arg: arg}, true
		}
		return t, false
	default:
		panic(unknownTerm(term))
	}
}
