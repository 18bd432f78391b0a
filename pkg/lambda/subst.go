package lambda

// FreeVariables returns the bindings referenced in term that no enclosing
// abstraction inside term introduces.
func FreeVariables[V Variable[V]](term Term[V]) BindingSet {
	switch t := term.(type) {
	case Var[V]:
		if b, ok := t.Leaf.Bound(); ok {
			return NewBindingSet(b)
		}
		return NewBindingSet()
	case Abs[V]:
		free := FreeVariables(t.Body)
		free.Remove(t.Param)
		return free
	case App[V]:
		return FreeVariables(t.Fun).Union(FreeVariables(t.Arg))
	default:
		panic(unknownTerm(term))
	}
}

// Substitute returns term with every free reference to b replaced by
// replacement. Abstractions whose parameter occurs free in replacement are
// renamed to a fresh binding first, so nothing in replacement is captured.
func Substitute[V Variable[V]](term Term[V], b *Binding, replacement Term[V]) Term[V] {
	s := substitution[V]{target: b, replacement: replacement}
	return s.apply(term)
}

type substitution[V Variable[V]] struct {
	target      *Binding
	replacement Term[V]

	// free caches FreeVariables(replacement); computed on first abstraction.
	free BindingSet

	renames int
}

func (s *substitution[V]) apply(term Term[V]) Term[V] {
	switch t := term.(type) {
	case Var[V]:
		if b, ok := t.Leaf.Bound(); ok && b == s.target {
			return s.replacement
		}
		return t
	case Abs[V]:
		if t.Param == s.target {
			// shadowed
			return t
		}
		param, body := t.Param, t.Body
		if s.replacementFree().Contains(param) {
			fresh := NewBinding()
			rename := substitution[V]{target: param, replacement: Ref[V](fresh)}
			body = rename.apply(body)
			param = fresh
			s.renames += 1 + rename.renames
		}
		return Abs[V]{Param: param, Body: s.apply(body)}
	case App[V]:
		return App[V]{Fun: s.apply(t.Fun), Arg: s.apply(t.Arg)}
	default:
		panic(unknownTerm(term))
	}
}

func (s *substitution[V]) replacementFree() BindingSet {
	if s.free == nil {
		s.free = FreeVariables(s.replacement)
	}
	return s.free
}
