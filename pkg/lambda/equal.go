package lambda

// Verdict is the outcome of comparing two terms.
type Verdict int

const (
	VerdictNotEqual Verdict = iota
	VerdictEqual
	// VerdictUndefined means the comparison reached two host constants,
	// which have no general notion of equality.
	VerdictUndefined
)

func (v Verdict) String() string {
	switch v {
	case VerdictNotEqual:
		return "not equal"
	case VerdictEqual:
		return "equal"
	case VerdictUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// StructurallyEqual compares lhs and rhs without reducing them, treating
// bound names as equal when context maps the left binding to the right one.
// Corresponding abstraction parameters are added to the context, which makes
// the comparison alpha-equivalence. A nil context is empty.
func StructurallyEqual[V Variable[V]](lhs, rhs Term[V], context map[*Binding]*Binding) Verdict {
	reverse := make(map[*Binding]*Binding, len(context))
	for l, r := range context {
		reverse[r] = l
	}
	return structurallyEqual(lhs, rhs, context, reverse)
}

// structurallyEqual keeps context and its inverse so a binding mapped on
// one side never matches itself on the other.
func structurallyEqual[V Variable[V]](lhs, rhs Term[V], context, reverse map[*Binding]*Binding) Verdict {
	switch l := lhs.(type) {
	case Var[V]:
		r, ok := rhs.(Var[V])
		if !ok {
			return VerdictNotEqual
		}
		lb, lok := l.Leaf.Bound()
		rb, rok := r.Leaf.Bound()
		switch {
		case lok && rok:
			if sameBinding(lb, rb, context, reverse) {
				return VerdictEqual
			}
			return VerdictNotEqual
		case !lok && !rok:
			return VerdictUndefined
		default:
			return VerdictNotEqual
		}
	case Abs[V]:
		r, ok := rhs.(Abs[V])
		if !ok {
			return VerdictNotEqual
		}
		return structurallyEqual(l.Body, r.Body,
			extend(context, l.Param, r.Param), extend(reverse, r.Param, l.Param))
	case App[V]:
		r, ok := rhs.(App[V])
		if !ok {
			return VerdictNotEqual
		}
		fun := structurallyEqual(l.Fun, r.Fun, context, reverse)
		if fun == VerdictNotEqual {
			return VerdictNotEqual
		}
		arg := structurallyEqual(l.Arg, r.Arg, context, reverse)
		if arg == VerdictNotEqual {
			return VerdictNotEqual
		}
		if fun == VerdictUndefined || arg == VerdictUndefined {
			return VerdictUndefined
		}
		return VerdictEqual
	default:
		panic(unknownTerm(lhs))
	}
}

func sameBinding(lb, rb *Binding, context, reverse map[*Binding]*Binding) bool {
	if mapped, ok := context[lb]; ok {
		return mapped == rb
	}
	if _, ok := reverse[rb]; ok {
		return false
	}
	return lb == rb
}

func extend(m map[*Binding]*Binding, k, v *Binding) map[*Binding]*Binding {
	extended := make(map[*Binding]*Binding, len(m)+1)
	for mk, mv := range m {
		extended[mk] = mv
	}
	extended[k] = v
	return extended
}

// Equivalent reduces both terms to normal form and compares them
// structurally.
func Equivalent[V Variable[V]](lhs, rhs Term[V]) Verdict {
	return StructurallyEqual(Reduce(lhs, false), Reduce(rhs, false), nil)
}

// Equal reports whether lhs and rhs have alpha-equivalent normal forms. It
// panics if the answer depends on comparing host constants; callers holding
// constants must compare them themselves.
func Equal[V Variable[V]](lhs, rhs Term[V]) bool {
	switch Equivalent(lhs, rhs) {
	case VerdictEqual:
		return true
	case VerdictNotEqual:
		return false
	default:
		panic("lambda: equality between terms holding host constants is undefined")
	}
}
