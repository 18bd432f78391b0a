package lambda

import (
	"fmt"
	"sync/atomic"
)

// lastBindingID labels bindings for debug output. Allocation is atomic so
// terms may be built from several goroutines at once.
var lastBindingID atomic.Uint64

// Binding is the identity of one lambda-bound name. Two bindings are the
// same binding only if they are the same pointer; the id is a label and is
// never compared.
type Binding struct {
	id uint64
}

// NewBinding returns a binding distinct from every other binding.
func NewBinding() *Binding {
	return &Binding{id: lastBindingID.Add(1)}
}

// ID returns the binding's debug label.
func (b *Binding) ID() uint64 {
	return b.id
}

func (b *Binding) String() string {
	return fmt.Sprintf("{%d}", b.id)
}

// IsFresh reports whether b does not occur free in term.
func IsFresh[V Variable[V]](b *Binding, term Term[V]) bool {
	return !FreeVariables(term).Contains(b)
}

// BindingSet is a set of bindings keyed by identity.
type BindingSet map[*Binding]struct{}

// NewBindingSet creates a set holding bs.
func NewBindingSet(bs ...*Binding) BindingSet {
	set := make(BindingSet, len(bs))
	for _, b := range bs {
		set[b] = struct{}{}
	}
	return set
}

// Union returns a new set with the members of both sets.
func (s BindingSet) Union(other BindingSet) BindingSet {
	result := make(BindingSet, len(s)+len(other))
	for b := range s {
		result[b] = struct{}{}
	}
	for b := range other {
		result[b] = struct{}{}
	}
	return result
}

func (s BindingSet) Contains(b *Binding) bool {
	_, ok := s[b]
	return ok
}

func (s BindingSet) Add(b *Binding) {
	s[b] = struct{}{}
}

func (s BindingSet) Remove(b *Binding) {
	delete(s, b)
}

func (s BindingSet) Len() int {
	return len(s)
}
