package lambda

import "fmt"

// Variable is what a leaf term holds. Bound reports the binding the leaf
// refers to, if any; FromBinding builds a leaf referring to b and is called
// on the zero value.
type Variable[V any] interface {
	Bound() (*Binding, bool)
	FromBinding(b *Binding) V
	String() string
}

// Pure is a variable that is always a reference to a binding.
type Pure struct {
	binding *Binding
}

func (v Pure) Bound() (*Binding, bool) {
	return v.binding, v.binding != nil
}

func (Pure) FromBinding(b *Binding) Pure {
	return Pure{binding: b}
}

func (v Pure) String() string {
	return v.binding.String()
}

// Impure is either a reference to a binding or an opaque host constant.
type Impure struct {
	binding  *Binding
	value    any
	constant bool
}

// Constant wraps a host value as a leaf variable.
func Constant(value any) Impure {
	return Impure{value: value, constant: true}
}

func (v Impure) Bound() (*Binding, bool) {
	if v.constant {
		return nil, false
	}
	return v.binding, v.binding != nil
}

func (Impure) FromBinding(b *Binding) Impure {
	return Impure{binding: b}
}

// Value returns the host constant, if v holds one.
func (v Impure) Value() (any, bool) {
	return v.value, v.constant
}

func (v Impure) String() string {
	if v.constant {
		return fmt.Sprint(v.value)
	}
	return v.binding.String()
}

// ImpureFromPure converts a binding reference to its impure form.
func ImpureFromPure(v Pure) Impure {
	return Impure{binding: v.binding}
}
