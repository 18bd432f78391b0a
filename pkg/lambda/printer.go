package lambda

import (
	"strings"
)

// Printer renders terms in the compact notation accepted by Parse. It names
// bindings a, b, c, ... in the order it first meets them and remembers the
// names, so a binding prints the same way in every term given to the same
// Printer.
type Printer[V Variable[V]] struct {
	names map[*Binding]string
	used  map[string]bool
	next  int

	// labels prints bindings by their debug label instead of a name.
	labels bool
}

// NewPrinter creates a Printer with an empty name table.
func NewPrinter[V Variable[V]]() *Printer[V] {
	return &Printer[V]{
		names: make(map[*Binding]string),
		used:  make(map[string]bool),
	}
}

// Name assigns a name to b ahead of printing. Generated names skip every
// name assigned this way.
func (p *Printer[V]) Name(b *Binding, name string) {
	p.names[b] = name
	p.used[name] = true
}

// NameAll assigns the names recorded in a parser name table.
func (p *Printer[V]) NameAll(names Names) {
	for name, b := range names {
		p.Name(b, name)
	}
}

// Print renders the normal form of term.
func (p *Printer[V]) Print(term Term[V]) string {
	return p.PrintUnreduced(Reduce(term, false))
}

// PrintUnreduced renders term as it is.
func (p *Printer[V]) PrintUnreduced(term Term[V]) string {
	var sb strings.Builder
	p.write(&sb, term)
	return sb.String()
}

// Print renders the normal form of term with fresh names.
func Print[V Variable[V]](term Term[V]) string {
	return NewPrinter[V]().Print(term)
}

// PrintUnreduced renders term without reducing it, with fresh names.
func PrintUnreduced[V Variable[V]](term Term[V]) string {
	return NewPrinter[V]().PrintUnreduced(term)
}

// Debug renders term without reducing it, labelling every binding by its
// identity, e.g. λ{3}.{3} {1}.
func Debug[V Variable[V]](term Term[V]) string {
	p := NewPrinter[V]()
	p.labels = true
	return p.PrintUnreduced(term)
}

func (p *Printer[V]) name(b *Binding) string {
	if p.labels {
		return b.String()
	}
	if name, ok := p.names[b]; ok {
		return name
	}
	name := nameAt(p.next)
	p.next++
	for p.used[name] {
		name = nameAt(p.next)
		p.next++
	}
	p.Name(b, name)
	return name
}

func (p *Printer[V]) write(sb *strings.Builder, term Term[V]) {
	switch t := term.(type) {
	case Var[V]:
		if b, ok := t.Leaf.Bound(); ok {
			sb.WriteString(p.name(b))
		} else {
			sb.WriteString(t.Leaf.String())
		}
	case Abs[V]:
		sb.WriteString("λ")
		sb.WriteString(p.name(t.Param))
		sb.WriteByte('.')
		p.write(sb, t.Body)
	case App[V]:
		_, tight := t.Arg.(Var[V])
		if _, ok := t.Fun.(Abs[V]); ok {
			// (λa.a)b, (λa.a)(λb.b)
			sb.WriteByte('(')
			p.write(sb, t.Fun)
			sb.WriteByte(')')
			p.writeArg(sb, t.Arg, tight, "")
		} else {
			// a b, a b c, a(b c), a(λb.b)
			p.write(sb, t.Fun)
			p.writeArg(sb, t.Arg, tight, " ")
		}
	default:
		panic(unknownTerm(term))
	}
}

func (p *Printer[V]) writeArg(sb *strings.Builder, arg Term[V], tight bool, sep string) {
	if tight {
		sb.WriteString(sep)
		p.write(sb, arg)
		return
	}
	sb.WriteByte('(')
	p.write(sb, arg)
	sb.WriteByte(')')
}
