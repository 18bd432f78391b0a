package lambda

import (
	"fmt"
	"unicode"
)

// Names maps identifiers to the bindings they denote while parsing. Every
// occurrence of an identifier resolves to the same binding; identifiers not
// yet in the table get a new one.
type Names map[string]*Binding

// Lookup returns the binding for name, allocating and recording one if the
// name is new.
func (names Names) Lookup(name string) *Binding {
	if b, ok := names[name]; ok {
		return b
	}
	b := NewBinding()
	names[name] = b
	return b
}

// ParseErrorKind classifies parse failures.
type ParseErrorKind int

const (
	// ExpectedCharacter: a required '(' ')' '.' or 'λ' is missing.
	ExpectedCharacter ParseErrorKind = iota + 1
	// ExpectedIdentifier: an identifier position holds no identifier.
	ExpectedIdentifier
	// ExpectedEnd: input remains after a complete term.
	ExpectedEnd
)

// ParseError describes where and why parsing stopped.
type ParseError struct {
	Kind ParseErrorKind
	// Char is the missing character for ExpectedCharacter.
	Char rune
	// Offset counts runes from the start of the input.
	Offset int
	// Found is the text at Offset, empty at the end of the input.
	Found string
}

// Sentinels for errors.Is. ErrExpectedCharacter matches any missing
// character.
var (
	ErrExpectedCharacter  = &ParseError{Kind: ExpectedCharacter}
	ErrExpectedIdentifier = &ParseError{Kind: ExpectedIdentifier}
	ErrExpectedEnd        = &ParseError{Kind: ExpectedEnd}
)

func (e *ParseError) Error() string {
	found := "end of input"
	if e.Found != "" {
		found = fmt.Sprintf("%q", e.Found)
	}
	switch e.Kind {
	case ExpectedCharacter:
		return fmt.Sprintf("offset %d: expected %q, found %s", e.Offset, e.Char, found)
	case ExpectedIdentifier:
		return fmt.Sprintf("offset %d: expected identifier, found %s", e.Offset, found)
	case ExpectedEnd:
		return fmt.Sprintf("offset %d: expected end of input, found %s", e.Offset, found)
	default:
		return fmt.Sprintf("offset %d: parse error", e.Offset)
	}
}

// Is matches sentinels of the same kind; a sentinel without Char matches
// every missing character.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Char == 0 || t.Char == e.Char)
}

// Parse parses a lambda term from a string using a fresh name table.
func Parse[V Variable[V]](input string) (Term[V], error) {
	return ParseWith[V](input, Names{})
}

// ParseWith parses a lambda term, resolving identifiers through names and
// recording new ones in it, so several parses can share bindings.
//
//	term        := lambda | application
//	application := operand (operand)* [lambda]
//	operand     := "(" term ")" | identifier
//	lambda      := ("λ" | "\") identifier "." term
//	identifier  := [A-Za-z0-9]+
//
// Whitespace may separate any two tokens. A nil names parses with a fresh
// table.
func ParseWith[V Variable[V]](input string, names Names) (Term[V], error) {
	if names == nil {
		names = Names{}
	}
	p := &parser[V]{src: []rune(input), names: names}
	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if p.pos < len(p.src) {
		return nil, p.errorf(ExpectedEnd, 0)
	}
	return term, nil
}

// MustParse is like Parse but panics if the input does not parse.
func MustParse[V Variable[V]](input string) Term[V] {
	term, err := Parse[V](input)
	if err != nil {
		panic(fmt.Sprintf("lambda: parsing %q: %v", input, err))
	}
	return term
}

type parser[V Variable[V]] struct {
	src   []rune
	pos   int
	names Names
}

func (p *parser[V]) peek() (rune, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *parser[V]) skipWhitespace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser[V]) expect(ch rune) error {
	p.skipWhitespace()
	if r, ok := p.peek(); ok && (r == ch || ch == 'λ' && r == '\\') {
		p.pos++
		return nil
	}
	return p.errorf(ExpectedCharacter, ch)
}

func (p *parser[V]) errorf(kind ParseErrorKind, ch rune) *ParseError {
	err := &ParseError{Kind: kind, Char: ch, Offset: p.pos}
	if r, ok := p.peek(); ok {
		err.Found = string(r)
	}
	return err
}

func isLambda(r rune) bool {
	return r == 'λ' || r == '\\'
}

func isIdentifier(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Term ::= Lambda | Application
func (p *parser[V]) parseTerm() (Term[V], error) {
	p.skipWhitespace()
	if r, ok := p.peek(); ok && isLambda(r) {
		return p.parseLambda()
	}

	var fun Term[V]
	for {
		var operand Term[V]
		var err error
		r, _ := p.peek()
		switch {
		case r == '(':
			operand, err = p.parseParenthesized()
		case isLambda(r):
			// A trailing lambda takes the rest of the application:
			// f λx.x y == f (λx.x y)
			operand, err = p.parseLambda()
		default:
			operand, err = p.parseVariable()
		}
		if err != nil {
			return nil, err
		}
		if fun == nil {
			fun = operand
		} else {
			fun = App[V]{Fun: fun, Arg: operand}
		}

		p.skipWhitespace()
		if r, ok := p.peek(); !ok || r == ')' {
			return fun, nil
		}
	}
}

func (p *parser[V]) parseParenthesized() (Term[V], error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return term, nil
}

func (p *parser[V]) parseIdentifier() (*Binding, error) {
	p.skipWhitespace()
	start := p.pos
	for p.pos < len(p.src) && isIdentifier(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return nil, p.errorf(ExpectedIdentifier, 0)
	}
	return p.names.Lookup(string(p.src[start:p.pos])), nil
}

func (p *parser[V]) parseVariable() (Term[V], error) {
	b, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	return Ref[V](b), nil
}

func (p *parser[V]) parseLambda() (Term[V], error) {
	if err := p.expect('λ'); err != nil {
		return nil, err
	}
	param, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expect('.'); err != nil {
		return nil, err
	}
	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return Abs[V]{Param: param, Body: body}, nil
}
