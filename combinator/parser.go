package combinator

import "fmt"

// Parser is a named combinator: a pure function from State to State.
// Parsers are built once and may be applied to any number of inputs,
// including from several goroutines at once.
type Parser struct {
	name string
	fn   func(State) State
	ref  *refCell
}

type refCell struct {
	target *Parser
}

// New wraps fn as a Parser called name.
func New(name string, fn func(State) State) *Parser {
	if fn == nil {
		panic("combinator: New with nil function")
	}
	return &Parser{name: name, fn: fn}
}

// Parse applies the parser to s.
func (p *Parser) Parse(s State) State {
	if p.ref != nil {
		if p.ref.target == nil {
			return s.Fail(UndefinedRule, fmt.Sprintf("rule %s used before it was defined", p.name))
		}
		return p.ref.target.Parse(s)
	}
	return p.fn(s)
}

// Name is the label used for p in diagnostics.
func (p *Parser) Name() string { return p.name }

func (p *Parser) String() string { return p.name }

// Named returns a copy of p labelled name. The copy shares p's behaviour,
// including the definition of a Ref.
func (p *Parser) Named(name string) *Parser {
	cp := *p
	cp.name = name
	return &cp
}

// Ref returns a placeholder for a rule that is defined later with Define.
// It lets grammars refer to themselves, for example an expression that
// contains a parenthesized expression.
func Ref(name string) *Parser {
	return &Parser{name: name, ref: &refCell{}}
}

// Define installs the body of a Ref. It panics if p is not a Ref or has
// already been defined, since both are mistakes in grammar construction.
func (p *Parser) Define(body *Parser) *Parser {
	if p.ref == nil {
		panic(fmt.Sprintf("combinator: Define on %s, which is not a Ref", p.name))
	}
	if p.ref.target != nil {
		panic(fmt.Sprintf("combinator: rule %s defined twice", p.name))
	}
	if body == nil {
		panic(fmt.Sprintf("combinator: rule %s defined as nil", p.name))
	}
	p.ref.target = body
	return p
}

// Defined reports whether p is usable: always true for ordinary parsers,
// and true for a Ref once Define has run.
func (p *Parser) Defined() bool {
	return p.ref == nil || p.ref.target != nil
}

// Then is Sequence(p, next...).
func (p *Parser) Then(next ...*Parser) *Parser {
	return Sequence(append([]*Parser{p}, next...)...)
}

// Or is Choice(p, alts...).
func (p *Parser) Or(alts ...*Parser) *Parser {
	return Choice(append([]*Parser{p}, alts...)...)
}

// Many is Many(p).
func (p *Parser) Many() *Parser { return Many(p) }

// AtLeastOne is AtLeastOne(p).
func (p *Parser) AtLeastOne() *Parser { return AtLeastOne(p) }

// Optional is Optional(p).
func (p *Parser) Optional() *Parser { return Optional(p) }

// Tokenize is Sequence(p, Tokenize(kind)).
func (p *Parser) Tokenize(kind Kind) *Parser {
	return Sequence(p, Tokenize(kind)).Named(p.name)
}

// Wrap is Wrap(kind, p).
func (p *Parser) Wrap(kind Kind) *Parser { return Wrap(kind, p) }
