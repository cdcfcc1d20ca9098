package ebnflex

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/lippy/combinator"
	"golang.org/x/exp/ebnf"
)

// Position represents a location in source code.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token with its position.
type Token struct {
	Kind     string
	Literal  string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Literal)
}

// Kinds of tokens that are not named after a production.
const (
	KindEOF   = "EOF"
	KindError = "ERROR"
)

// Lexer splits input into the tokens of a compiled grammar. The candidates
// are the lexical productions not used by other lexical productions, plus
// the literal strings of the syntactic productions, whose kind is the
// literal itself. At each position the longest match wins; on a tie
// literals beat productions and earlier productions beat later ones.
type Lexer struct {
	rules    *Rules
	kinds    []string
	literals []string
	input    string
	filename string
	pos      int
	line     int
	column   int
}

// NewLexer creates a lexer for the given rules and input.
func NewLexer(rules *Rules, input []byte, filename string) *Lexer {
	kinds, literals := rules.tokenKinds()
	return &Lexer{
		rules:    rules,
		kinds:    kinds,
		literals: literals,
		input:    string(input),
		filename: filename,
		line:     1,
		column:   1,
	}
}

// Position returns the current position in the input.
func (l *Lexer) Position() Position {
	return Position{
		Filename: l.filename,
		Offset:   l.pos,
		Line:     l.line,
		Column:   l.column,
	}
}

func (l *Lexer) advance(n int) {
	for _, ch := range l.input[l.pos : l.pos+n] {
		if ch == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
	}
	l.pos += n
}

func (l *Lexer) skipSpace() {
	if !l.rules.space {
		return
	}
	st := space.Parse(combinator.NewStateAt(l.input, l.pos))
	if !st.Failed() {
		l.advance(st.Position() - l.pos)
	}
}

// NextToken returns the next token from the input. At the end of input it
// returns an EOF token and io.EOF. A character no candidate matches is
// returned as an ERROR token so lexing can continue after it.
func (l *Lexer) NextToken() (Token, error) {
	l.skipSpace()
	if l.pos >= len(l.input) {
		return Token{Kind: KindEOF, Position: l.Position()}, io.EOF
	}

	start := l.Position()
	rest := l.input[l.pos:]

	var bestKind string
	var bestLen int
	for _, lit := range l.literals {
		if len(lit) > bestLen && strings.HasPrefix(rest, lit) {
			bestKind, bestLen = lit, len(lit)
		}
	}
	for _, name := range l.kinds {
		st := l.rules.rules[name].Parse(combinator.NewStateAt(l.input, l.pos))
		if st.Failed() {
			continue
		}
		if n := st.Position() - l.pos; n > bestLen {
			bestKind, bestLen = name, n
		}
	}

	if bestLen == 0 {
		_, size := utf8.DecodeRuneInString(rest)
		l.advance(size)
		return Token{Kind: KindError, Literal: rest[:size], Position: start}, nil
	}

	l.advance(bestLen)
	return Token{Kind: bestKind, Literal: rest[:bestLen], Position: start}, nil
}

// Tokenize returns every token of input up to, but not including, EOF.
func Tokenize(rules *Rules, input []byte, filename string) []Token {
	l := NewLexer(rules, input, filename)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err == io.EOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func (r *Rules) tokenKinds() (kinds, literals []string) {
	used := make(map[string]bool)
	seen := make(map[string]bool)
	for name, prod := range r.grammar {
		if IsLexical(name) {
			collectNames(prod.Expr, used)
		} else {
			collectLiterals(prod.Expr, seen)
		}
	}
	for _, name := range r.Names() {
		if IsLexical(name) && !used[name] {
			kinds = append(kinds, name)
		}
	}
	for lit := range seen {
		literals = append(literals, lit)
	}
	sort.Strings(literals)
	return kinds, literals
}

func collectNames(expr ebnf.Expression, out map[string]bool) {
	walk(expr, func(x ebnf.Expression) {
		if n, ok := x.(*ebnf.Name); ok {
			out[n.String] = true
		}
	})
}

func collectLiterals(expr ebnf.Expression, out map[string]bool) {
	walk(expr, func(x ebnf.Expression) {
		if t, ok := x.(*ebnf.Token); ok && t.String != "" {
			out[t.String] = true
		}
	})
}

func walk(expr ebnf.Expression, visit func(ebnf.Expression)) {
	if expr == nil {
		return
	}
	visit(expr)
	switch e := expr.(type) {
	case ebnf.Sequence:
		for _, x := range e {
			walk(x, visit)
		}
	case ebnf.Alternative:
		for _, x := range e {
			walk(x, visit)
		}
	case *ebnf.Repetition:
		walk(e.Body, visit)
	case *ebnf.Option:
		walk(e.Body, visit)
	case *ebnf.Group:
		walk(e.Body, visit)
	}
}
