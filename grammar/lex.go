package grammar

import (
	c "github.com/dhamidi/lippy/combinator"
)

// Lexer turns source text into a flat token stream using the grammar's
// Token parser. Whitespace between tokens is dropped.
type Lexer struct {
	stream *c.Parser
	skip   map[Kind]bool
}

// NewLexer returns a lexer over g. Tokens whose kind is listed in skip are
// left out of the output.
func NewLexer(g *Grammar, skip ...Kind) *Lexer {
	space := c.Skip(c.Regex(`\s*`)).Named("whitespace")
	l := &Lexer{
		stream: c.Sequence(space, c.ManyTill(c.Sequence(g.Token, space), c.EOF)),
		skip:   make(map[Kind]bool),
	}
	for _, k := range skip {
		l.skip[k] = true
	}
	return l
}

// Lex returns the tokens of input. On failure the tokens read before the
// failure are returned together with the *combinator.Diagnostic.
func (l *Lexer) Lex(input string) ([]c.Token, error) {
	st := c.ParseText(input, l.stream)
	var tokens []c.Token
	for _, tok := range c.Tokens(st.Result()) {
		if !l.skip[tok.Kind] {
			tokens = append(tokens, tok)
		}
	}
	if err := st.Err(); err != nil {
		return tokens, err
	}
	return tokens, nil
}

// Lex tokenizes input with the standard grammar, keeping comments.
func Lex(input string) ([]c.Token, error) {
	return NewLexer(Standard()).Lex(input)
}
