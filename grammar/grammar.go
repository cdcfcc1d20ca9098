// Package grammar is the standard lippy language built from combinators:
// literals, operators, brackets, keywords, comments, expressions,
// containers and assignment statements.
package grammar

import (
	"regexp"
	"sort"
	"sync"

	c "github.com/dhamidi/lippy/combinator"
)

// Grammar holds the parsers of the language. New builds all of them once;
// none is modified afterwards, so a Grammar may be shared between
// goroutines.
type Grammar struct {
	Identifier *c.Parser
	Float      *c.Parser
	Integer    *c.Parser
	Number     *c.Parser
	String     *c.Parser
	Boolean    *c.Parser
	Literal    *c.Parser

	Brackets  map[Kind]*c.Parser
	Operators map[Kind]*c.Parser
	Keywords  map[Kind]*c.Parser

	Operator *c.Parser // any operator, wrapped as OPERATOR
	Keyword  *c.Parser
	Comment  *c.Parser

	Expr      *c.Parser
	List      *c.Parser
	Tuple     *c.Parser
	Set       *c.Parser
	Dict      *c.Parser
	Container *c.Parser

	Assignment *c.Parser
	Statement  *c.Parser
	Program    *c.Parser

	// Token matches one lexical token: the longest of comments, keywords,
	// literals, operators and brackets.
	Token *c.Parser
}

// Standard returns the shared instance of the language.
var Standard = sync.OnceValue(New)

// Parse parses a whole program with the standard grammar.
func Parse(input string) c.State {
	return c.ParseText(input, Standard().Program)
}

// New builds the grammar.
func New() *Grammar {
	g := &Grammar{
		Brackets:  literalTable(Brackets, false),
		Operators: literalTable(Operators, false),
		Keywords:  literalTable(Keywords, true),
	}

	space := c.Skip(c.Regex(`\s*`)).Named("whitespace")

	g.Keyword = longestFirst(Keywords, g.Keywords).Named("keyword")
	g.Boolean = c.Terminal(`(?:true|false)\b`, KindBoolean)
	g.Identifier = c.Sequence(
		c.Not(g.Keyword),
		c.Not(g.Boolean),
		c.Terminal(`[a-zA-Z_][a-zA-Z0-9_]*`, KindIdentifier),
	).Named(string(KindIdentifier))
	g.Float = c.Terminal(`[0-9]+\.[0-9]+`, KindFloat)
	g.Integer = c.Terminal(`[0-9]+`, KindInteger)
	g.Number = c.Wrap(KindNumber, c.Choice(g.Float, g.Integer)).Named(string(KindNumber))
	g.String = c.Terminal(`"[^"]*"|'[^']*'`, KindString)
	g.Comment = c.Wrap(KindComment, c.Choice(
		c.Terminal(`//.*`, KindLineComment),
		c.Terminal(`(?s)/\*.*?\*/`, KindBlockComment),
	)).Named("comment")

	anyOperator := longestFirst(Operators, g.Operators).Named("operator")
	g.Operator = c.Wrap(KindOperator, anyOperator).Named("operator")

	punct := func(k Kind) *c.Parser {
		if p, ok := g.Brackets[k]; ok {
			return c.Skip(p).Named(p.Name())
		}
		p := g.Operators[k]
		return c.Skip(p).Named(p.Name())
	}
	commaSep := c.Sequence(space, punct(KindComma), space)
	sepBy1 := func(p *c.Parser) *c.Parser {
		return c.Sequence(p, c.Many(c.Sequence(commaSep, p)))
	}

	expr := c.Ref("expression")
	elements := sepBy1(expr)

	g.List = c.Wrap(KindList, c.Sequence(
		punct(KindLBracket), space, c.Optional(elements), space, punct(KindRBracket),
	)).Named("list")
	g.Tuple = c.Wrap(KindTuple, c.Sequence(
		punct(KindLParen), space,
		c.Optional(c.Sequence(expr, c.AtLeastOne(c.Sequence(commaSep, expr)))),
		space, punct(KindRParen),
	)).Named("tuple")
	g.Set = c.Wrap(KindSet, c.Sequence(
		punct(KindLBrace), space, c.Optional(elements), space, punct(KindRBrace),
	)).Named("set")
	pair := c.Wrap(KindPair, c.Sequence(
		c.Choice(g.String, g.Identifier), space, punct(KindColon), space, expr,
	)).Named("pair")
	g.Dict = c.Wrap(KindDict, c.Sequence(
		punct(KindLBrace), space, c.Optional(sepBy1(pair)), space, punct(KindRBrace),
	)).Named("dict")
	g.Container = c.Choice(g.List, g.Tuple, g.Dict, g.Set).Named("container")

	g.Literal = c.Choice(g.Number, g.String, g.Boolean, g.Container, g.Identifier).Named("literal")

	group := c.Sequence(punct(KindLParen), space, expr, space, punct(KindRParen)).Named("group")
	atom := c.Choice(g.Number, g.String, g.Boolean, group, g.Container, g.Identifier).Named("operand")

	unary := c.Ref("unary")
	unary.Define(c.Choice(
		c.Wrap(KindUnary, c.Sequence(selectKinds(UnaryOperators, g.Operators), space, unary)),
		atom,
	))
	binary := selectKinds(BinaryOperators, g.Operators).Named("binary operator")
	expr.Define(c.Wrap(KindExpr, c.Sequence(
		unary,
		c.Many(c.Sequence(space, binary, space, unary)),
	)))
	g.Expr = expr

	assignOp := selectKinds([]Kind{
		KindAssign, KindPlusEquals, KindMinusEquals, KindMultiplyEquals,
		KindDivideEquals, KindModuloEquals, KindExponentEquals, KindAndEquals,
		KindOrEquals, KindXorEquals, KindShiftLeftEquals, KindShiftRightEquals,
	}, g.Operators).Named("assignment operator")
	// "==" must not be read as "=" followed by an expression.
	assignOp = c.Sequence(c.Not(g.Operators[KindEquals]), assignOp).Named("assignment operator")

	g.Assignment = c.Wrap(KindAssignment, c.Sequence(
		g.Identifier, space, assignOp, space, expr, space, punct(KindSemicolon),
	)).Named("assignment")
	g.Statement = c.Choice(
		g.Comment,
		g.Assignment,
		c.Wrap(KindStatement, c.Sequence(expr, space, punct(KindSemicolon))).Named("expression statement"),
	).Named("statement")
	g.Program = c.Wrap(KindProgram, c.Sequence(
		space,
		c.ManyTill(c.Sequence(g.Statement, space), c.EOF),
	)).Named("program")

	g.Token = c.Longest(
		g.Comment,
		g.Keyword,
		g.Boolean,
		g.Number,
		g.String,
		g.Identifier,
		anyOperator,
		longestFirst(Brackets, g.Brackets).Named("bracket"),
	).Named("token")

	return g
}

// literalTable builds one terminal per entry. Keywords only match at a
// word boundary, so "iffy" is not "if" followed by "fy".
func literalTable(entries []Entry, word bool) map[Kind]*c.Parser {
	table := make(map[Kind]*c.Parser, len(entries))
	for _, e := range entries {
		pattern := regexp.QuoteMeta(e.Literal)
		if word {
			pattern += `\b`
		}
		table[e.Kind] = c.Terminal(pattern, e.Kind)
	}
	return table
}

// longestFirst is a Choice over the table ordered by descending literal
// length, so "**=" is tried before "**" and "*".
func longestFirst(entries []Entry, table map[Kind]*c.Parser) *c.Parser {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Literal) > len(sorted[j].Literal)
	})
	alts := make([]*c.Parser, len(sorted))
	for i, e := range sorted {
		alts[i] = table[e.Kind]
	}
	return c.Choice(alts...)
}

func selectKinds(kinds []Kind, table map[Kind]*c.Parser) *c.Parser {
	var entries []Entry
	for _, k := range kinds {
		lit, _ := Literal(k)
		entries = append(entries, Entry{Kind: k, Literal: lit})
	}
	return longestFirst(entries, table)
}

// Rule returns the parser named name: one of Program, Statement,
// Assignment, Expr, Container, Literal, Operator, Keyword, Comment or Token.
func (g *Grammar) Rule(name string) (*c.Parser, bool) {
	rules := map[string]*c.Parser{
		"Program":    g.Program,
		"Statement":  g.Statement,
		"Assignment": g.Assignment,
		"Expr":       g.Expr,
		"Container":  g.Container,
		"Literal":    g.Literal,
		"Operator":   g.Operator,
		"Keyword":    g.Keyword,
		"Comment":    g.Comment,
		"Token":      g.Token,
	}
	p, ok := rules[name]
	return p, ok
}
