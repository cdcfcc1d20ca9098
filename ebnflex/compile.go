// Package ebnflex compiles EBNF grammars into parser combinators and lexes
// input with them.
//
// Grammars use the notation of golang.org/x/exp/ebnf. Productions whose
// name starts with a lowercase letter are lexical: they match characters
// exactly and produce a single token holding the matched text. All other
// productions are syntactic: whitespace (and any productions named with
// WithSkip) is skipped before each terminal, and each production produces
// a token whose value is its children, forming a concrete syntax tree.
package ebnflex

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/lippy/combinator"
	"golang.org/x/exp/ebnf"
)

// space is the whitespace skipped between terminals of syntactic
// productions and between tokens by the Lexer.
var space = combinator.Regex(`\s+`)

// Option configures Compile.
type Option func(*options)

type options struct {
	skip      []string
	skipSpace bool
}

// WithSkip names lexical productions, such as comments, that are skipped
// between terminals of syntactic productions.
func WithSkip(names ...string) Option {
	return func(o *options) { o.skip = append(o.skip, names...) }
}

// WithoutSpace stops syntactic productions from skipping whitespace.
func WithoutSpace() Option {
	return func(o *options) { o.skipSpace = false }
}

// Rules is a compiled grammar.
type Rules struct {
	grammar ebnf.Grammar
	rules   map[string]*combinator.Parser
	trivia  *combinator.Parser
	space   bool
}

// LoadGrammar loads an EBNF grammar from a file.
func LoadGrammar(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	grammar, err := ebnf.Parse(filename, f)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}

	return grammar, nil
}

// Check verifies grammar with ebnf.Verify from start and rejects left
// recursion, which combinators cannot parse.
func Check(grammar ebnf.Grammar, start string) error {
	if start != "" {
		if err := ebnf.Verify(grammar, start); err != nil {
			return err
		}
	}
	return checkLeftRecursion(grammar)
}

// IsLexical reports whether the production name is lexical.
func IsLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}

// Compile builds one parser per production. Productions are compiled as
// Refs, so they may refer to each other in any order.
func Compile(grammar ebnf.Grammar, opts ...Option) (*Rules, error) {
	o := options{skipSpace: true}
	for _, opt := range opts {
		opt(&o)
	}

	if err := checkLeftRecursion(grammar); err != nil {
		return nil, err
	}

	r := &Rules{
		grammar: grammar,
		rules:   make(map[string]*combinator.Parser, len(grammar)),
		space:   o.skipSpace,
	}
	for name := range grammar {
		r.rules[name] = combinator.Ref(name)
	}

	var trivia []*combinator.Parser
	if o.skipSpace {
		trivia = append(trivia, space)
	}
	for _, name := range o.skip {
		ref, ok := r.rules[name]
		if !ok {
			return nil, fmt.Errorf("skip production %q not found in grammar", name)
		}
		trivia = append(trivia, ref)
	}
	if len(trivia) > 0 {
		r.trivia = combinator.Skip(combinator.Many(combinator.Choice(trivia...))).Named("whitespace")
	}

	for _, name := range r.Names() {
		prod := grammar[name]
		lexical := IsLexical(name)
		body, err := r.compile(prod.Expr, lexical)
		if err != nil {
			return nil, fmt.Errorf("production %s: %w", name, err)
		}
		kind := combinator.Kind(name)
		if lexical {
			body = combinator.Map(body, func(vs []combinator.Value) []combinator.Value {
				return []combinator.Value{combinator.NewToken(kind, combinator.Text(vs))}
			})
		} else {
			body = combinator.Wrap(kind, body)
		}
		r.rules[name].Define(body)
	}

	return r, nil
}

func (r *Rules) compile(expr ebnf.Expression, lexical bool) (*combinator.Parser, error) {
	switch e := expr.(type) {
	case nil:
		return combinator.New("empty", func(s combinator.State) combinator.State { return s }), nil

	case *ebnf.Token:
		return r.terminal(combinator.Word(e.String), lexical), nil

	case *ebnf.Range:
		lo, hi, err := rangeBounds(e)
		if err != nil {
			return nil, err
		}
		desc := fmt.Sprintf("%q…%q", lo, hi)
		return r.terminal(combinator.Satisfy(desc, func(ch rune) bool {
			return ch >= lo && ch <= hi
		}), lexical), nil

	case ebnf.Sequence:
		items, err := r.compileAll(e, lexical)
		if err != nil {
			return nil, err
		}
		return combinator.Sequence(items...), nil

	case ebnf.Alternative:
		alts, err := r.compileAll(e, lexical)
		if err != nil {
			return nil, err
		}
		return combinator.Longest(alts...), nil

	case *ebnf.Repetition:
		body, err := r.compile(e.Body, lexical)
		if err != nil {
			return nil, err
		}
		return combinator.Many(body), nil

	case *ebnf.Option:
		body, err := r.compile(e.Body, lexical)
		if err != nil {
			return nil, err
		}
		return combinator.Optional(body), nil

	case *ebnf.Group:
		return r.compile(e.Body, lexical)

	case *ebnf.Name:
		ref, ok := r.rules[e.String]
		if !ok {
			return nil, fmt.Errorf("%s: undefined production %s", e.Pos(), e.String)
		}
		if !lexical && IsLexical(e.String) {
			return r.terminal(ref, false), nil
		}
		return ref, nil

	default:
		return nil, fmt.Errorf("%s: unsupported expression %T", expr.Pos(), expr)
	}
}

func (r *Rules) compileAll(exprs []ebnf.Expression, lexical bool) ([]*combinator.Parser, error) {
	out := make([]*combinator.Parser, len(exprs))
	for i, x := range exprs {
		p, err := r.compile(x, lexical)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// terminal prefixes p with trivia when it appears in a syntactic production.
func (r *Rules) terminal(p *combinator.Parser, lexical bool) *combinator.Parser {
	if lexical || r.trivia == nil {
		return p
	}
	return combinator.Sequence(r.trivia, p).Named(p.Name())
}

func rangeBounds(e *ebnf.Range) (lo, hi rune, err error) {
	if utf8.RuneCountInString(e.Begin.String) != 1 || utf8.RuneCountInString(e.End.String) != 1 {
		return 0, 0, fmt.Errorf("%s: range bounds must be single characters", e.Pos())
	}
	lo, _ = utf8.DecodeRuneInString(e.Begin.String)
	hi, _ = utf8.DecodeRuneInString(e.End.String)
	return lo, hi, nil
}

// Parser returns the compiled production name.
func (r *Rules) Parser(name string) (*combinator.Parser, bool) {
	p, ok := r.rules[name]
	return p, ok
}

// Names returns the production names in the order they appear in the
// grammar source.
func (r *Rules) Names() []string {
	names := make([]string, 0, len(r.grammar))
	for name := range r.grammar {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		pi, pj := r.grammar[names[i]].Pos(), r.grammar[names[j]].Pos()
		if pi.Offset != pj.Offset {
			return pi.Offset < pj.Offset
		}
		return names[i] < names[j]
	})
	return names
}

// Parse parses the whole of input with production start. Trailing trivia is
// allowed after the production.
func (r *Rules) Parse(start, input string) (combinator.State, error) {
	p, ok := r.rules[start]
	if !ok {
		return combinator.State{}, fmt.Errorf("production %q not found in grammar", start)
	}
	stages := []*combinator.Parser{p}
	if r.trivia != nil && !IsLexical(start) {
		stages = append(stages, r.trivia)
	}
	stages = append(stages, combinator.EOF)
	return combinator.ParseText(input, stages...), nil
}

// checkLeftRecursion reports a production that can reach itself without
// consuming input.
func checkLeftRecursion(grammar ebnf.Grammar) error {
	nullable := nullableSet(grammar)

	edges := make(map[string][]string, len(grammar))
	for name, prod := range grammar {
		seen := make(map[string]bool)
		leftNames(prod.Expr, nullable, seen)
		for callee := range seen {
			edges[name] = append(edges[name], callee)
		}
		sort.Strings(edges[name])
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(grammar))
	var path []string
	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visiting:
			i := indexOf(path, name)
			cycle := append(append([]string(nil), path[i:]...), name)
			return fmt.Errorf("left recursion: %s", strings.Join(cycle, " -> "))
		case done:
			return nil
		}
		state[name] = visiting
		path = append(path, name)
		for _, callee := range edges[name] {
			if _, ok := grammar[callee]; !ok {
				continue
			}
			if err := visit(callee); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[name] = done
		return nil
	}

	names := make([]string, 0, len(grammar))
	for name := range grammar {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}

func indexOf(xs []string, x string) int {
	for i := range xs {
		if xs[i] == x {
			return i
		}
	}
	return -1
}

func nullableSet(grammar ebnf.Grammar) map[string]bool {
	nullable := make(map[string]bool)
	for changed := true; changed; {
		changed = false
		for name, prod := range grammar {
			if !nullable[name] && isNullable(prod.Expr, nullable) {
				nullable[name] = true
				changed = true
			}
		}
	}
	return nullable
}

func isNullable(expr ebnf.Expression, nullable map[string]bool) bool {
	switch e := expr.(type) {
	case nil:
		return true
	case *ebnf.Token:
		return e.String == ""
	case *ebnf.Range:
		return false
	case ebnf.Sequence:
		for _, x := range e {
			if !isNullable(x, nullable) {
				return false
			}
		}
		return true
	case ebnf.Alternative:
		for _, x := range e {
			if isNullable(x, nullable) {
				return true
			}
		}
		return false
	case *ebnf.Repetition, *ebnf.Option:
		return true
	case *ebnf.Group:
		return isNullable(e.Body, nullable)
	case *ebnf.Name:
		return nullable[e.String]
	}
	return false
}

// leftNames collects the productions expr may call before consuming input.
func leftNames(expr ebnf.Expression, nullable map[string]bool, out map[string]bool) {
	switch e := expr.(type) {
	case ebnf.Sequence:
		for _, x := range e {
			leftNames(x, nullable, out)
			if !isNullable(x, nullable) {
				return
			}
		}
	case ebnf.Alternative:
		for _, x := range e {
			leftNames(x, nullable, out)
		}
	case *ebnf.Repetition:
		leftNames(e.Body, nullable, out)
	case *ebnf.Option:
		leftNames(e.Body, nullable, out)
	case *ebnf.Group:
		leftNames(e.Body, nullable, out)
	case *ebnf.Name:
		out[e.String] = true
	}
}
