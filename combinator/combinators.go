package combinator

import (
	"fmt"
	"strings"
)

func joinNames(ps []*Parser, sep string) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name()
	}
	return strings.Join(names, sep)
}

// Sequence applies ps in order, each to the state left by the previous one.
// The first failure is returned as is; consumed input is not given back.
func Sequence(ps ...*Parser) *Parser {
	name := "(" + joinNames(ps, " ") + ")"
	if len(ps) == 1 {
		name = ps[0].Name()
	}
	return New(name, func(s State) State {
		for _, p := range ps {
			if s.Failed() {
				return s
			}
			s = p.Parse(s)
		}
		return s
	})
}

// Choice applies each of ps to the same state and returns the first
// success. If every alternative fails, the result is a failure at the
// original position that lists all alternatives. The alternative that got
// furthest before failing is kept as the cause.
func Choice(ps ...*Parser) *Parser {
	return New("("+joinNames(ps, " | ")+")", func(s State) State {
		if s.Failed() {
			return s
		}
		var furthest *Diagnostic
		for _, p := range ps {
			next := p.Parse(s)
			if !next.Failed() {
				return next
			}
			furthest = further(furthest, next.diagnostic)
		}
		return noAlternative(s, ps, furthest)
	})
}

// Longest applies each of ps to the same state and returns the success that
// consumed the most input. Ties go to the earlier alternative. Failure is
// reported as for Choice.
func Longest(ps ...*Parser) *Parser {
	return New("("+joinNames(ps, " | ")+")", func(s State) State {
		if s.Failed() {
			return s
		}
		var best State
		found := false
		var furthest *Diagnostic
		for _, p := range ps {
			next := p.Parse(s)
			if next.Failed() {
				furthest = further(furthest, next.diagnostic)
				continue
			}
			if !found || next.pos > best.pos {
				best, found = next, true
			}
		}
		if found {
			return best
		}
		return noAlternative(s, ps, furthest)
	})
}

func further(a, b *Diagnostic) *Diagnostic {
	if a == nil || b.Offset > a.Offset {
		return b
	}
	return a
}

func noAlternative(s State, ps []*Parser, furthest *Diagnostic) State {
	expected := make([]string, len(ps))
	for i, p := range ps {
		expected[i] = p.Name()
	}
	kind := PatternMismatch
	if s.AtEnd() {
		kind = UnexpectedEndOfInput
	}
	d := &Diagnostic{
		Kind:     kind,
		Message:  fmt.Sprintf("expected %s, got %s", expectedList(expected), describeRune(s)),
		Offset:   s.pos,
		Expected: expected,
	}
	if furthest != nil && furthest.Offset > s.pos {
		d.Cause = furthest
	}
	return s.failWith(d)
}

// Many applies p until it fails and returns the last successful state. It
// never fails. A success that consumes nothing ends the loop.
func Many(p *Parser) *Parser {
	return New(p.Name()+"*", func(s State) State {
		if s.Failed() {
			return s
		}
		return repeat(p, s)
	})
}

func repeat(p *Parser, s State) State {
	for {
		next := p.Parse(s)
		if next.Failed() {
			return s
		}
		if next.pos == s.pos {
			return next
		}
		s = next
	}
}

// ManyTill applies p until end matches and returns the state after end.
// Unlike Many it is strict: if p fails before end matches, that failure
// is returned. A success of p that consumes nothing reports end's failure.
func ManyTill(p, end *Parser) *Parser {
	return New(p.Name()+"* "+end.Name(), func(s State) State {
		for !s.Failed() {
			done := end.Parse(s)
			if !done.Failed() {
				return done
			}
			next := p.Parse(s)
			if next.Failed() {
				return next
			}
			if next.pos == s.pos {
				return done
			}
			s = next
		}
		return s
	})
}

// AtLeastOne is Many(p) after one required application of p.
func AtLeastOne(p *Parser) *Parser {
	return New(p.Name()+"+", func(s State) State {
		if s.Failed() {
			return s
		}
		first := p.Parse(s)
		if first.Failed() || first.pos == s.pos {
			return first
		}
		return repeat(p, first)
	})
}

// Optional applies p and falls back to the original state if it fails.
func Optional(p *Parser) *Parser {
	return New(p.Name()+"?", func(s State) State {
		if s.Failed() {
			return s
		}
		next := p.Parse(s)
		if next.Failed() {
			return s
		}
		return next
	})
}

// Not succeeds without consuming input when p fails, and fails when p
// succeeds.
func Not(p *Parser) *Parser {
	return New("!"+p.Name(), func(s State) State {
		if s.Failed() {
			return s
		}
		next := p.Parse(s)
		if next.Failed() {
			return s
		}
		return s.failWith(&Diagnostic{
			Kind:    LookaheadViolation,
			Message: fmt.Sprintf("unexpected %s", p.Name()),
			Offset:  s.pos,
		})
	})
}

// And succeeds without consuming input when p succeeds. When p fails the
// result is a failure at the original position with p's failure as cause.
func And(p *Parser) *Parser {
	return New("&"+p.Name(), func(s State) State {
		if s.Failed() {
			return s
		}
		next := p.Parse(s)
		if !next.Failed() {
			return s
		}
		return s.failWith(&Diagnostic{
			Kind:     LookaheadViolation,
			Message:  fmt.Sprintf("expected %s ahead", p.Name()),
			Offset:   s.pos,
			Expected: []string{p.Name()},
			Cause:    next.diagnostic,
		})
	})
}

// Tokenize replaces the whole result with a single Token of kind. A result
// that already is a single Token is re-tagged instead of nested.
func Tokenize(kind Kind) *Parser {
	return New("tokenize("+string(kind)+")", func(s State) State {
		if s.Failed() {
			return s
		}
		if s.result.len() == 1 {
			if tok, ok := s.result.value.(Token); ok {
				return s.WithResult([]Value{Token{Kind: kind, Value: tok.Value}})
			}
		}
		return s.WithResult([]Value{Token{Kind: kind, Value: s.Result()}})
	})
}

// Wrap applies p and appends everything p contributed as one Token of kind.
// Unlike Tokenize it leaves the result accumulated before p alone.
func Wrap(kind Kind, p *Parser) *Parser {
	return Map(p, func(vs []Value) []Value {
		return []Value{Token{Kind: kind, Value: vs}}
	}).Named(p.Name())
}

// Map applies p and replaces p's contribution to the result with f of it.
// A panic in f fails at the position p started from.
func Map(p *Parser, f func([]Value) []Value) *Parser {
	return New(p.Name(), func(s State) State {
		if s.Failed() {
			return s
		}
		scoped := s
		scoped.result = nil
		inner := p.Parse(scoped)
		if inner.Failed() {
			inner.result = s.result
			return inner
		}
		mapped, err := mapValues(f, inner.Result())
		if err != nil {
			return s.Fail(OutOfBounds, err.Error())
		}
		out := s.extend(mapped)
		out.pos = inner.pos
		return out
	})
}

// Skip applies p and drops whatever it contributed to the result.
func Skip(p *Parser) *Parser {
	return Map(p, func([]Value) []Value { return nil })
}
