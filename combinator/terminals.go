package combinator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

func mismatch(s State, name string) State {
	if s.AtEnd() {
		return s.failWith(&Diagnostic{
			Kind:     UnexpectedEndOfInput,
			Message:  fmt.Sprintf("expected %s, got end of input", name),
			Offset:   s.pos,
			Expected: []string{name},
		})
	}
	return s.failWith(&Diagnostic{
		Kind:     PatternMismatch,
		Message:  fmt.Sprintf("expected %s, got %s", name, describeRune(s)),
		Offset:   s.pos,
		Expected: []string{name},
	})
}

// Char matches the single rune r.
func Char(r rune) *Parser {
	lit := string(r)
	name := strconv.Quote(lit)
	return New(name, func(s State) State {
		if s.Failed() {
			return s
		}
		if !strings.HasPrefix(s.Rest(), lit) {
			return mismatch(s, name)
		}
		return s.MatchAndAdvance(lit, len(lit))
	})
}

// Word matches the literal w.
func Word(w string) *Parser {
	name := strconv.Quote(w)
	return New(name, func(s State) State {
		if s.Failed() {
			return s
		}
		if !strings.HasPrefix(s.Rest(), w) {
			return mismatch(s, name)
		}
		return s.MatchAndAdvance(w, len(w))
	})
}

// Words matches the first of ws found at the cursor, trying them in order.
func Words(ws ...string) *Parser {
	alts := make([]*Parser, len(ws))
	for i, w := range ws {
		alts[i] = Word(w)
	}
	return Choice(alts...)
}

// Satisfy matches one rune for which pred returns true. desc names the
// expected class of rune in diagnostics.
func Satisfy(desc string, pred func(rune) bool) *Parser {
	return New(desc, func(s State) State {
		if s.Failed() {
			return s
		}
		r, size, ok := s.Peek()
		if !ok || (r == utf8.RuneError && size <= 1) || !pred(r) {
			return mismatch(s, desc)
		}
		return s.MatchAndAdvance(s.input[s.pos:s.pos+size], size)
	})
}

// CompileRegex returns a parser matching pattern anchored at the cursor.
// The pattern is compiled in multi-line mode and sees only the input from
// the cursor on, so ^ and \b treat the cursor as the start of the text.
func CompileRegex(pattern string) (*Parser, error) {
	return compileTerminal(pattern, "")
}

// Regex is like CompileRegex but panics on an invalid pattern.
func Regex(pattern string) *Parser {
	p, err := CompileRegex(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// CompileTerminal returns a parser matching pattern anchored at the cursor
// that appends the match as a Token of kind.
func CompileTerminal(pattern string, kind Kind) (*Parser, error) {
	return compileTerminal(pattern, kind)
}

// Terminal is like CompileTerminal but panics on an invalid pattern.
func Terminal(pattern string, kind Kind) *Parser {
	p, err := CompileTerminal(pattern, kind)
	if err != nil {
		panic(err)
	}
	return p
}

func compileTerminal(pattern string, kind Kind) (*Parser, error) {
	re, err := regexp.Compile(`(?m)\A(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	name := "/" + pattern + "/"
	display := name
	if kind != "" {
		display = string(kind)
	}
	return New(display, func(s State) State {
		if s.Failed() {
			return s
		}
		loc := re.FindStringIndex(s.Rest())
		if loc == nil {
			return mismatch(s, name)
		}
		text := s.input[s.pos : s.pos+loc[1]]
		if kind == "" {
			return s.MatchAndAdvance(text, loc[1])
		}
		return s.MatchAndAdvance(NewToken(kind, text), loc[1])
	}), nil
}

// EOF succeeds only at the end of the input.
var EOF = New("end of input", func(s State) State {
	if s.Failed() || s.AtEnd() {
		return s
	}
	return s.failWith(&Diagnostic{
		Kind:     PatternMismatch,
		Message:  fmt.Sprintf("expected end of input, got %s", describeRune(s)),
		Offset:   s.pos,
		Expected: []string{"end of input"},
	})
})

// EOL succeeds at the end of the input or in front of a newline without
// consuming anything.
var EOL = New("end of line", func(s State) State {
	if s.Failed() || s.AtEnd() || s.input[s.pos] == '\n' {
		return s
	}
	return s.failWith(&Diagnostic{
		Kind:     PatternMismatch,
		Message:  fmt.Sprintf("expected end of line, got %s", describeRune(s)),
		Offset:   s.pos,
		Expected: []string{"end of line"},
	})
})

// Whitespace consumes one or more blanks and tabs. It contributes nothing
// to the result.
var Whitespace = New("whitespace", func(s State) State {
	if s.Failed() {
		return s
	}
	n := 0
	for s.pos+n < len(s.input) && (s.input[s.pos+n] == ' ' || s.input[s.pos+n] == '\t') {
		n++
	}
	if n == 0 {
		return mismatch(s, "whitespace")
	}
	return s.Shift(n)
})
