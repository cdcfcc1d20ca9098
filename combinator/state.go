package combinator

import (
	"fmt"
	"unicode/utf8"
)

// Value is one element of a parse result: a matched substring, a Token,
// or a nested []Value.
type Value any

// State is an immutable cursor into the input. Every method returns a new
// State; the receiver is never modified.
type State struct {
	input      string
	pos        int
	result     *resultNode
	diagnostic *Diagnostic
}

// resultNode is a persistent list of result values, newest last. States
// share their prefix, so appending never copies and never aliases.
type resultNode struct {
	value Value
	prev  *resultNode
	n     int
}

func (r *resultNode) len() int {
	if r == nil {
		return 0
	}
	return r.n
}

func (r *resultNode) push(v Value) *resultNode {
	return &resultNode{value: v, prev: r, n: r.len() + 1}
}

func (r *resultNode) slice() []Value {
	if r == nil {
		return nil
	}
	out := make([]Value, r.n)
	for node := r; node != nil; node = node.prev {
		out[node.n-1] = node.value
	}
	return out
}

// NewState returns the initial state for input: position 0, empty result.
func NewState(input string) State {
	return State{input: input}
}

// NewStateAt returns a state for input positioned at offset pos. An offset
// outside the input gives a state failed with OutOfBounds.
func NewStateAt(input string, pos int) State {
	s := NewState(input)
	if pos < 0 || pos > len(input) {
		return s.Fail(OutOfBounds, fmt.Sprintf("offset %d outside input of length %d", pos, len(input)))
	}
	s.pos = pos
	return s
}

func (s State) Input() string { return s.input }
func (s State) Position() int { return s.pos }

// Result returns a copy of the accumulated result.
func (s State) Result() []Value { return s.result.slice() }

// ResultLen returns the number of values in the result.
func (s State) ResultLen() int { return s.result.len() }

// Failed reports whether the state carries a failure.
func (s State) Failed() bool { return s.diagnostic != nil }

// Diagnostic returns the failure diagnostic, or nil if the state succeeded.
func (s State) Diagnostic() *Diagnostic { return s.diagnostic }

// Err returns the diagnostic as an error, or nil.
func (s State) Err() error {
	if s.diagnostic == nil {
		return nil
	}
	return s.diagnostic
}

// AtEnd reports whether the cursor sits at the end of the input.
func (s State) AtEnd() bool { return s.pos == len(s.input) }

// Rest returns the unconsumed input.
func (s State) Rest() string { return s.input[s.pos:] }

// Peek returns the rune at the cursor. ok is false at end of input.
func (s State) Peek() (r rune, size int, ok bool) {
	if s.pos >= len(s.input) {
		return 0, 0, false
	}
	r, size = utf8.DecodeRuneInString(s.input[s.pos:])
	return r, size, true
}

// Shift advances the cursor by n bytes.
func (s State) Shift(n int) State {
	if s.Failed() {
		return s
	}
	if n <= 0 {
		return s.Fail(OutOfBounds, fmt.Sprintf("shift by %d: must be positive", n))
	}
	if s.pos+n > len(s.input) {
		return s.Fail(OutOfBounds, fmt.Sprintf("shift by %d past end of input (offset %d, length %d)", n, s.pos, len(s.input)))
	}
	s.pos += n
	return s
}

// Append adds v to the result.
func (s State) Append(v Value) State {
	if s.Failed() {
		return s
	}
	s.result = s.result.push(v)
	return s
}

// MatchAndAdvance appends text and advances by n. A zero n appends without
// moving, which is how zero-width pattern matches are recorded.
func (s State) MatchAndAdvance(text Value, n int) State {
	if n == 0 {
		return s.Append(text)
	}
	return s.Append(text).Shift(n)
}

// Fail returns a failed copy of s. Position and result are kept so the
// failure point can be inspected.
func (s State) Fail(kind ErrorKind, message string) State {
	return s.failWith(&Diagnostic{Kind: kind, Message: message, Offset: s.pos})
}

func (s State) failWith(d *Diagnostic) State {
	s.diagnostic = d
	return s
}

// Recover clears a failure, leaving position and result as they are.
func (s State) Recover() State {
	s.diagnostic = nil
	return s
}

// WithResult replaces the accumulated result.
func (s State) WithResult(result []Value) State {
	s.result = nil
	return s.extend(result)
}

// extend pushes values onto the result.
func (s State) extend(values []Value) State {
	for _, v := range values {
		s.result = s.result.push(v)
	}
	return s
}

// Map replaces the result with f(result). No-op on failure. A panic in f
// becomes a failed state.
func (s State) Map(f func([]Value) []Value) State {
	if s.Failed() {
		return s
	}
	out, err := mapValues(f, s.Result())
	if err != nil {
		return s.Fail(OutOfBounds, err.Error())
	}
	return s.WithResult(out)
}

// mapValues calls f on vs and reports a panic in f as an error.
func mapValues(f func([]Value) []Value, vs []Value) (out []Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("map: %v", r)
		}
	}()
	return f(vs), nil
}

func (s State) String() string {
	if s.Failed() {
		return fmt.Sprintf("State(pos=%d, error=%s)", s.pos, s.diagnostic)
	}
	return fmt.Sprintf("State(pos=%d, result=%s)", s.pos, FormatValues(s.Result()))
}
