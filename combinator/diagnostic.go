package combinator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	PatternMismatch ErrorKind = iota + 1
	UnexpectedEndOfInput
	OutOfBounds
	LookaheadViolation
	UndefinedRule
)

func (k ErrorKind) String() string {
	switch k {
	case PatternMismatch:
		return "PatternMismatch"
	case UnexpectedEndOfInput:
		return "UnexpectedEndOfInput"
	case OutOfBounds:
		return "OutOfBounds"
	case LookaheadViolation:
		return "LookaheadViolation"
	case UndefinedRule:
		return "UndefinedRule"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinel errors for use with errors.Is against a *Diagnostic.
var (
	ErrPatternMismatch      = errors.New("pattern mismatch")
	ErrUnexpectedEndOfInput = errors.New("unexpected end of input")
	ErrOutOfBounds          = errors.New("out of bounds")
	ErrLookaheadViolation   = errors.New("lookahead violation")
	ErrUndefinedRule        = errors.New("undefined rule")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case PatternMismatch:
		return ErrPatternMismatch
	case UnexpectedEndOfInput:
		return ErrUnexpectedEndOfInput
	case OutOfBounds:
		return ErrOutOfBounds
	case LookaheadViolation:
		return ErrLookaheadViolation
	case UndefinedRule:
		return ErrUndefinedRule
	}
	return nil
}

// Diagnostic describes why a parse failed and where.
type Diagnostic struct {
	Kind     ErrorKind
	Message  string
	Offset   int
	Expected []string    // names of what would have matched
	Cause    *Diagnostic // inner failure, for lookahead
}

func (d *Diagnostic) Error() string {
	msg := fmt.Sprintf("offset %d: %s", d.Offset, d.Message)
	if d.Cause != nil {
		msg += " (" + d.Cause.Error() + ")"
	}
	return msg
}

// Is matches the sentinel error for the diagnostic's kind.
func (d *Diagnostic) Is(target error) bool {
	s := d.Kind.sentinel()
	return s != nil && s == target
}

// Unwrap exposes the cause so errors.Is/As can walk nested lookahead failures.
func (d *Diagnostic) Unwrap() error {
	if d.Cause == nil {
		return nil
	}
	return d.Cause
}

// Innermost follows the cause chain to the most specific failure.
func (d *Diagnostic) Innermost() *Diagnostic {
	for d.Cause != nil {
		d = d.Cause
	}
	return d
}

// LineColumn converts the offset into 1-based line and column numbers of
// input. Columns count runes.
func (d *Diagnostic) LineColumn(input string) (line, column int) {
	return LineColumn(input, d.Offset)
}

// LineColumn converts a byte offset into 1-based line and column numbers.
func LineColumn(input string, offset int) (line, column int) {
	if offset > len(input) {
		offset = len(input)
	}
	line, column = 1, 1
	for _, r := range input[:offset] {
		if r == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}

func describeRune(s State) string {
	r, _, ok := s.Peek()
	if !ok {
		return "end of input"
	}
	return fmt.Sprintf("%q", r)
}

func expectedList(names []string) string {
	switch len(names) {
	case 0:
		return "nothing"
	case 1:
		return names[0]
	}
	return "one of " + strings.Join(names, ", ")
}
