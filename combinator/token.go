package combinator

import (
	"fmt"
	"reflect"
	"strings"
)

// Kind tags a Token. Grammars declare their vocabulary as Kind constants.
type Kind string

// Token is a typed wrapper around a captured result.
type Token struct {
	Kind  Kind
	Value []Value
}

// NewToken returns a token of kind wrapping values.
func NewToken(kind Kind, values ...Value) Token {
	return Token{Kind: kind, Value: values}
}

// Text concatenates all strings captured below the token.
func (t Token) Text() string {
	var sb strings.Builder
	writeText(&sb, t.Value)
	return sb.String()
}

// String renders the token as KIND(child child ...).
func (t Token) String() string {
	return fmt.Sprintf("%s(%s)", t.Kind, FormatValues(t.Value))
}

// Equal reports deep equality of kind and captured values.
func (t Token) Equal(other Token) bool {
	return t.Kind == other.Kind && valuesEqual(t.Value, other.Value)
}

// Text concatenates all strings in values, descending into tokens and
// nested results.
func Text(values []Value) string {
	var sb strings.Builder
	writeText(&sb, values)
	return sb.String()
}

func writeText(sb *strings.Builder, values []Value) {
	for _, v := range values {
		switch v := v.(type) {
		case string:
			sb.WriteString(v)
		case Token:
			writeText(sb, v.Value)
		case []Value:
			writeText(sb, v)
		}
	}
}

// FormatValues renders values separated by spaces.
func FormatValues(values []Value) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		switch v := v.(type) {
		case string:
			parts = append(parts, v)
		case []Value:
			parts = append(parts, "["+FormatValues(v)+"]")
		default:
			parts = append(parts, fmt.Sprint(v))
		}
	}
	return strings.Join(parts, " ")
}

// Tokens returns the Token elements of values, skipping everything else.
func Tokens(values []Value) []Token {
	var out []Token
	for _, v := range values {
		if tok, ok := v.(Token); ok {
			out = append(out, tok)
		}
	}
	return out
}

func valuesEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !valueEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func valueEqual(a, b Value) bool {
	switch a := a.(type) {
	case string:
		bs, ok := b.(string)
		return ok && a == bs
	case Token:
		bt, ok := b.(Token)
		return ok && a.Equal(bt)
	case []Value:
		bv, ok := b.([]Value)
		return ok && valuesEqual(a, bv)
	}
	return reflect.DeepEqual(a, b)
}

// ValuesEqual reports deep equality of two results.
func ValuesEqual(a, b []Value) bool { return valuesEqual(a, b) }
