package combinator

import (
	"errors"
	"strings"
	"testing"
	"unicode"
)

var (
	digit      = Satisfy("digit", unicode.IsDigit)
	identifier = Regex(`[a-zA-Z_][a-zA-Z0-9_]*`)
)

func resultStrings(t *testing.T, s State) []string {
	t.Helper()
	var out []string
	for _, v := range s.Result() {
		str, ok := v.(string)
		if !ok {
			t.Fatalf("result element %v is %T, want string", v, v)
		}
		out = append(out, str)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSequence(t *testing.T) {
	p := Sequence(Word("a"), Word("b"), Word("c"))

	s := ParseText("abcd", p)
	if s.Failed() {
		t.Fatalf("unexpected failure: %v", s.Err())
	}
	if got := resultStrings(t, s); !equalStrings(got, []string{"a", "b", "c"}) {
		t.Errorf("Result() = %v, want [a b c]", got)
	}
	if s.Position() != 3 {
		t.Errorf("Position() = %d, want 3", s.Position())
	}
}

func TestSequenceDoesNotBacktrack(t *testing.T) {
	s := ParseText("ac", Sequence(Word("a"), Word("b")))
	if !s.Failed() {
		t.Fatal("Failed() = false, want true")
	}
	if s.Position() != 1 {
		t.Errorf("Position() = %d, want 1", s.Position())
	}
	if s.Diagnostic().Offset != 1 {
		t.Errorf("Offset = %d, want 1", s.Diagnostic().Offset)
	}
}

func TestChoice(t *testing.T) {
	p := Choice(Word("ab"), Word("a"))

	tests := []struct {
		input   string
		wantPos int
		wantErr bool
	}{
		{"abc", 2, false},
		{"ax", 1, false},
		{"xy", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := ParseText(tt.input, p)
			if s.Failed() != tt.wantErr {
				t.Fatalf("Failed() = %v, want %v", s.Failed(), tt.wantErr)
			}
			if s.Position() != tt.wantPos {
				t.Errorf("Position() = %d, want %d", s.Position(), tt.wantPos)
			}
		})
	}
}

func TestChoiceListsAllAlternatives(t *testing.T) {
	s := ParseText("z", Choice(Word("a"), Word("b"), identifier.Named("name")))
	if s.Failed() {
		t.Fatalf("unexpected failure: %v", s.Err())
	}

	s = ParseText("1", Choice(Word("a"), Word("b"), identifier.Named("name")))
	if !s.Failed() {
		t.Fatal("Failed() = false, want true")
	}
	d := s.Diagnostic()
	want := []string{`"a"`, `"b"`, "name"}
	if !equalStrings(d.Expected, want) {
		t.Errorf("Expected = %v, want %v", d.Expected, want)
	}
	for _, name := range want {
		if !strings.Contains(d.Message, name) {
			t.Errorf("Message %q does not mention %s", d.Message, name)
		}
	}
	if d.Kind != PatternMismatch {
		t.Errorf("Kind = %v, want PatternMismatch", d.Kind)
	}

	s = ParseText("", Choice(Word("a"), Word("b")))
	if s.Diagnostic().Kind != UnexpectedEndOfInput {
		t.Errorf("Kind at end = %v, want UnexpectedEndOfInput", s.Diagnostic().Kind)
	}
}

func TestChoiceKeepsFurthestCause(t *testing.T) {
	p := Choice(Sequence(Word("a"), Word("b")), Word("c"))
	s := ParseText("ax", p)
	if !s.Failed() {
		t.Fatal("Failed() = false, want true")
	}
	if s.Position() != 0 {
		t.Errorf("Position() = %d, want 0", s.Position())
	}
	cause := s.Diagnostic().Cause
	if cause == nil {
		t.Fatal("Cause = nil, want the failure at offset 1")
	}
	if cause.Offset != 1 {
		t.Errorf("Cause.Offset = %d, want 1", cause.Offset)
	}
}

func TestLongest(t *testing.T) {
	s := ParseText("abc", Longest(Word("a"), Word("ab")))
	if s.Position() != 2 {
		t.Errorf("Longest Position() = %d, want 2", s.Position())
	}
	s = ParseText("abc", Choice(Word("a"), Word("ab")))
	if s.Position() != 1 {
		t.Errorf("Choice Position() = %d, want 1", s.Position())
	}
	s = ParseText("x", Longest(Word("a"), Word("ab")))
	if !s.Failed() || s.Position() != 0 {
		t.Errorf("Longest on mismatch = %v, want failure at 0", s)
	}
}

func TestMany(t *testing.T) {
	s := ParseText("123abc", Many(digit))
	if s.Failed() {
		t.Fatalf("unexpected failure: %v", s.Err())
	}
	if s.Position() != 3 {
		t.Errorf("Position() = %d, want 3", s.Position())
	}
	if got := resultStrings(t, s); !equalStrings(got, []string{"1", "2", "3"}) {
		t.Errorf("Result() = %v, want [1 2 3]", got)
	}
}

func TestManyNoMatch(t *testing.T) {
	s := ParseText("abc", Many(digit))
	if s.Failed() {
		t.Fatalf("unexpected failure: %v", s.Err())
	}
	if s.Position() != 0 || len(s.Result()) != 0 {
		t.Errorf("state = %v, want untouched initial state", s)
	}
}

func TestManyStopsOnZeroWidthSuccess(t *testing.T) {
	s := ParseText("abc", Many(Optional(Word("x"))))
	if s.Failed() || s.Position() != 0 {
		t.Errorf("Many(Optional) = %v, want success at 0", s)
	}

	s = ParseText("aab", Many(Regex(`a*`)))
	if s.Failed() {
		t.Fatalf("unexpected failure: %v", s.Err())
	}
	if s.Position() != 2 {
		t.Errorf("Position() = %d, want 2", s.Position())
	}
}

func TestManyDiscardsFailedAttempt(t *testing.T) {
	pair := Sequence(Word("a"), Word("b"))
	s := ParseText("ababa", Many(pair))
	if s.Failed() {
		t.Fatalf("unexpected failure: %v", s.Err())
	}
	if s.Position() != 4 {
		t.Errorf("Position() = %d, want 4", s.Position())
	}
	if got := resultStrings(t, s); !equalStrings(got, []string{"a", "b", "a", "b"}) {
		t.Errorf("Result() = %v, want [a b a b]", got)
	}
}

func TestManyLongInput(t *testing.T) {
	input := strings.Repeat("7", 200000)
	s := ParseText(input, Many(digit))
	if !s.AtEnd() {
		t.Errorf("Position() = %d, want %d", s.Position(), len(input))
	}
}

func TestAtLeastOne(t *testing.T) {
	tests := []struct {
		input   string
		wantPos int
		wantErr bool
	}{
		{"abc", 0, true},
		{"1bc", 1, false},
		{"123", 3, false},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := ParseText(tt.input, AtLeastOne(digit))
			if s.Failed() != tt.wantErr {
				t.Fatalf("Failed() = %v, want %v", s.Failed(), tt.wantErr)
			}
			if s.Position() != tt.wantPos {
				t.Errorf("Position() = %d, want %d", s.Position(), tt.wantPos)
			}
		})
	}
}

func TestOptional(t *testing.T) {
	s := ParseText("ac", Sequence(Word("a"), Optional(Word("b"))))
	if s.Failed() {
		t.Fatalf("unexpected failure: %v", s.Err())
	}
	if s.Position() != 1 {
		t.Errorf("Position() = %d, want 1", s.Position())
	}
	if got := resultStrings(t, s); !equalStrings(got, []string{"a"}) {
		t.Errorf("Result() = %v, want [a]", got)
	}

	s = ParseText("abc", Optional(Sequence(Word("a"), Word("x"))))
	if s.Failed() || s.Position() != 0 || len(s.Result()) != 0 {
		t.Errorf("Optional after partial match = %v, want untouched initial state", s)
	}
}

func TestNot(t *testing.T) {
	s := ParseText("abc", Not(digit))
	if s.Failed() {
		t.Fatalf("unexpected failure: %v", s.Err())
	}
	if s.Position() != 0 {
		t.Errorf("Position() = %d, want 0", s.Position())
	}

	s = ParseText("1bc", Not(digit))
	if !s.Failed() {
		t.Fatal("Failed() = false, want true")
	}
	if s.Position() != 0 {
		t.Errorf("Position() = %d, want 0", s.Position())
	}
	if !errors.Is(s.Err(), ErrLookaheadViolation) {
		t.Errorf("Err() = %v, want LookaheadViolation", s.Err())
	}
}

func TestAnd(t *testing.T) {
	s := ParseText("1bc", And(digit))
	if s.Failed() {
		t.Fatalf("unexpected failure: %v", s.Err())
	}
	if s.Position() != 0 || len(s.Result()) != 0 {
		t.Errorf("And = %v, want no consumption", s)
	}

	s = ParseText("abc", And(digit))
	if !s.Failed() {
		t.Fatal("Failed() = false, want true")
	}
	if !errors.Is(s.Err(), ErrLookaheadViolation) {
		t.Errorf("Err() = %v, want LookaheadViolation", s.Err())
	}
	if !errors.Is(s.Err(), ErrPatternMismatch) {
		t.Errorf("Err() = %v, want PatternMismatch cause", s.Err())
	}
}

func TestKeywordBoundary(t *testing.T) {
	ident := Satisfy("identifier character", func(r rune) bool {
		return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
	})
	kwIf := Sequence(Word("if"), Not(ident))

	if s := ParseText("if (x)", kwIf); s.Failed() || s.Position() != 2 {
		t.Errorf("keyword on %q = %v, want match to 2", "if (x)", s)
	}
	if s := ParseText("iffy", kwIf); !s.Failed() {
		t.Errorf("keyword on %q succeeded, want failure", "iffy")
	}
}

func TestTokenize(t *testing.T) {
	s := ParseText("abc", Sequence(Word("abc"), Tokenize("W")))
	want := []Value{NewToken("W", "abc")}
	if !ValuesEqual(s.Result(), want) {
		t.Errorf("Result() = %v, want %v", s.Result(), want)
	}
	if s.Position() != 3 {
		t.Errorf("Position() = %d, want 3", s.Position())
	}

	s = ParseText("abc", Sequence(Word("abc"), Tokenize("A"), Tokenize("B")))
	want = []Value{NewToken("B", "abc")}
	if !ValuesEqual(s.Result(), want) {
		t.Errorf("twice Result() = %v, want %v", s.Result(), want)
	}

	s = ParseText("ab", Sequence(Word("a"), Word("b"), Tokenize("AB")))
	want = []Value{NewToken("AB", "a", "b")}
	if !ValuesEqual(s.Result(), want) {
		t.Errorf("multi Result() = %v, want %v", s.Result(), want)
	}
}

func TestTokenizeOnFailureIsNoop(t *testing.T) {
	s := ParseText("x", Sequence(Word("a"), Tokenize("A")))
	if !s.Failed() {
		t.Fatal("Failed() = false, want true")
	}
	if len(s.Result()) != 0 {
		t.Errorf("Result() = %v, want empty", s.Result())
	}
}

func TestWrap(t *testing.T) {
	p := Sequence(Word("a"), Wrap("G", Sequence(Word("b"), Word("c"))), Word("d"))
	s := ParseText("abcd", p)
	want := []Value{"a", NewToken("G", "b", "c"), "d"}
	if !ValuesEqual(s.Result(), want) {
		t.Errorf("Result() = %v, want %v", s.Result(), want)
	}

	s = ParseText("abx", p)
	if !s.Failed() {
		t.Fatal("Failed() = false, want true")
	}
	if s.Diagnostic().Offset != 2 {
		t.Errorf("Offset = %d, want 2", s.Diagnostic().Offset)
	}
}

func TestMapPanicFails(t *testing.T) {
	p := Sequence(Word("a"), Map(Word("b"), func([]Value) []Value {
		panic("boom")
	}))
	s := ParseText("ab", p)
	if !s.Failed() {
		t.Fatal("Failed() = false, want true")
	}
	if d := s.Diagnostic(); d.Kind != OutOfBounds || d.Offset != 1 {
		t.Errorf("Diagnostic() = %v, want OutOfBounds at 1", d)
	}
	if !errors.Is(s.Err(), ErrOutOfBounds) {
		t.Errorf("Err() = %v, want ErrOutOfBounds", s.Err())
	}
}

func TestSkip(t *testing.T) {
	s := ParseText("a b", Sequence(Word("a"), Skip(Word(" ")), Word("b")))
	if got := resultStrings(t, s); !equalStrings(got, []string{"a", "b"}) {
		t.Errorf("Result() = %v, want [a b]", got)
	}
}

func TestCombinatorsPassFailureThrough(t *testing.T) {
	failed := NewState("abc").Fail(PatternMismatch, "earlier")
	parsers := []*Parser{
		Sequence(Word("a")),
		Choice(Word("a")),
		Longest(Word("a")),
		Many(Word("a")),
		AtLeastOne(Word("a")),
		Optional(Word("a")),
		Not(Word("x")),
		And(Word("a")),
		Tokenize("T"),
		Wrap("T", Word("a")),
	}
	for _, p := range parsers {
		s := p.Parse(failed)
		if !s.Failed() || s.Diagnostic().Message != "earlier" {
			t.Errorf("%s on failed state = %v, want the earlier failure", p.Name(), s)
		}
	}
}

func TestAssignmentEndToEnd(t *testing.T) {
	assign := Sequence(identifier, Word("="), Word("123"), Word(";"))

	s := ParseText("x=123;", assign)
	if s.Failed() {
		t.Fatalf("unexpected failure: %v", s.Err())
	}
	if !s.AtEnd() {
		t.Errorf("Position() = %d, want end of input", s.Position())
	}
	if got := resultStrings(t, s); !equalStrings(got, []string{"x", "=", "123", ";"}) {
		t.Errorf("Result() = %v, want [x = 123 ;]", got)
	}

	s = ParseText("x=abc;", assign)
	if !s.Failed() {
		t.Fatal("Failed() = false, want true")
	}
	d := s.Diagnostic()
	if d.Offset != 2 {
		t.Errorf("Offset = %d, want 2", d.Offset)
	}
	if !equalStrings(d.Expected, []string{`"123"`}) {
		t.Errorf("Expected = %v, want [\"123\"]", d.Expected)
	}
	if !errors.Is(s.Err(), ErrPatternMismatch) {
		t.Errorf("Err() = %v, want PatternMismatch", s.Err())
	}
}

func TestRefRecursion(t *testing.T) {
	expr := Ref("expr")
	expr.Define(Choice(
		Regex(`[0-9]+`),
		Sequence(Word("("), expr, Word(")")),
	))

	s := ParseText("((42))", expr)
	if s.Failed() {
		t.Fatalf("unexpected failure: %v", s.Err())
	}
	if !s.AtEnd() {
		t.Errorf("Position() = %d, want end of input", s.Position())
	}
	if got := Text(s.Result()); got != "((42))" {
		t.Errorf("Text = %q, want %q", got, "((42))")
	}

	s = ParseText("((42)", expr)
	if !s.Failed() {
		t.Error("unbalanced input parsed")
	}
}

func TestRefUndefined(t *testing.T) {
	s := ParseText("x", Ref("later"))
	if !errors.Is(s.Err(), ErrUndefinedRule) {
		t.Errorf("Err() = %v, want UndefinedRule", s.Err())
	}
}

func TestRefDefineTwicePanics(t *testing.T) {
	r := Ref("r").Define(Word("a"))
	defer func() {
		if recover() == nil {
			t.Error("second Define did not panic")
		}
	}()
	r.Define(Word("b"))
}

func TestNamedSharesRef(t *testing.T) {
	r := Ref("r")
	alias := r.Named("alias")
	r.Define(Word("a"))
	if s := ParseText("a", alias); s.Failed() {
		t.Errorf("alias of defined Ref failed: %v", s.Err())
	}
	if alias.Name() != "alias" {
		t.Errorf("Name() = %q, want %q", alias.Name(), "alias")
	}
}

func TestFluent(t *testing.T) {
	p := Word("a").Then(Word("b").Or(Word("c"))).Then(Word("!").Optional())
	for _, input := range []string{"ab", "ac!", "ab!"} {
		if s := ParseText(input, p); s.Failed() || !s.AtEnd() {
			t.Errorf("%q = %v, want full match", input, s)
		}
	}
}

func TestManyTill(t *testing.T) {
	p := ManyTill(Sequence(digit, Optional(Word(","))), EOF)

	s := ParseText("1,2,3", p)
	if s.Failed() || !s.AtEnd() {
		t.Errorf("ManyTill = %v, want full match", s)
	}

	s = ParseText("1,x,3", p)
	if !s.Failed() {
		t.Fatal("Failed() = false, want true")
	}
	if s.Diagnostic().Offset != 2 {
		t.Errorf("Offset = %d, want 2", s.Diagnostic().Offset)
	}
	if got := s.Diagnostic().Expected; !equalStrings(got, []string{"digit"}) {
		t.Errorf("Expected = %v, want [digit]", got)
	}

	s = ParseText("", p)
	if s.Failed() {
		t.Errorf("ManyTill on empty input failed: %v", s.Err())
	}
}

func TestManyTillZeroWidthBody(t *testing.T) {
	s := ParseText("abc", ManyTill(Optional(digit), EOF))
	if !s.Failed() {
		t.Fatal("Failed() = false, want end's failure")
	}
	if s.Position() != 0 {
		t.Errorf("Position() = %d, want 0", s.Position())
	}
}

func TestDiagnosticInnermost(t *testing.T) {
	p := Choice(Sequence(Word("a"), Word("b"), Word("c")), Word("z"))
	s := ParseText("abx", p)
	inner := s.Diagnostic().Innermost()
	if inner.Offset != 2 {
		t.Errorf("Innermost().Offset = %d, want 2", inner.Offset)
	}
}
