package grammar

import (
	"errors"
	"testing"

	c "github.com/dhamidi/lippy/combinator"
)

func single(t *testing.T, st c.State) c.Token {
	t.Helper()
	if st.Failed() {
		t.Fatalf("unexpected failure: %v", st.Err())
	}
	toks := c.Tokens(st.Result())
	if len(toks) != 1 {
		t.Fatalf("Result() = %v, want one token", st.Result())
	}
	return toks[0]
}

func TestLiterals(t *testing.T) {
	g := Standard()
	tests := []struct {
		input string
		kind  Kind
		text  string
	}{
		{"X", KindIdentifier, "X"},
		{"x_123_abc", KindIdentifier, "x_123_abc"},
		{"123", KindNumber, "123"},
		{"123.456", KindNumber, "123.456"},
		{`"hello"`, KindString, `"hello"`},
		{`'hi there'`, KindString, `'hi there'`},
		{"true", KindBoolean, "true"},
		{"false", KindBoolean, "false"},
		{"trueish", KindIdentifier, "trueish"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			st := c.ParseText(tt.input, g.Literal, c.EOF)
			tok := single(t, st)
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Text() != tt.text {
				t.Errorf("Text() = %q, want %q", tok.Text(), tt.text)
			}
		})
	}
}

func TestNumberNestsInnerKind(t *testing.T) {
	tok := single(t, c.ParseText("1.5", Standard().Number))
	inner := c.Tokens(tok.Value)
	if len(inner) != 1 || inner[0].Kind != KindFloat {
		t.Errorf("Value = %v, want one FLOAT token", tok.Value)
	}
}

func TestOperatorsLongestFirst(t *testing.T) {
	g := Standard()
	tests := []struct {
		input string
		kind  Kind
	}{
		{"+", KindPlus},
		{"+=", KindPlusEquals},
		{"**", KindExponent},
		{"**=", KindExponentEquals},
		{">>=", KindShiftRightEquals},
		{"<=", KindLessThanEquals},
		{"<<", KindShiftLeft},
		{"->", KindArrow},
		{"!=", KindNotEquals},
		{"==", KindEquals},
		{"=", KindAssign},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			st := c.ParseText(tt.input, g.Operator, c.EOF)
			tok := single(t, st)
			if tok.Kind != KindOperator {
				t.Fatalf("Kind = %v, want OPERATOR", tok.Kind)
			}
			inner := c.Tokens(tok.Value)
			if len(inner) != 1 || inner[0].Kind != tt.kind {
				t.Errorf("inner = %v, want %v", tok.Value, tt.kind)
			}
		})
	}
}

func TestKeywords(t *testing.T) {
	g := Standard()
	for _, e := range Keywords {
		t.Run(e.Literal, func(t *testing.T) {
			tok := single(t, c.ParseText(e.Literal, g.Keyword))
			if tok.Kind != e.Kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, e.Kind)
			}
			if st := c.ParseText(e.Literal, g.Identifier); !st.Failed() {
				t.Errorf("keyword %q parsed as identifier", e.Literal)
			}
		})
	}

	if st := c.ParseText("iffy", g.Keyword); !st.Failed() {
		t.Error("keyword matched inside identifier iffy")
	}
	if st := c.ParseText("iffy", g.Identifier, c.EOF); st.Failed() {
		t.Errorf("iffy: %v", st.Err())
	}
}

func TestLiteralTableMatchesEntries(t *testing.T) {
	g := Standard()
	for _, table := range []struct {
		entries []Entry
		parsers map[Kind]*c.Parser
	}{
		{Operators, g.Operators},
		{Brackets, g.Brackets},
	} {
		for _, e := range table.entries {
			p, ok := table.parsers[e.Kind]
			if !ok {
				t.Errorf("no parser for %v", e.Kind)
				continue
			}
			tok := single(t, c.ParseText(e.Literal, p, c.EOF))
			if tok.Kind != e.Kind || tok.Text() != e.Literal {
				t.Errorf("%q = %v, want %v", e.Literal, tok, e.Kind)
			}
		}
	}
}

func TestExpressions(t *testing.T) {
	g := Standard()
	tests := []string{
		"1",
		"1 + 2",
		"a*b - c / 2",
		"-x",
		"!done",
		"(1 + 2) * 3",
		"((a))",
		"f == 3.5",
		"[1, 2, 3]",
		"[]",
		"(1, 2)",
		"()",
		"{1, 2}",
		"{a: 1, 'b': [2]}",
		"{}",
		"x << 2 >= y",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			st := c.ParseText(input, g.Expr, c.EOF)
			tok := single(t, st)
			if tok.Kind != KindExpr {
				t.Errorf("Kind = %v, want EXPR", tok.Kind)
			}
		})
	}
}

func TestContainerKinds(t *testing.T) {
	g := Standard()
	tests := []struct {
		input string
		kind  Kind
	}{
		{"[1]", KindList},
		{"(1, 2)", KindTuple},
		{"{1}", KindSet},
		{"{a: 1}", KindDict},
		{"{}", KindDict},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := single(t, c.ParseText(tt.input, g.Container, c.EOF))
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
		})
	}
}

func TestAssignment(t *testing.T) {
	g := Standard()
	tok := single(t, c.ParseText("x = 123;", g.Assignment, c.EOF))
	if tok.Kind != KindAssignment {
		t.Fatalf("Kind = %v, want ASSIGNMENT", tok.Kind)
	}
	parts := c.Tokens(tok.Value)
	if len(parts) != 3 {
		t.Fatalf("parts = %v, want identifier, operator, expression", tok.Value)
	}
	wantKinds := []Kind{KindIdentifier, KindAssign, KindExpr}
	for i, k := range wantKinds {
		if parts[i].Kind != k {
			t.Errorf("parts[%d].Kind = %v, want %v", i, parts[i].Kind, k)
		}
	}
	if parts[2].Text() != "123" {
		t.Errorf("value = %q, want 123", parts[2].Text())
	}

	if st := c.ParseText("x += y * 2;", g.Assignment, c.EOF); st.Failed() {
		t.Errorf("compound assignment: %v", st.Err())
	}
	if st := c.ParseText("x == 1;", g.Assignment); !st.Failed() {
		t.Error("comparison parsed as assignment")
	}
}

func TestProgram(t *testing.T) {
	src := `// settings
x = 1;
y = [x, 2.5, "three"];
/* block
   comment */
z = (x + 1) * -y;
x == z;
`
	st := Parse(src)
	tok := single(t, st)
	if tok.Kind != KindProgram {
		t.Fatalf("Kind = %v, want PROGRAM", tok.Kind)
	}
	var kinds []Kind
	for _, s := range c.Tokens(tok.Value) {
		kinds = append(kinds, s.Kind)
	}
	want := []Kind{KindComment, KindAssignment, KindAssignment, KindComment, KindAssignment, KindStatement}
	if len(kinds) != len(want) {
		t.Fatalf("statements = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("statement %d = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestProgramReportsFailingStatement(t *testing.T) {
	src := "x = 1;\ny = ;\n"
	st := Parse(src)
	if !st.Failed() {
		t.Fatal("Failed() = false, want true")
	}
	d := st.Diagnostic()
	if d.Offset != 7 {
		t.Errorf("Offset = %d, want 7 (start of the second statement)", d.Offset)
	}
	inner := d.Innermost()
	line, col := inner.LineColumn(src)
	if line != 2 || col != 5 {
		t.Errorf("innermost at %d:%d, want 2:5", line, col)
	}
	if !errors.Is(st.Err(), c.ErrPatternMismatch) {
		t.Errorf("Err() = %v, want PatternMismatch", st.Err())
	}
}

func TestEmptyProgram(t *testing.T) {
	tok := single(t, Parse("  \n "))
	if len(tok.Value) != 0 {
		t.Errorf("Value = %v, want empty", tok.Value)
	}
}

func TestRule(t *testing.T) {
	g := Standard()
	p, ok := g.Rule("Expr")
	if !ok {
		t.Fatal("Rule(Expr) not found")
	}
	if st := c.ParseText("1 + 2", p, c.EOF); st.Failed() {
		t.Errorf("Expr: %v", st.Err())
	}
	if _, ok := g.Rule("Nope"); ok {
		t.Error("Rule(Nope) found")
	}
}
