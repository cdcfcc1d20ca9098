// Package combinator provides parser combinators over an immutable cursor.
//
// # Overview
//
// A State is a snapshot of a parse: the input, a byte offset into it, the
// result accumulated so far and, if the parse failed, a Diagnostic. A
// Parser is a named function from State to State. Terminals such as Word
// and Regex inspect the input at the cursor; combinators such as Sequence
// and Choice build larger parsers out of smaller ones.
//
//	assign := combinator.Sequence(
//	    combinator.Terminal(`[a-zA-Z_][a-zA-Z0-9_]*`, "IDENTIFIER"),
//	    combinator.Word("="),
//	    combinator.Terminal(`[0-9]+`, "INTEGER"),
//	    combinator.Word(";"),
//	)
//	st := combinator.ParseText("x=123;", assign)
//	if err := st.Err(); err != nil {
//	    // err is a *Diagnostic with the offset of the failure
//	}
//
// # Failure
//
// Failure is a value carried on the State, never a panic. Once a State has
// failed, terminals and combinators return it unchanged. Sequence and
// AtLeastOne propagate failures; Choice, Many, Optional and Not recover
// from them by returning to the state they started from. Parsers never
// partially consume: a failed terminal leaves the cursor where it was.
//
// # Results
//
// Matched text is appended to the result as strings. Terminal appends a
// Token instead. Tokenize collapses the whole result into one Token and
// Wrap collapses only what its inner parser contributed, which is how
// nested results are built.
//
// # Recursion
//
// Grammars that refer to themselves use Ref:
//
//	expr := combinator.Ref("expr")
//	atom := combinator.Choice(number, combinator.Sequence(lparen, expr, rparen))
//	expr.Define(combinator.Sequence(atom, combinator.Many(combinator.Sequence(plus, atom))))
//
// A Ref applied before Define fails with UndefinedRule. Left-recursive
// definitions do not terminate.
package combinator
