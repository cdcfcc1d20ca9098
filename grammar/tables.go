package grammar

import "github.com/dhamidi/lippy/combinator"

type Kind = combinator.Kind

// Literals
const (
	KindIdentifier Kind = "IDENTIFIER"
	KindFloat      Kind = "FLOAT"
	KindInteger    Kind = "INTEGER"
	KindNumber     Kind = "NUMBER"
	KindString     Kind = "STRING"
	KindBoolean    Kind = "BOOLEAN"
)

// Brackets
const (
	KindLParen   Kind = "LPAREN"
	KindRParen   Kind = "RPAREN"
	KindLBracket Kind = "LBRACKET"
	KindRBracket Kind = "RBRACKET"
	KindLBrace   Kind = "LBRACE"
	KindRBrace   Kind = "RBRACE"
)

// Operators
const (
	KindPlus              Kind = "PLUS"
	KindMinus             Kind = "MINUS"
	KindMultiply          Kind = "MULTIPLY"
	KindDivide            Kind = "DIVIDE"
	KindModulo            Kind = "MODULO"
	KindExponent          Kind = "EXPONENT"
	KindEquals            Kind = "EQUALS"
	KindNotEquals         Kind = "NOT_EQUALS"
	KindLessThan          Kind = "LESS_THAN"
	KindGreaterThan       Kind = "GREATER_THAN"
	KindLessThanEquals    Kind = "LESS_THAN_EQUALS"
	KindGreaterThanEquals Kind = "GREATER_THAN_EQUALS"
	KindAnd               Kind = "AND"
	KindOr                Kind = "OR"
	KindNot               Kind = "NOT"
	KindDot               Kind = "DOT"
	KindComma             Kind = "COMMA"
	KindSemicolon         Kind = "SEMICOLON"
	KindColon             Kind = "COLON"
	KindArrow             Kind = "ARROW"
	KindAt                Kind = "AT"
	KindHash              Kind = "HASH"
	KindDollar            Kind = "DOLLAR"
	KindTilde             Kind = "TILDE"
	KindCaret             Kind = "CARET"
	KindBacktick          Kind = "BACKTICK"
	KindQuestionMark      Kind = "QUESTION_MARK"
	KindBackslash         Kind = "BACKSLASH"
	KindAssign            Kind = "ASSIGN"
	KindPlusEquals        Kind = "PLUS_EQUALS"
	KindMinusEquals       Kind = "MINUS_EQUALS"
	KindMultiplyEquals    Kind = "MULTIPLY_EQUALS"
	KindDivideEquals      Kind = "DIVIDE_EQUALS"
	KindModuloEquals      Kind = "MODULO_EQUALS"
	KindExponentEquals    Kind = "EXPONENT_EQUALS"
	KindAndEquals         Kind = "AND_EQUALS"
	KindOrEquals          Kind = "OR_EQUALS"
	KindXorEquals         Kind = "XOR_EQUALS"
	KindShiftLeft         Kind = "SHIFT_LEFT"
	KindShiftRight        Kind = "SHIFT_RIGHT"
	KindShiftLeftEquals   Kind = "SHIFT_LEFT_EQUALS"
	KindShiftRightEquals  Kind = "SHIFT_RIGHT_EQUALS"
)

// Keywords
const (
	KindIf       Kind = "IF"
	KindElse     Kind = "ELSE"
	KindFor      Kind = "FOR"
	KindWhile    Kind = "WHILE"
	KindDo       Kind = "DO"
	KindIn       Kind = "IN"
	KindReturn   Kind = "RETURN"
	KindBreak    Kind = "BREAK"
	KindContinue Kind = "CONTINUE"
)

// Trivia and productions
const (
	KindLineComment  Kind = "LINE_COMMENT"
	KindBlockComment Kind = "BLOCK_COMMENT"
	KindComment      Kind = "COMMENT"
	KindOperator     Kind = "OPERATOR"
	KindUnary        Kind = "UNARY"
	KindExpr         Kind = "EXPR"
	KindList         Kind = "LIST"
	KindTuple        Kind = "TUPLE"
	KindSet          Kind = "SET"
	KindDict         Kind = "DICT"
	KindPair         Kind = "PAIR"
	KindAssignment   Kind = "ASSIGNMENT"
	KindStatement    Kind = "STATEMENT"
	KindProgram      Kind = "PROGRAM"
)

// Entry maps a token kind to the literal text it matches.
type Entry struct {
	Kind    Kind
	Literal string
}

var Brackets = []Entry{
	{KindLParen, "("},
	{KindRParen, ")"},
	{KindLBracket, "["},
	{KindRBracket, "]"},
	{KindLBrace, "{"},
	{KindRBrace, "}"},
}

var Operators = []Entry{
	{KindPlus, "+"},
	{KindMinus, "-"},
	{KindMultiply, "*"},
	{KindDivide, "/"},
	{KindModulo, "%"},
	{KindExponent, "**"},
	{KindEquals, "=="},
	{KindNotEquals, "!="},
	{KindLessThan, "<"},
	{KindGreaterThan, ">"},
	{KindLessThanEquals, "<="},
	{KindGreaterThanEquals, ">="},
	{KindAnd, "&"},
	{KindOr, "|"},
	{KindNot, "!"},
	{KindDot, "."},
	{KindComma, ","},
	{KindSemicolon, ";"},
	{KindColon, ":"},
	{KindArrow, "->"},
	{KindAt, "@"},
	{KindHash, "#"},
	{KindDollar, "$"},
	{KindTilde, "~"},
	{KindCaret, "^"},
	{KindBacktick, "`"},
	{KindQuestionMark, "?"},
	{KindBackslash, `\`},
	{KindAssign, "="},
	{KindPlusEquals, "+="},
	{KindMinusEquals, "-="},
	{KindMultiplyEquals, "*="},
	{KindDivideEquals, "/="},
	{KindModuloEquals, "%="},
	{KindExponentEquals, "**="},
	{KindAndEquals, "&="},
	{KindOrEquals, "|="},
	{KindXorEquals, "^="},
	{KindShiftLeft, "<<"},
	{KindShiftRight, ">>"},
	{KindShiftLeftEquals, "<<="},
	{KindShiftRightEquals, ">>="},
}

// BinaryOperators and UnaryOperators select entries of Operators that may
// appear in expressions.
var (
	BinaryOperators = []Kind{
		KindPlus, KindMinus, KindMultiply, KindDivide, KindModulo, KindExponent,
		KindEquals, KindNotEquals, KindLessThan, KindGreaterThan,
		KindLessThanEquals, KindGreaterThanEquals, KindAnd, KindOr, KindCaret,
		KindShiftLeft, KindShiftRight,
	}
	UnaryOperators = []Kind{KindMinus, KindNot, KindTilde}
)

var Keywords = []Entry{
	{KindIf, "if"},
	{KindElse, "else"},
	{KindFor, "for"},
	{KindWhile, "while"},
	{KindDo, "do"},
	{KindIn, "in"},
	{KindReturn, "return"},
	{KindBreak, "break"},
	{KindContinue, "continue"},
}

// Literal returns the text of the operator, bracket or keyword kind.
func Literal(kind Kind) (string, bool) {
	for _, table := range [][]Entry{Operators, Brackets, Keywords} {
		for _, e := range table {
			if e.Kind == kind {
				return e.Literal, true
			}
		}
	}
	return "", false
}
