package lsp

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dhamidi/lippy/combinator"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Diagnostics converts the failure of st, if any, into a single LSP
// diagnostic spanning the rune at the innermost failure. A successful state
// yields an empty, non-nil slice so that earlier diagnostics are cleared.
func Diagnostics(st combinator.State) []protocol.Diagnostic {
	d := st.Diagnostic()
	if d == nil {
		return []protocol.Diagnostic{}
	}

	inner := d.Innermost()
	input := st.Input()
	start := inner.Offset
	if start > len(input) {
		start = len(input)
	}
	end := start
	if start < len(input) {
		_, size := utf8.DecodeRuneInString(input[start:])
		end += size
	}

	severity := protocol.DiagnosticSeverityError
	source := lsName
	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: position(input, start),
			End:   position(input, end),
		},
		Severity: &severity,
		Source:   &source,
		Message:  inner.Kind.String() + ": " + inner.Message,
	}}
}

// position converts a byte offset into a zero-based line and UTF-16
// character offset.
func position(input string, offset int) protocol.Position {
	before := input[:offset]
	line := strings.Count(before, "\n")
	lineStart := strings.LastIndexByte(before, '\n') + 1

	var char int
	for _, r := range before[lineStart:] {
		if n := utf16.RuneLen(r); n > 0 {
			char += n
		} else {
			char++
		}
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(char),
	}
}
