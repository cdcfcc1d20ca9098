package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/lippy/combinator"
)

// TextEncoder writes the result as KIND(child child ...) on one line, or
// the failure as line:column: message followed by its causes.
type TextEncoder struct {
	w     io.Writer
	state combinator.State
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(st combinator.State) error {
	e.state = st
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	st := e.state
	if d := st.Diagnostic(); d != nil {
		indent := ""
		for ; d != nil; d = d.Cause {
			line, col := d.LineColumn(st.Input())
			fmt.Fprintf(&sb, "%s%d:%d: %s: %s\n", indent, line, col, d.Kind, d.Message)
			indent += "\t"
		}
		return []byte(sb.String()), nil
	}
	sb.WriteString(combinator.FormatValues(st.Result()))
	sb.WriteByte('\n')
	return []byte(sb.String()), nil
}
