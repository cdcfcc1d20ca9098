package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/lippy/combinator"
)

// LineEncoder writes one tab-separated row per node of the result tree:
// depth, kind and text. Failures are written as a single error row.
type LineEncoder struct {
	w     io.Writer
	state combinator.State
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(st combinator.State) error {
	e.state = st
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	st := e.state

	if d := st.Diagnostic(); d != nil {
		inner := d.Innermost()
		line, col := inner.LineColumn(st.Input())
		fmt.Fprintf(&sb, "error\t%d:%d\t%s\t%s\n", line, col, inner.Kind, inner.Message)
		return []byte(sb.String()), nil
	}

	for _, n := range buildNodes(st.Result()) {
		e.writeNode(&sb, n, 0)
	}
	return []byte(sb.String()), nil
}

func (e *LineEncoder) writeNode(sb *strings.Builder, n *node, depth int) {
	kind := n.Kind
	if kind == "" {
		kind = "-"
	}
	fmt.Fprintf(sb, "%d\t%s\t%q\n", depth, kind, n.Text)
	for _, c := range n.Children {
		e.writeNode(sb, c, depth+1)
	}
}
