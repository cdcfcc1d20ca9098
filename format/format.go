// Package format renders the final state of a parse.
package format

import (
	"encoding"
	"fmt"
	"io"
	"sort"

	"github.com/dhamidi/lippy/combinator"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(st combinator.State) error
}

var encoders = map[string]func(io.Writer) Encoder{
	"text": func(w io.Writer) Encoder { return NewTextEncoder(w) },
	"line": func(w io.Writer) Encoder { return NewLineEncoder(w) },
	"json": func(w io.Writer) Encoder { return NewJSONEncoder(w) },
	"yaml": func(w io.Writer) Encoder { return NewYAMLEncoder(w) },
}

// New returns the encoder registered as name.
func New(name string, w io.Writer) (Encoder, error) {
	mk, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (want one of %v)", name, Names())
	}
	return mk(w), nil
}

// Names lists the registered formats.
func Names() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// document is the format-neutral view of a final state shared by the
// structured encoders.
type document struct {
	OK       bool      `json:"ok" yaml:"ok"`
	Position int       `json:"position" yaml:"position"`
	Result   []*node   `json:"result,omitempty" yaml:"result,omitempty"`
	Error    *errorDoc `json:"error,omitempty" yaml:"error,omitempty"`
}

type node struct {
	Kind     string  `json:"kind,omitempty" yaml:"kind,omitempty"`
	Text     string  `json:"text,omitempty" yaml:"text,omitempty"`
	Children []*node `json:"children,omitempty" yaml:"children,omitempty"`
}

type errorDoc struct {
	Kind     string    `json:"kind" yaml:"kind"`
	Message  string    `json:"message" yaml:"message"`
	Offset   int       `json:"offset" yaml:"offset"`
	Line     int       `json:"line" yaml:"line"`
	Column   int       `json:"column" yaml:"column"`
	Expected []string  `json:"expected,omitempty" yaml:"expected,omitempty"`
	Cause    *errorDoc `json:"cause,omitempty" yaml:"cause,omitempty"`
}

func buildDocument(st combinator.State) document {
	doc := document{
		OK:       !st.Failed(),
		Position: st.Position(),
	}
	if d := st.Diagnostic(); d != nil {
		doc.Error = buildError(d, st.Input())
		return doc
	}
	doc.Result = buildNodes(st.Result())
	return doc
}

func buildError(d *combinator.Diagnostic, input string) *errorDoc {
	if d == nil {
		return nil
	}
	line, col := d.LineColumn(input)
	return &errorDoc{
		Kind:     d.Kind.String(),
		Message:  d.Message,
		Offset:   d.Offset,
		Line:     line,
		Column:   col,
		Expected: d.Expected,
		Cause:    buildError(d.Cause, input),
	}
}

func buildNodes(values []combinator.Value) []*node {
	nodes := make([]*node, 0, len(values))
	for _, v := range values {
		nodes = append(nodes, buildNode(v))
	}
	return nodes
}

// buildNode turns a value into a node. A token holding a single string is
// collapsed into one node carrying both kind and text.
func buildNode(v combinator.Value) *node {
	switch v := v.(type) {
	case string:
		return &node{Text: v}
	case combinator.Token:
		if len(v.Value) == 1 {
			if s, ok := v.Value[0].(string); ok {
				return &node{Kind: string(v.Kind), Text: s}
			}
		}
		return &node{Kind: string(v.Kind), Children: buildNodes(v.Value)}
	case []combinator.Value:
		return &node{Children: buildNodes(v)}
	default:
		return &node{Text: fmt.Sprint(v)}
	}
}
