package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/lippy/combinator"
)

type JSONEncoder struct {
	w     io.Writer
	state combinator.State
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(st combinator.State) error {
	e.state = st
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(buildDocument(e.state), "", "  ")
}
