package format

import (
	"encoding/json"
	"io"

	"github.com/m6r-ai/m6rclib/metaphor"
)

// JSONEncoder emits the AST as an indented tree of
// {kind, value, children} objects.
type JSONEncoder struct {
	w    io.Writer
	node *metaphor.Node
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(node *metaphor.Node) error {
	e.node = node
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.node, "", "  ")
}
