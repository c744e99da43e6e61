package format

import (
	"bytes"
	"io"

	"github.com/m6r-ai/m6rclib/metaphor"
)

// indentStep is one block level of output indentation. It matches the
// unit the lexer expects, so rendered block content parses back at the
// same depth.
const indentStep = "    "

// TextEncoder renders an AST as Metaphor prompt text: one line per Text
// node at its block's depth, block nodes as a keyword line with their
// children one step deeper, Root children at depth zero. This is the
// assembled document handed to downstream consumers.
type TextEncoder struct {
	w    io.Writer
	node *metaphor.Node
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(node *metaphor.Node) error {
	e.node = node
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var b bytes.Buffer
	writeNode(&b, e.node, 0)
	return b.Bytes(), nil
}

func writeNode(b *bytes.Buffer, node *metaphor.Node, depth int) {
	switch node.Kind {
	case metaphor.KindRoot:
		for _, child := range node.Children() {
			writeNode(b, child, depth)
		}

	case metaphor.KindText:
		// Blank lines carry no indentation.
		if node.Value != "" {
			writeIndent(b, depth)
			b.WriteString(node.Value)
		}
		b.WriteByte('\n')

	default:
		writeIndent(b, depth)
		b.WriteString(keywordFor(node.Kind))
		if node.Value != "" {
			b.WriteByte(' ')
			b.WriteString(node.Value)
		}
		b.WriteByte('\n')
		for _, child := range node.Children() {
			writeNode(b, child, depth+1)
		}
	}
}

func writeIndent(b *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(indentStep)
	}
}

func keywordFor(kind metaphor.NodeKind) string {
	switch kind {
	case metaphor.KindRole:
		return "Role:"
	case metaphor.KindContext:
		return "Context:"
	default:
		return "Action:"
	}
}
