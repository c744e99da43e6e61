package format

import (
	"encoding"

	"github.com/m6r-ai/m6rclib/metaphor"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(node *metaphor.Node) error
}
