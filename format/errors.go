package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/m6r-ai/m6rclib/metaphor"
)

// errorRule separates the per-error blocks of a report.
var errorRule = strings.Repeat("-", 40)

// ErrorReportEncoder renders accumulated syntax errors, one block per
// error: the message with its position, then the offending source line
// with a caret under the column. Errors without a source line (for
// example resource failures at end of input) render the header only.
type ErrorReportEncoder struct {
	w    io.Writer
	errs []*metaphor.SyntaxError
}

func NewErrorReportEncoder(w io.Writer) *ErrorReportEncoder {
	return &ErrorReportEncoder{w: w}
}

func (e *ErrorReportEncoder) Encode(errs []*metaphor.SyntaxError) error {
	e.errs = errs
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ErrorReportEncoder) MarshalText() ([]byte, error) {
	var b bytes.Buffer
	for i, se := range e.errs {
		if i > 0 {
			fmt.Fprintln(&b, errorRule)
		}
		writeSyntaxError(&b, se)
	}
	return b.Bytes(), nil
}

func writeSyntaxError(b *bytes.Buffer, se *metaphor.SyntaxError) {
	fmt.Fprintf(b, "%s: file %s, line %d, column %d\n",
		se.Message, se.Filename, se.Line, se.Column)
	if se.SourceLine == "" {
		return
	}

	caretPad := se.Column - 1
	if caretPad < 0 {
		caretPad = 0
	}
	fmt.Fprintf(b, "%4d | %s\n", se.Line, se.SourceLine)
	fmt.Fprintf(b, "     | %s^\n", strings.Repeat(" ", caretPad))
}
