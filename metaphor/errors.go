package metaphor

import "fmt"

// SyntaxError describes one problem found while parsing. The parser
// accumulates these instead of stopping at the first; the positions
// are 1-based and SourceLine holds the offending raw input line.
type SyntaxError struct {
	Message    string
	Filename   string
	Line       int
	Column     int
	SourceLine string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: file: %s, line %d, column %d", e.Message, e.Filename, e.Line, e.Column)
}

// ParserError is the error returned by Parse and ParseFile when a
// document does not parse cleanly. It carries every syntax error
// found, in the order they were encountered.
type ParserError struct {
	Errors []*SyntaxError
}

func (e *ParserError) Error() string {
	if len(e.Errors) == 1 {
		return "parser error: 1 syntax error"
	}
	return fmt.Sprintf("parser error: %d syntax errors", len(e.Errors))
}

// FileAlreadyUsedError reports an Include of a file that has already
// been consumed during this parse. Repeated includes are rejected so
// that include cycles terminate.
type FileAlreadyUsedError struct {
	Filename string
}

func (e *FileAlreadyUsedError) Error() string {
	return fmt.Sprintf("The file '%s' has already been used", e.Filename)
}
