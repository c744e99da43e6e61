package metaphor

import "strings"

// indentSpaces is the indentation unit. Block depth changes must be a
// multiple of this many spaces.
const indentSpaces = 4

// Lexer splits a Metaphor document into tokens. The whole input is
// tokenized up front; NextToken hands tokens out one at a time and
// keeps returning END_OF_FILE once the input is exhausted.
type Lexer struct {
	file   string
	tokens []Token
	pos    int

	// tokenizer state
	indentStack []int
	inFence     bool
	line        int
}

func NewLexer(input, file string) *Lexer {
	l := &Lexer{
		file:        file,
		indentStack: []int{1},
	}
	l.tokenize(input)
	return l
}

func (l *Lexer) NextToken() Token {
	if l.pos >= len(l.tokens) {
		return Token{
			Kind: TokenEOF,
			Pos:  Position{File: l.file, Line: l.line, Column: 1},
		}
	}
	tok := l.tokens[l.pos]
	l.pos++
	return tok
}

func (l *Lexer) tokenize(input string) {
	for i, line := range strings.Split(input, "\n") {
		l.line = i + 1
		line = strings.TrimSuffix(line, "\r")
		if l.inFence {
			l.scanFenceLine(line)
			continue
		}
		l.scanLine(line)
	}

	// Close any open blocks so INDENT and OUTDENT counts balance.
	for len(l.indentStack) > 1 {
		l.indentStack = l.indentStack[:len(l.indentStack)-1]
		l.emit(TokenOutdent, outdentMarker, "", 1)
	}
	l.emit(TokenEOF, "", "", 1)
}

func (l *Lexer) scanLine(line string) {
	indent, tabColumn := measureIndent(line)
	if tabColumn > 0 {
		l.emit(TokenTab, tabMarker, line, tabColumn)
		return
	}

	content := line[indent:]
	if content == "" {
		return
	}
	if content[0] == '#' {
		return
	}

	column := indent + 1
	l.scanIndentation(column, line)

	if strings.HasPrefix(content, "```") {
		l.inFence = true
		l.emit(TokenText, l.stripIndent(line), line, column)
		return
	}

	word := firstWord(content)
	if kind := LookupKeyword(word); kind != TokenText {
		l.scanKeywordLine(kind, word, content, line, column)
		return
	}

	l.emit(TokenText, l.stripIndent(line), line, column)
}

// scanFenceLine emits a fence-interior line verbatim, with only the
// fence's base indentation removed. A closing fence line is itself
// emitted before toggling fence mode off.
func (l *Lexer) scanFenceLine(line string) {
	text := l.stripIndent(line)
	l.emit(TokenText, text, line, l.indentStack[len(l.indentStack)-1])
	if strings.HasPrefix(text, "```") {
		l.inFence = false
	}
}

// scanIndentation compares a content line's column against the stack
// top and emits the structural tokens the change calls for. Invalid
// changes emit BAD_INDENT or BAD_OUTDENT and leave the stack alone, so
// a following correctly-indented line recovers cleanly.
func (l *Lexer) scanIndentation(column int, line string) {
	top := l.indentStack[len(l.indentStack)-1]
	switch {
	case column == top:
		return

	case column > top:
		if (column-top)%indentSpaces != 0 {
			l.emit(TokenBadIndent, badIndentMarker, line, column)
			return
		}
		l.indentStack = append(l.indentStack, column)
		l.emit(TokenIndent, indentMarker, line, column)

	default:
		if !l.hasIndentLevel(column) {
			l.emit(TokenBadOutdent, badOutdentMarker, line, column)
			return
		}
		for l.indentStack[len(l.indentStack)-1] > column {
			l.indentStack = l.indentStack[:len(l.indentStack)-1]
			l.emit(TokenOutdent, outdentMarker, line, column)
		}
	}
}

func (l *Lexer) scanKeywordLine(kind TokenKind, word, content, line string, column int) {
	l.emit(kind, word, line, column)

	rest := strings.TrimLeft(content[len(word):], " \t")
	restColumn := column + len(content) - len(rest)
	l.emit(TokenKeywordText, strings.TrimRight(rest, " \t"), line, restColumn)
}

func (l *Lexer) hasIndentLevel(column int) bool {
	for _, level := range l.indentStack {
		if level == column {
			return true
		}
	}
	return false
}

// stripIndent removes the current block indentation from a raw line,
// never cutting into content that sits shallower than the indent.
func (l *Lexer) stripIndent(line string) string {
	width := l.indentStack[len(l.indentStack)-1] - 1
	i := 0
	for i < width && i < len(line) && line[i] == ' ' {
		i++
	}
	return line[i:]
}

func (l *Lexer) emit(kind TokenKind, value, sourceLine string, column int) {
	l.tokens = append(l.tokens, Token{
		Kind:       kind,
		Value:      value,
		SourceLine: sourceLine,
		Pos:        Position{File: l.file, Line: l.line, Column: column},
	})
}

// measureIndent counts the leading spaces of a line. If a tab occurs
// anywhere in the leading whitespace run, the 1-based column of the
// first tab is returned; tabs after the first content character are
// ordinary content.
func measureIndent(line string) (spaces, tabColumn int) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			spaces++
		case '\t':
			return spaces, i + 1
		default:
			return spaces, 0
		}
	}
	return spaces, 0
}

func firstWord(content string) string {
	if i := strings.IndexAny(content, " \t"); i >= 0 {
		return content[:i]
	}
	return content
}
