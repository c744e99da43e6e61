package metaphor

// EmbedLexer presents one whole file as a fenced code block: a header
// line naming the file, an opening fence tagged with the language
// guessed from the extension, the raw content as a single token, and
// the closing fence. Embedded files are data, never parsed as
// Metaphor.
type EmbedLexer struct {
	file   string
	tokens []Token
	pos    int
}

func NewEmbedLexer(input, file string) *EmbedLexer {
	l := &EmbedLexer{file: file}
	l.emit(TokenText, "File: "+file)
	l.emit(TokenText, "```"+LookupLanguage(file))
	l.emit(TokenText, input)
	l.emit(TokenText, "```")
	l.emit(TokenEOF, "")
	return l
}

func (l *EmbedLexer) NextToken() Token {
	if l.pos >= len(l.tokens) {
		return Token{
			Kind: TokenEOF,
			Pos:  Position{File: l.file, Line: len(l.tokens), Column: 1},
		}
	}
	tok := l.tokens[l.pos]
	l.pos++
	return tok
}

func (l *EmbedLexer) emit(kind TokenKind, value string) {
	l.tokens = append(l.tokens, Token{
		Kind:  kind,
		Value: value,
		Pos:   Position{File: l.file, Line: len(l.tokens) + 1, Column: 1},
	})
}
