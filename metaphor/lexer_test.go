package metaphor

import (
	"testing"
)

// lexAll drains a lexer up to and including the first END_OF_FILE.
func lexAll(input string) []Token {
	lexer := NewLexer(input, "test.m6r")
	var tokens []Token
	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func kindsOf(tokens []Token) []TokenKind {
	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

func TestLexerTokenSequences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenKind
	}{
		{
			"empty input",
			"",
			[]TokenKind{TokenEOF},
		},
		{
			"keyword with text",
			"Role: Architect\n",
			[]TokenKind{TokenRole, TokenKeywordText, TokenEOF},
		},
		{
			"keyword without text",
			"Action:\n",
			[]TokenKind{TokenAction, TokenKeywordText, TokenEOF},
		},
		{
			"indented body",
			"Context:\n    details\n",
			[]TokenKind{TokenContext, TokenKeywordText, TokenIndent, TokenText, TokenOutdent, TokenEOF},
		},
		{
			"nested blocks",
			"Context: A\n    B\n    Context: C\n        D\n",
			[]TokenKind{
				TokenContext, TokenKeywordText, TokenIndent, TokenText,
				TokenContext, TokenKeywordText, TokenIndent, TokenText,
				TokenOutdent, TokenOutdent, TokenEOF,
			},
		},
		{
			"eight space jump is one indent",
			"Role: X\n        deep\n",
			[]TokenKind{TokenRole, TokenKeywordText, TokenIndent, TokenText, TokenOutdent, TokenEOF},
		},
		{
			"multi level outdent on one line",
			"Context: A\n    Context: B\n        C\nAction: D\n",
			[]TokenKind{
				TokenContext, TokenKeywordText, TokenIndent,
				TokenContext, TokenKeywordText, TokenIndent, TokenText,
				TokenOutdent, TokenOutdent,
				TokenAction, TokenKeywordText, TokenEOF,
			},
		},
		{
			"comment line skipped",
			"# top comment\nRole: X\n",
			[]TokenKind{TokenRole, TokenKeywordText, TokenEOF},
		},
		{
			"comment does not close a block",
			"Role: X\n    A\n# note\n    B\n",
			[]TokenKind{TokenRole, TokenKeywordText, TokenIndent, TokenText, TokenText, TokenOutdent, TokenEOF},
		},
		{
			"blank line skipped",
			"Role: X\n\n    A\n",
			[]TokenKind{TokenRole, TokenKeywordText, TokenIndent, TokenText, TokenOutdent, TokenEOF},
		},
		{
			"bad indent leaves stack alone",
			"Role: X\n   bad\n",
			[]TokenKind{TokenRole, TokenKeywordText, TokenBadIndent, TokenText, TokenEOF},
		},
		{
			"bad outdent leaves stack alone",
			"Context: A\n    B\n   C\n",
			[]TokenKind{
				TokenContext, TokenKeywordText, TokenIndent, TokenText,
				TokenBadOutdent, TokenText, TokenOutdent, TokenEOF,
			},
		},
		{
			"recovery after bad indent",
			"Role: X\n   bad\n    good\n",
			[]TokenKind{
				TokenRole, TokenKeywordText, TokenBadIndent, TokenText,
				TokenIndent, TokenText, TokenOutdent, TokenEOF,
			},
		},
		{
			"crlf line endings",
			"Role: X\r\n    A\r\n",
			[]TokenKind{TokenRole, TokenKeywordText, TokenIndent, TokenText, TokenOutdent, TokenEOF},
		},
		{
			"no trailing newline",
			"Role: X\n    A",
			[]TokenKind{TokenRole, TokenKeywordText, TokenIndent, TokenText, TokenOutdent, TokenEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kindsOf(lexAll(tt.input))
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(tt.expected), tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerKeywordText(t *testing.T) {
	tests := []struct {
		input  string
		kind   TokenKind
		value  string
		column int
	}{
		{"Role: Architect\n", TokenRole, "Architect", 7},
		{"Role:   Spaced\n", TokenRole, "Spaced", 9},
		{"Role: Trailing   \n", TokenRole, "Trailing", 7},
		{"Action:\n", TokenAction, "", 8},
		{"Context:    \n", TokenContext, "", 13},
		{"Include: other.m6r\n", TokenInclude, "other.m6r", 10},
		{"Embed: src/**/*.py\n", TokenEmbed, "src/**/*.py", 8},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := lexAll(tt.input)
			if tokens[0].Kind != tt.kind {
				t.Errorf("keyword kind = %v, want %v", tokens[0].Kind, tt.kind)
			}
			kt := tokens[1]
			if kt.Kind != TokenKeywordText {
				t.Fatalf("second token = %v, want %v", kt.Kind, TokenKeywordText)
			}
			if kt.Value != tt.value {
				t.Errorf("value = %q, want %q", kt.Value, tt.value)
			}
			if kt.Pos.Column != tt.column {
				t.Errorf("column = %d, want %d", kt.Pos.Column, tt.column)
			}
		})
	}
}

func TestLexerNonKeywordLines(t *testing.T) {
	tests := []string{
		"Role Test",
		"role: lower",
		"ROLE: upper",
		"Roles: plural",
		"Role:joined",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			tokens := lexAll(input + "\n")
			if tokens[0].Kind != TokenText {
				t.Errorf("Kind = %v, want %v", tokens[0].Kind, TokenText)
			}
			if tokens[0].Value != input {
				t.Errorf("Value = %q, want %q", tokens[0].Value, input)
			}
		})
	}
}

func TestLexerFencedBlock(t *testing.T) {
	input := "Context: Example\n" +
		"    ```python\n" +
		"    def hello():\n" +
		"        print('hi')\n" +
		"\n" +
		"    # not a comment\n" +
		"    Role: not a keyword\n" +
		"    ```\n" +
		"    After\n"

	tokens := lexAll(input)

	var texts []string
	for _, tok := range tokens {
		if tok.Kind == TokenText {
			texts = append(texts, tok.Value)
		}
	}

	expected := []string{
		"```python",
		"def hello():",
		"    print('hi')",
		"",
		"# not a comment",
		"Role: not a keyword",
		"```",
		"After",
	}
	if len(texts) != len(expected) {
		t.Fatalf("got %d text tokens %q, want %d", len(texts), texts, len(expected))
	}
	for i := range texts {
		if texts[i] != expected[i] {
			t.Errorf("text %d: got %q, want %q", i, texts[i], expected[i])
		}
	}
}

func TestLexerFenceAtTopLevel(t *testing.T) {
	input := "```\nRole: suppressed\n# kept\n```\n"

	got := kindsOf(lexAll(input))
	expected := []TokenKind{TokenText, TokenText, TokenText, TokenText, TokenEOF}
	if len(got) != len(expected) {
		t.Fatalf("got %d tokens %v, want %d", len(got), got, len(expected))
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], expected[i])
		}
	}
}

func TestLexerTabs(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		column int
	}{
		{"tab at line start", "\tRole: X\n", 1},
		{"tab after spaces", "    \tx\n", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := lexAll(tt.input)
			if tokens[0].Kind != TokenTab {
				t.Fatalf("Kind = %v, want %v", tokens[0].Kind, TokenTab)
			}
			if tokens[0].Value != "[Tab]" {
				t.Errorf("Value = %q, want %q", tokens[0].Value, "[Tab]")
			}
			if tokens[0].Pos.Column != tt.column {
				t.Errorf("Column = %d, want %d", tokens[0].Pos.Column, tt.column)
			}
			if tokens[1].Kind != TokenEOF {
				t.Errorf("tab line not skipped, next = %v", tokens[1].Kind)
			}
		})
	}
}

func TestLexerInteriorTabPreserved(t *testing.T) {
	tokens := lexAll("Role: X\n    a\tb\n")

	var text *Token
	for i := range tokens {
		if tokens[i].Kind == TokenText {
			text = &tokens[i]
			break
		}
	}
	if text == nil {
		t.Fatal("no text token found")
	}
	if text.Value != "a\tb" {
		t.Errorf("Value = %q, want %q", text.Value, "a\tb")
	}
}

func TestLexerIndentOutdentBalance(t *testing.T) {
	tests := []string{
		"Role: X\n    A\n",
		"Context: A\n    B\n    Context: C\n        D\n",
		"Context: A\n    Context: B\n        C\nAction: D\n    E\n",
		"Role: X\n        deep\n",
		"Context: E\n    ```\n    code\n    ```\n",
		"Role: X\n    A\n   bad\n    B\n",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			indents, outdents := 0, 0
			for _, tok := range lexAll(input) {
				switch tok.Kind {
				case TokenIndent:
					indents++
				case TokenOutdent:
					outdents++
				}
			}
			if indents != outdents {
				t.Errorf("indents = %d, outdents = %d", indents, outdents)
			}
		})
	}
}

func TestLexerMarkerValues(t *testing.T) {
	tokens := lexAll("Context: A\n    B\n   C\n")

	byKind := map[TokenKind]Token{}
	for _, tok := range tokens {
		byKind[tok.Kind] = tok
	}

	tests := []struct {
		kind  TokenKind
		value string
	}{
		{TokenIndent, "[Indent]"},
		{TokenOutdent, "[Outdent]"},
		{TokenBadOutdent, "[Bad Outdent]"},
	}
	for _, tt := range tests {
		tok, ok := byKind[tt.kind]
		if !ok {
			t.Errorf("no %v token emitted", tt.kind)
			continue
		}
		if tok.Value != tt.value {
			t.Errorf("%v value = %q, want %q", tt.kind, tok.Value, tt.value)
		}
	}

	bad := lexAll("Role: X\n   bad\n")[2]
	if bad.Kind != TokenBadIndent {
		t.Fatalf("Kind = %v, want %v", bad.Kind, TokenBadIndent)
	}
	if bad.Value != "[Bad Indent]" {
		t.Errorf("Value = %q, want %q", bad.Value, "[Bad Indent]")
	}
	if bad.Pos.Column != 4 {
		t.Errorf("Column = %d, want 4", bad.Pos.Column)
	}
}

func TestLexerPositions(t *testing.T) {
	tokens := lexAll("Context:\n    body\n")

	expected := []struct {
		kind       TokenKind
		value      string
		sourceLine string
		line       int
		column     int
	}{
		{TokenContext, "Context:", "Context:", 1, 1},
		{TokenKeywordText, "", "Context:", 1, 9},
		{TokenIndent, "[Indent]", "    body", 2, 5},
		{TokenText, "body", "    body", 2, 5},
		{TokenOutdent, "[Outdent]", "", 3, 1},
		{TokenEOF, "", "", 3, 1},
	}

	if len(tokens) != len(expected) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(expected))
	}
	for i, want := range expected {
		tok := tokens[i]
		if tok.Kind != want.kind {
			t.Errorf("token %d: Kind = %v, want %v", i, tok.Kind, want.kind)
		}
		if tok.Value != want.value {
			t.Errorf("token %d: Value = %q, want %q", i, tok.Value, want.value)
		}
		if tok.SourceLine != want.sourceLine {
			t.Errorf("token %d: SourceLine = %q, want %q", i, tok.SourceLine, want.sourceLine)
		}
		if tok.Pos.File != "test.m6r" {
			t.Errorf("token %d: File = %q, want %q", i, tok.Pos.File, "test.m6r")
		}
		if tok.Pos.Line != want.line {
			t.Errorf("token %d: Line = %d, want %d", i, tok.Pos.Line, want.line)
		}
		if tok.Pos.Column != want.column {
			t.Errorf("token %d: Column = %d, want %d", i, tok.Pos.Column, want.column)
		}
	}
}

func TestLexerShortIndentKeptInValue(t *testing.T) {
	tokens := lexAll("Role: X\n   bad\n")

	text := tokens[3]
	if text.Kind != TokenText {
		t.Fatalf("Kind = %v, want %v", text.Kind, TokenText)
	}
	if text.Value != "   bad" {
		t.Errorf("Value = %q, want %q", text.Value, "   bad")
	}
}

func TestLexerEOFIdempotent(t *testing.T) {
	lexer := NewLexer("Role: X\n", "test.m6r")
	for i := 0; i < 3; i++ {
		lexer.NextToken()
	}

	for i := 0; i < 3; i++ {
		tok := lexer.NextToken()
		if tok.Kind != TokenEOF {
			t.Fatalf("call %d: Kind = %v, want %v", i, tok.Kind, TokenEOF)
		}
		if tok.Pos.File != "test.m6r" {
			t.Errorf("call %d: File = %q, want %q", i, tok.Pos.File, "test.m6r")
		}
		if tok.Pos.Line != 2 {
			t.Errorf("call %d: Line = %d, want 2", i, tok.Pos.Line)
		}
		if tok.Pos.Column != 1 {
			t.Errorf("call %d: Column = %d, want 1", i, tok.Pos.Column)
		}
	}
}
