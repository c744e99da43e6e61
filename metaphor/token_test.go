package metaphor

import (
	"testing"
)

func TestTokenKindString(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want string
	}{
		{TokenNone, "None"},
		{TokenIndent, "Indent"},
		{TokenOutdent, "Outdent"},
		{TokenBadIndent, "BadIndent"},
		{TokenBadOutdent, "BadOutdent"},
		{TokenTab, "Tab"},
		{TokenKeywordText, "KeywordText"},
		{TokenText, "Text"},
		{TokenRole, "Role"},
		{TokenContext, "Context"},
		{TokenAction, "Action"},
		{TokenInclude, "Include"},
		{TokenEmbed, "Embed"},
		{TokenEOF, "EndOfFile"},
		{TokenKind(9999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("TokenKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		word string
		want TokenKind
	}{
		{"Role:", TokenRole},
		{"Context:", TokenContext},
		{"Action:", TokenAction},
		{"Include:", TokenInclude},
		{"Embed:", TokenEmbed},
		{"Role", TokenText},
		{"role:", TokenText},
		{"ROLE:", TokenText},
		{"Roles:", TokenText},
		{"Anything", TokenText},
		{"", TokenText},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := LookupKeyword(tt.word); got != tt.want {
				t.Errorf("LookupKeyword(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestToken(t *testing.T) {
	tok := Token{
		Kind:       TokenRole,
		Value:      "Role:",
		SourceLine: "Role: Reviewer",
		Pos:        Position{File: "test.m6r", Line: 1, Column: 1},
	}

	if tok.Kind != TokenRole {
		t.Errorf("Kind = %v, want %v", tok.Kind, TokenRole)
	}
	if tok.Value != "Role:" {
		t.Errorf("Value = %q, want %q", tok.Value, "Role:")
	}
	if tok.SourceLine != "Role: Reviewer" {
		t.Errorf("SourceLine = %q, want %q", tok.SourceLine, "Role: Reviewer")
	}
	if tok.Pos.File != "test.m6r" || tok.Pos.Line != 1 || tok.Pos.Column != 1 {
		t.Errorf("Pos = %+v, want test.m6r:1:1", tok.Pos)
	}
}
