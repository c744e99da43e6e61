package metaphor

type Position struct {
	File   string
	Line   int
	Column int
}

type TokenKind int

const (
	TokenNone TokenKind = iota

	// Structural markers
	TokenIndent
	TokenOutdent
	TokenBadIndent
	TokenBadOutdent
	TokenTab

	// Content
	TokenKeywordText
	TokenText

	// Keywords
	TokenRole
	TokenContext
	TokenAction
	TokenInclude
	TokenEmbed

	TokenEOF
)

var tokenKindNames = map[TokenKind]string{
	TokenNone:        "None",
	TokenIndent:      "Indent",
	TokenOutdent:     "Outdent",
	TokenBadIndent:   "BadIndent",
	TokenBadOutdent:  "BadOutdent",
	TokenTab:         "Tab",
	TokenKeywordText: "KeywordText",
	TokenText:        "Text",
	TokenRole:        "Role",
	TokenContext:     "Context",
	TokenAction:      "Action",
	TokenInclude:     "Include",
	TokenEmbed:       "Embed",
	TokenEOF:         "EndOfFile",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Marker values carried by structural tokens. Diagnostics interpolate
// these, so they are part of the error-message surface.
const (
	indentMarker     = "[Indent]"
	outdentMarker    = "[Outdent]"
	badIndentMarker  = "[Bad Indent]"
	badOutdentMarker = "[Bad Outdent]"
	tabMarker        = "[Tab]"
)

// Token is one lexical unit of a Metaphor document. SourceLine holds
// the complete raw input line the token came from, for diagnostics.
type Token struct {
	Kind       TokenKind
	Value      string
	SourceLine string
	Pos        Position
}

var keywords = map[string]TokenKind{
	"Role:":    TokenRole,
	"Context:": TokenContext,
	"Action:":  TokenAction,
	"Include:": TokenInclude,
	"Embed:":   TokenEmbed,
}

// LookupKeyword classifies the first word of a content line. Matching
// is case-sensitive and requires the trailing colon; anything else is
// ordinary text.
func LookupKeyword(word string) TokenKind {
	if kind, ok := keywords[word]; ok {
		return kind
	}
	return TokenText
}
