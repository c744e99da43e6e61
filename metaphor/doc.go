// Package metaphor parses Metaphor (.m6r) prompt-description documents
// into an AST.
//
// # Overview
//
// Metaphor structures a prompt as a small indentation-based document:
// a Role: section, a Context: section (which may nest further Context:
// sections), and an Action: section. Include: splices another Metaphor
// file into the token stream; Embed: inlines arbitrary files as fenced
// data blocks. The parser accumulates every syntax error it finds
// instead of stopping at the first, so one run reports the whole
// document.
//
// # Architecture
//
//	┌─────────────┐     ┌──────────────┐     ┌─────────────┐
//	│   Input     │────▶│ Lexer stack  │────▶│   Parser    │
//	│ (documents) │     │ (tokens)     │     │   (AST)     │
//	└─────────────┘     └──────────────┘     └─────────────┘
//	                           │                   │
//	                           ▼                   ▼
//	                    ┌──────────────┐     ┌─────────────┐
//	                    │ Include/Embed│     │   Error     │
//	                    │   push/pop   │     │ accumulation│
//	                    └──────────────┘     └─────────────┘
//
// # Lexing
//
// The lexer is line oriented. Indentation is significant: levels are
// multiples of four spaces, tracked on a column stack. Structural
// INDENT and OUTDENT tokens open and close blocks; malformed changes
// become BAD_INDENT/BAD_OUTDENT tokens, and tabs in the indentation
// become TAB tokens. The lexer itself never fails: it encodes lexical
// problems as tokens and leaves reporting to the parser, which knows
// whether a marker is acceptable in context.
//
// Lines whose first word is one of the five keywords (Role:, Context:,
// Action:, Include:, Embed:) produce a keyword token followed by a
// KEYWORD_TEXT token holding the trimmed remainder of the line. Lines
// starting with # are comments and produce nothing. Triple-backtick
// fences switch the lexer into verbatim mode, where every line
// (including blank and # lines) is a literal TEXT token.
//
// # File inclusion
//
// The parser pulls tokens from a stack of lexers. Include: pushes a
// new document lexer, Embed: pushes one embed lexer per glob match
// (patterns containing "**/" match recursively), and END_OF_FILE pops
// back to the including file. Each token keeps the position and raw
// line of its true origin file. A file may be included only once per
// parse; repeats fail with FileAlreadyUsedError, which is also what
// terminates include cycles. Embeds carry no such restriction.
//
// # Error handling
//
// Syntax problems are recorded as *SyntaxError values and parsing
// continues. Resource failures (missing file, permission, directory,
// repeated include) abort immediately. Either way a failed parse
// returns *ParserError carrying the complete ordered error list:
//
//	node, err := metaphor.ParseFile("prompt.m6r", searchPaths)
//	if err != nil {
//	    var perr *metaphor.ParserError
//	    if errors.As(err, &perr) {
//	        for _, e := range perr.Errors {
//	            fmt.Println(e)
//	        }
//	    }
//	}
//
// # AST
//
// A successful parse yields a single Root node. Its first children are
// the static preamble text lines; the parsed Role/Context/Action
// blocks follow in source order. Block nodes carry their optional
// label in Value; Text nodes carry one line of content. Children()
// returns a snapshot, and ChildrenOfKind filters by kind:
//
//	Root
//	├── Text ("The following is a prompt ...")
//	├── Role ("Reviewer")
//	│   └── Text ("You are a code reviewer.")
//	└── Action
//	    └── Text ("Review the attached diff.")
//
// Rendering the AST back to prompt text lives in the format package.
//
// # Thread Safety
//
// A Parser instance is single use and not safe for concurrent use.
// Create one per document.
package metaphor
