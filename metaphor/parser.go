package metaphor

import (
	"fmt"
	"strings"
)

// tokenSource is the pull interface shared by the document lexer and
// the embed lexer. The parser owns a stack of these: Include and Embed
// push, END_OF_FILE pops.
type tokenSource interface {
	NextToken() Token
}

// Parser builds the AST for one Metaphor document plus everything it
// includes and embeds. Parsers are single use and single threaded;
// create a fresh one per document.
type Parser struct {
	lexers      []tokenSource
	searchPaths []string

	parseErrors []*SyntaxError
	seenFiles   map[string]struct{}

	// currentToken is the most recently pulled token, kept for the
	// error context of fatal resource failures.
	currentToken Token
	lastEOF      Token

	roleSeen    bool
	contextSeen bool
	actionSeen  bool
}

func NewParser() *Parser {
	return &Parser{seenFiles: make(map[string]struct{})}
}

// Parse parses Metaphor source text. filename is used for position
// reporting and searchPaths for resolving Include names. On failure
// the returned error is a *ParserError carrying every syntax error
// found, in encounter order.
func Parse(input, filename string, searchPaths []string) (*Node, error) {
	return NewParser().Parse(input, filename, searchPaths)
}

// ParseFile reads and parses a Metaphor file. The file itself counts
// as used, so including it again from within is an error.
func ParseFile(filename string, searchPaths []string) (*Node, error) {
	return NewParser().ParseFile(filename, searchPaths)
}

func (p *Parser) Parse(input, filename string, searchPaths []string) (*Node, error) {
	p.searchPaths = searchPaths
	p.lexers = append(p.lexers, NewLexer(input, filename))

	root := NewNode(KindRoot, "")
	for _, line := range preamble {
		root.AttachChild(NewNode(KindText, line))
	}

	for {
		tok, err := p.nextToken()
		if err != nil {
			return nil, p.fail(err)
		}

		switch tok.Kind {
		case TokenRole:
			if p.roleSeen {
				p.recordSyntaxError(tok, "'Role' already defined")
			}
			p.roleSeen = true
			node, err := p.parseBlock(tok)
			if err != nil {
				return nil, p.fail(err)
			}
			root.AttachChild(node)

		case TokenContext:
			if p.contextSeen {
				p.recordSyntaxError(tok, "'Context' already defined")
			}
			p.contextSeen = true
			node, err := p.parseBlock(tok)
			if err != nil {
				return nil, p.fail(err)
			}
			root.AttachChild(node)

		case TokenAction:
			if p.actionSeen {
				p.recordSyntaxError(tok, "'Action' already defined")
			}
			p.actionSeen = true
			node, err := p.parseBlock(tok)
			if err != nil {
				return nil, p.fail(err)
			}
			root.AttachChild(node)

		case TokenEOF:
			if len(p.parseErrors) > 0 {
				return nil, &ParserError{Errors: p.parseErrors}
			}
			return root, nil

		default:
			p.recordSyntaxError(tok, fmt.Sprintf("Unexpected token: %s at top level", tok.Value))
		}
	}
}

func (p *Parser) ParseFile(filename string, searchPaths []string) (*Node, error) {
	if err := p.checkFileNotUsed(filename); err != nil {
		return nil, p.fail(err)
	}
	input, err := readFile(filename)
	if err != nil {
		return nil, p.fail(err)
	}
	return p.Parse(input, filename, searchPaths)
}

// nextToken pulls the next token from the active lexer, handling the
// tokens that change which lexer is active: Include and Embed push new
// lexers, END_OF_FILE pops back to the including file. Once the stack
// is empty it keeps returning END_OF_FILE. The only errors are fatal
// resource failures from Include/Embed handling.
func (p *Parser) nextToken() (Token, error) {
	for len(p.lexers) > 0 {
		lexer := p.lexers[len(p.lexers)-1]
		tok := lexer.NextToken()
		p.currentToken = tok

		switch tok.Kind {
		case TokenInclude:
			if err := p.parseInclude(); err != nil {
				return Token{}, err
			}
		case TokenEmbed:
			if err := p.parseEmbed(); err != nil {
				return Token{}, err
			}
		case TokenEOF:
			p.lastEOF = tok
			p.lexers = p.lexers[:len(p.lexers)-1]
		default:
			return tok, nil
		}
	}

	if p.lastEOF.Kind == TokenEOF {
		return p.lastEOF, nil
	}
	return Token{Kind: TokenEOF}, nil
}

// parseBlock parses one Role/Context/Action block. The three kinds
// share this template; Context blocks additionally accept nested
// Context children and require their text to come first.
func (p *Parser) parseBlock(tok Token) (*Node, error) {
	kind := blockKind(tok.Kind)
	name := strings.TrimSuffix(tok.Value, ":")

	label := ""
	init, err := p.nextToken()
	if err != nil {
		return nil, err
	}
	switch init.Kind {
	case TokenKeywordText:
		label = init.Value
		indent, err := p.nextToken()
		if err != nil {
			return nil, err
		}
		if indent.Kind != TokenIndent {
			p.recordSyntaxError(indent,
				fmt.Sprintf("Expected indent after keyword description for '%s' block", name))
		}
	case TokenIndent:
		// bare block, no label
	default:
		p.recordSyntaxError(init,
			fmt.Sprintf("Expected description or indent for '%s' block", name))
	}

	node := NewNode(kind, label)
	nestedContext := false

	for {
		tok, err := p.nextToken()
		if err != nil {
			return nil, err
		}

		switch tok.Kind {
		case TokenText:
			if kind == KindContext && nestedContext {
				p.recordSyntaxError(tok, "Text must come first in a 'Context' block")
			}
			node.AttachChild(NewNode(KindText, tok.Value))

		case TokenContext:
			if kind != KindContext {
				p.recordSyntaxError(tok,
					fmt.Sprintf("Unexpected token: %s in '%s' block", tok.Value, name))
				continue
			}
			child, err := p.parseBlock(tok)
			if err != nil {
				return nil, err
			}
			node.AttachChild(child)
			nestedContext = true

		case TokenOutdent, TokenEOF:
			return node, nil

		default:
			p.recordSyntaxError(tok,
				fmt.Sprintf("Unexpected token: %s in '%s' block", tok.Value, name))
		}
	}
}

// parseInclude handles an Include token: the following keyword text
// names a file that is located via the search paths and pushed as a
// new lexer, so its tokens flow into the document transparently.
// Missing names are recorded errors; resource failures are fatal.
func (p *Parser) parseInclude() error {
	tok, err := p.nextToken()
	if err != nil {
		return err
	}
	if tok.Kind != TokenKeywordText || tok.Value == "" {
		p.recordSyntaxError(tok, "Expected file name for 'Include'")
		return nil
	}

	filename := tok.Value
	if err := p.checkFileNotUsed(filename); err != nil {
		return err
	}
	tryFile, err := findFile(filename, p.searchPaths)
	if err != nil {
		return err
	}
	input, err := readFile(tryFile)
	if err != nil {
		return err
	}
	p.lexers = append(p.lexers, NewLexer(input, tryFile))
	return nil
}

// parseEmbed handles an Embed token: the following keyword text is a
// glob pattern, and every match is pushed as an embed lexer. Patterns
// containing "**/" match recursively. Embeds are data, so the same
// file may be embedded any number of times.
func (p *Parser) parseEmbed() error {
	tok, err := p.nextToken()
	if err != nil {
		return err
	}
	if tok.Kind != TokenKeywordText || tok.Value == "" {
		p.recordSyntaxError(tok, "Expected file name or wildcard match for 'Embed'")
		return nil
	}

	pattern := tok.Value
	files := globFiles(pattern)
	if len(files) == 0 {
		p.recordSyntaxError(tok, fmt.Sprintf("%s does not match any files for 'Embed'", pattern))
		return nil
	}

	for _, file := range files {
		input, err := readFile(file)
		if err != nil {
			return err
		}
		p.lexers = append(p.lexers, NewEmbedLexer(input, file))
	}
	return nil
}

// checkFileNotUsed rejects a file that has already been consumed in
// this parse. The raw name is canonicalized before the check, which
// runs ahead of search-path resolution; repeats are how include
// cycles terminate.
func (p *Parser) checkFileNotUsed(filename string) error {
	canonical := canonicalPath(filename)
	if _, seen := p.seenFiles[canonical]; seen {
		return &FileAlreadyUsedError{Filename: filename}
	}
	p.seenFiles[canonical] = struct{}{}
	return nil
}

func (p *Parser) recordSyntaxError(tok Token, message string) {
	p.parseErrors = append(p.parseErrors, &SyntaxError{
		Message:    message,
		Filename:   tok.Pos.File,
		Line:       tok.Pos.Line,
		Column:     tok.Pos.Column,
		SourceLine: tok.SourceLine,
	})
}

// fail appends a fatal resource error to the list with the current
// token's context and wraps the whole list as the returned error.
func (p *Parser) fail(err error) error {
	p.recordSyntaxError(p.currentToken, err.Error())
	return &ParserError{Errors: p.parseErrors}
}

func blockKind(kind TokenKind) NodeKind {
	switch kind {
	case TokenRole:
		return KindRole
	case TokenContext:
		return KindContext
	default:
		return KindAction
	}
}
