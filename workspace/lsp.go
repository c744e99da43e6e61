package workspace

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/m6r-ai/m6rclib/config"
	"github.com/m6r-ai/m6rclib/metaphor"
)

const lsName = "m6rc"

// keywordCompletions is the whole completion set: Metaphor has exactly
// five keywords, valid only at the start of a line.
var keywordCompletions = []struct {
	label  string
	detail string
}{
	{"Role:", "Describe who the model should be"},
	{"Context:", "Provide background knowledge"},
	{"Action:", "State what the model should do"},
	{"Include:", "Splice another Metaphor file into this one"},
	{"Embed:", "Embed matching files as fenced code blocks"},
}

type LSPServer struct {
	workspace *Workspace
	handler   protocol.Handler
	server    *server.Server
	version   string

	// published tracks, per document, which other files it last
	// reported diagnostics for (errors inside included files), so
	// stale reports can be cleared on the next parse.
	published map[string][]string
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		version:   version,
		published: make(map[string][]string),
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentCompletion: ls.textDocumentCompletion,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	cfg, err := config.Load(rootDir)
	if err != nil {
		log.Warningf("config: %s", err.Error())
	}
	ls.workspace = New(rootDir, cfg.SearchPaths)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.workspace.ScanAll()
	for _, doc := range ls.workspace.Documents() {
		ls.publishDiagnostics(ctx, doc)
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.workspace.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.republish(ctx, path)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.workspace.UpdateFile(path, []byte(textChange.Text))
			ls.republish(ctx, path)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	// The file is still part of the workspace on disk; keep tracking it.
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.workspace.UpdateFile(path, []byte(*params.Text))
	} else {
		ls.workspace.ScanFile(path)
	}
	ls.republish(ctx, path)
	return nil
}

func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	kind := protocol.CompletionItemKindKeyword
	items := make([]protocol.CompletionItem, 0, len(keywordCompletions))
	for _, kw := range keywordCompletions {
		detail := kw.detail
		items = append(items, protocol.CompletionItem{
			Label:  kw.label,
			Kind:   &kind,
			Detail: &detail,
		})
	}
	return items, nil
}

func (ls *LSPServer) republish(ctx *glsp.Context, path string) {
	if doc := ls.workspace.GetFile(path); doc != nil {
		ls.publishDiagnostics(ctx, doc)
	}
}

// publishDiagnostics pushes a document's parse errors to the client,
// grouped by the file they actually occurred in: an error inside an
// included file is reported against that file. Files that carried
// errors last time but no longer do receive an empty list, which
// clears them on the client.
func (ls *LSPServer) publishDiagnostics(ctx *glsp.Context, doc *Document) {
	byFile := make(map[string][]protocol.Diagnostic)
	byFile[doc.Path] = nil
	for _, file := range ls.published[doc.Path] {
		byFile[file] = nil
	}

	source := lsName
	for _, se := range doc.Errors {
		file := se.Filename
		if file == "" {
			file = doc.Path
		}
		severity := protocol.DiagnosticSeverityError
		byFile[file] = append(byFile[file], protocol.Diagnostic{
			Range:    diagnosticRange(se),
			Severity: &severity,
			Source:   &source,
			Message:  se.Message,
		})
	}

	var foreign []string
	for file, diagnostics := range byFile {
		if file != doc.Path && len(diagnostics) > 0 {
			foreign = append(foreign, file)
		}
		if diagnostics == nil {
			diagnostics = []protocol.Diagnostic{}
		}
		ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
			URI:         pathToURI(file),
			Diagnostics: diagnostics,
		})
	}
	ls.published[doc.Path] = foreign
}

// diagnosticRange converts a 1-based error position to a 0-based LSP
// range running from the offending column to the end of the line.
func diagnosticRange(se *metaphor.SyntaxError) protocol.Range {
	var line, character protocol.UInteger
	if se.Line > 0 {
		line = protocol.UInteger(se.Line - 1)
	}
	if se.Column > 0 {
		character = protocol.UInteger(se.Column - 1)
	}

	end := character + 1
	if n := protocol.UInteger(len(se.SourceLine)); n > character {
		end = n
	}

	return protocol.Range{
		Start: protocol.Position{Line: line, Character: character},
		End:   protocol.Position{Line: line, Character: end},
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) string {
	u := url.URL{Scheme: "file", Path: absPath(path)}
	return u.String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
