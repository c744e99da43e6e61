package ui

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/m6r-ai/m6rclib/format"
	"github.com/m6r-ai/m6rclib/metaphor"
	"github.com/m6r-ai/m6rclib/workspace"
)

//go:embed static templates
var embeddedFS embed.FS

// Server is the workspace preview UI: an index of tracked Metaphor
// documents and, per document, either the compiled prompt text or its
// error report.
type Server struct {
	workspace  *workspace.Workspace
	staticFS   fs.FS
	templates  *template.Template
	mux        *http.ServeMux
	templateFS fs.FS
	funcMap    template.FuncMap
}

func NewServer(ws *workspace.Workspace) (*Server, error) {
	staticFS := overlayFS("ui/static", mustSub(embeddedFS, "static"))
	templateFS := overlayFS("ui/templates", mustSub(embeddedFS, "templates"))

	funcMap := template.FuncMap{
		"rel": func(path string) string {
			if rel, err := filepath.Rel(ws.RootDir(), path); err == nil {
				return rel
			}
			return path
		},
		"plural": func(n int) string {
			if n == 1 {
				return ""
			}
			return "s"
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		workspace:  ws,
		staticFS:   staticFS,
		templates:  tmpl,
		mux:        http.NewServeMux(),
		templateFS: templateFS,
		funcMap:    funcMap,
	}

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.mux.HandleFunc("GET /d/{path...}", s.handleDocument)
	s.mux.HandleFunc("GET /", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.New("").Funcs(s.funcMap).ParseFS(s.templateFS, "*.html")
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	tmpl.ExecuteTemplate(w, name, data)
}

type indexViewData struct {
	Root        string
	Documents   []*workspace.Document
	TotalErrors int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := indexViewData{
		Root:        s.workspace.RootDir(),
		Documents:   s.workspace.Documents(),
		TotalErrors: s.workspace.ErrorCount(),
	}
	s.render(w, "index.html", data)
}

type documentViewData struct {
	Doc      *workspace.Document
	Rendered string
	Report   string
}

type documentJSONView struct {
	Path   string                  `json:"path"`
	AST    *metaphor.Node          `json:"ast,omitempty"`
	Errors []*metaphor.SyntaxError `json:"errors,omitempty"`
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	rel := r.PathValue("path")
	doc := s.workspace.GetFile(filepath.Join(s.workspace.RootDir(), rel))
	if doc == nil {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}

	if r.Header.Get("Accept") == "application/json" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(documentJSONView{
			Path:   doc.Path,
			AST:    doc.AST,
			Errors: doc.Errors,
		})
		return
	}

	data := documentViewData{Doc: doc}
	if doc.AST != nil {
		var buf bytes.Buffer
		if err := format.NewTextEncoder(&buf).Encode(doc.AST); err == nil {
			data.Rendered = buf.String()
		}
	}
	if len(doc.Errors) > 0 {
		var buf bytes.Buffer
		if err := format.NewErrorReportEncoder(&buf).Encode(doc.Errors); err == nil {
			data.Report = buf.String()
		}
	}

	s.render(w, "document.html", data)
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// overlayFS prefers files from a directory on disk and falls back to
// the embedded copies, so templates and styles can be edited without a
// rebuild during development.
type overlayFSType struct {
	primary   fs.FS
	secondary fs.FS
}

func overlayFS(primaryPath string, secondary fs.FS) fs.FS {
	return &overlayFSType{
		primary:   os.DirFS(primaryPath),
		secondary: secondary,
	}
}

func (o *overlayFSType) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.secondary.Open(name)
}

func (o *overlayFSType) ReadDir(name string) ([]fs.DirEntry, error) {
	entries := make(map[string]fs.DirEntry)

	if rd, ok := o.secondary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	if rd, ok := o.primary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	return result, nil
}
