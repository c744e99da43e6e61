package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/m6r-ai/m6rclib/metaphor"
)

// Extension is the file suffix for Metaphor documents.
const Extension = ".m6r"

var log = commonlog.GetLogger("m6rc.workspace")

// Document is one tracked Metaphor file: its raw content plus the
// result of the most recent parse. AST is nil when the parse failed;
// Errors holds the accumulated syntax errors, empty on success.
type Document struct {
	Path    string
	Content []byte
	AST     *metaphor.Node
	Errors  []*metaphor.SyntaxError
}

// Workspace tracks the Metaphor documents under a root directory,
// keyed by absolute path. All methods are safe for concurrent use.
type Workspace struct {
	mu          sync.RWMutex
	rootDir     string
	searchPaths []string
	docs        map[string]*Document
}

func New(rootDir string, searchPaths []string) *Workspace {
	return &Workspace{
		rootDir:     rootDir,
		searchPaths: searchPaths,
		docs:        make(map[string]*Document),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// SearchPaths returns a copy of the Include resolution paths.
func (w *Workspace) SearchPaths() []string {
	paths := make([]string, len(w.searchPaths))
	copy(paths, w.searchPaths)
	return paths
}

// ScanAll parses every Metaphor file under the root directory.
func (w *Workspace) ScanAll() error {
	count := 0
	err := filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if filepath.Ext(path) == Extension {
			if w.ScanFile(path) == nil {
				count++
			}
		}
		return nil
	})
	log.Debugf("scanned %d documents under %s", count, w.rootDir)
	return err
}

// ScanFile reads a file from disk and tracks the parse result.
func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return w.UpdateFile(path, content)
}

// UpdateFile reparses a document from the given content, which may be
// newer than what is on disk (an editor buffer, for example). A failed
// parse is not an error here: the document is tracked with its syntax
// errors and a nil AST.
func (w *Workspace) UpdateFile(path string, content []byte) error {
	path = absPath(path)

	// Parse outside the lock; Include and Embed touch the filesystem.
	ast, err := metaphor.Parse(string(content), path, w.searchPaths)
	doc := &Document{Path: path, Content: content, AST: ast}
	if err != nil {
		var perr *metaphor.ParserError
		if !errors.As(err, &perr) {
			return err
		}
		doc.Errors = perr.Errors
		log.Debugf("%s: %s", path, perr.Error())
	}

	w.mu.Lock()
	w.docs[path] = doc
	w.mu.Unlock()
	return nil
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, absPath(path))
}

func (w *Workspace) GetFile(path string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.docs[absPath(path)]
}

// Documents returns the tracked documents sorted by path.
func (w *Workspace) Documents() []*Document {
	w.mu.RLock()
	defer w.mu.RUnlock()

	docs := make([]*Document, 0, len(w.docs))
	for _, doc := range w.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Path < docs[j].Path
	})
	return docs
}

// ErrorCount sums the syntax errors across all tracked documents.
func (w *Workspace) ErrorCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	n := 0
	for _, doc := range w.docs {
		n += len(doc.Errors)
	}
	return n
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
