package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileWatcher polls the workspace root for Metaphor file changes and
// keeps the document table current. Polling is deliberate: it needs no
// platform-specific machinery and one pass per second over a prompt
// repository is cheap.
type FileWatcher struct {
	workspace    *Workspace
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
}

func NewFileWatcher(w *Workspace) *FileWatcher {
	return &FileWatcher{
		workspace:    w,
		stopCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
	}
}

func (w *FileWatcher) Start() {
	go w.run()
}

func (w *FileWatcher) Stop() {
	close(w.stopCh)
}

func (w *FileWatcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *FileWatcher) scan() {
	currentFiles := make(map[string]bool)

	root := w.workspace.RootDir()
	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != Extension {
			return nil
		}

		currentFiles[path] = true

		lastMod, known := w.modTimes[path]
		if !known || info.ModTime().After(lastMod) {
			w.modTimes[path] = info.ModTime()
			log.Debugf("reparsing %s", path)
			w.workspace.ScanFile(path)
		}
		return nil
	})

	for path := range w.modTimes {
		if !currentFiles[path] {
			delete(w.modTimes, path)
			log.Debugf("dropping %s", path)
			w.workspace.RemoveFile(path)
		}
	}
}
