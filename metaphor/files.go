package metaphor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// findFile resolves an Include name. An existing path is used as-is;
// relative names are then tried against each search path in order.
func findFile(filename string, searchPaths []string) (string, error) {
	if fileExists(filename) {
		return filename, nil
	}

	if !filepath.IsAbs(filename) {
		for _, dir := range searchPaths {
			tryName := filepath.Join(dir, filename)
			if fileExists(tryName) {
				return tryName, nil
			}
		}
	}

	return "", fmt.Errorf("File not found: %s", filename)
}

// readFile loads a file as text, mapping OS failures onto the exact
// messages surfaced in diagnostics.
func readFile(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err == nil {
		return string(data), nil
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("File not found: %s", filename)
	case errors.Is(err, fs.ErrPermission):
		return "", fmt.Errorf("You do not have permission to access: %s", filename)
	}
	if info, statErr := os.Stat(filename); statErr == nil && info.IsDir() {
		return "", fmt.Errorf("Is a directory: %s", filename)
	}
	return "", fmt.Errorf("OS error: %v", err)
}

func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// globFiles expands an Embed pattern. Patterns containing the literal
// "**/" match recursively; everything else stays within one directory
// level per wildcard.
func globFiles(pattern string) []string {
	if strings.Contains(pattern, "**/") {
		files, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil
		}
		return files
	}
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil
	}
	return files
}

// canonicalPath resolves a name to an absolute, symlink-resolved path
// where possible. Nonexistent paths still canonicalize, since the
// already-used check runs before search-path resolution.
func canonicalPath(filename string) string {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return filename
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
