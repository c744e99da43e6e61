package metaphor

import (
	"path/filepath"
	"strings"
)

var languagesByExtension = map[string]string{
	".bash":  "bash",
	".c":     "c",
	".clj":   "clojure",
	".cc":    "cpp",
	".cpp":   "cpp",
	".cs":    "csharp",
	".css":   "css",
	".csv":   "csv",
	".dart":  "dart",
	".erl":   "erlang",
	".ex":    "elixir",
	".go":    "go",
	".h":     "c",
	".hpp":   "cpp",
	".html":  "html",
	".java":  "java",
	".js":    "javascript",
	".json":  "json",
	".jsx":   "javascript",
	".kt":    "kotlin",
	".lua":   "lua",
	".m6r":   "metaphor",
	".md":    "markdown",
	".m":     "objectivec",
	".php":   "php",
	".pl":    "perl",
	".py":    "python",
	".r":     "r",
	".rb":    "ruby",
	".rs":    "rust",
	".scala": "scala",
	".sh":    "bash",
	".sql":   "sql",
	".swift": "swift",
	".toml":  "toml",
	".ts":    "typescript",
	".tsx":   "typescript",
	".txt":   "plaintext",
	".vb":    "vb",
	".xml":   "xml",
	".yaml":  "yaml",
	".yml":   "yaml",
}

// LookupLanguage maps a filename to the fence language tag used when
// embedding it. Only the final extension counts ("app.spec.js" is
// javascript); unknown or missing extensions fall back to "plaintext".
func LookupLanguage(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if lang, ok := languagesByExtension[ext]; ok {
		return lang
	}
	return "plaintext"
}
