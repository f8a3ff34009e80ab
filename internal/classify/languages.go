package classify

import (
	"path/filepath"
	"strings"
)

// extensionToLanguage maps file extensions to the language tag used to pick a
// splitter. Markup and data formats are included so their files are still
// indexed, just with the generic text splitter.
var extensionToLanguage = map[string]string{
	// Web frontend
	".js":   "javascript",
	".jsx":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
	".html": "html",
	".htm":  "html",
	".css":  "css",
	".scss": "scss",
	".less": "less",

	// Backend and general purpose
	".py":    "python",
	".java":  "java",
	".php":   "php",
	".rb":    "ruby",
	".go":    "go",
	".rs":    "rust",
	".cs":    "c_sharp",
	".kt":    "kotlin",
	".kts":   "kotlin",
	".scala": "scala",
	".swift": "swift",
	".m":     "objc",
	".pl":    "perl",
	".lua":   "lua",
	".ex":    "elixir",
	".exs":   "elixir",
	".dart":  "dart",
	".erl":   "erlang",
	".hrl":   "erlang",

	// C family
	".c":   "c",
	".h":   "c",
	".cpp": "cpp",
	".hpp": "cpp",
	".cc":  "cpp",
	".cxx": "cpp",
	".hh":  "cpp",
	".hxx": "cpp",

	// Data and configuration
	".json": "json",
	".yaml": "yaml",
	".yml":  "yaml",
	".toml": "toml",
	".xml":  "html",
	".sql":  "sql",
	".csv":  "text",

	// Shell and devops
	".sh":          "bash",
	".bash":        "bash",
	".zsh":         "bash",
	".tf":          "hcl",
	".hcl":         "hcl",
	".groovy":      "java",
	".jenkinsfile": "java",

	// Documentation and markup
	".md":  "markdown",
	".rst": "markdown",
	".tex": "latex",

	// Functional
	".hs":  "haskell",
	".fs":  "f_sharp",
	".fsi": "f_sharp",
	".ml":  "ocaml",
	".mli": "ocaml",

	// Others
	".vue":    "vue",
	".svelte": "svelte",
	".res":    "rescript",
}

// filenameToLanguage covers extensionless special cases.
var filenameToLanguage = map[string]string{
	"Dockerfile": "dockerfile",
}

// LanguageFor returns the language tag for a path and whether the path is
// recognized by the language table at all.
func LanguageFor(path string) (string, bool) {
	base := filepath.Base(path)
	if lang, ok := filenameToLanguage[base]; ok {
		return lang, true
	}
	ext := strings.ToLower(filepath.Ext(base))
	lang, ok := extensionToLanguage[ext]
	return lang, ok
}
