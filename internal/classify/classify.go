package classify

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Unclassified files at or above this size are dropped to bound prompt size.
const maxOtherSize = 1_000_000

// excludedDirs prunes whole subtrees: version control metadata, dependency
// and build output, virtual environments, IDE metadata, caches.
var excludedDirs = map[string]bool{
	".git": true, ".svn": true, ".hg": true, ".bzr": true,
	"node_modules": true, "bower_components": true, "vendor": true,
	"target": true, "build": true, "dist": true, "bin": true, "obj": true,
	".gradle": true, "__pycache__": true,
	"venv": true, ".venv": true, "env": true,
	".idea": true, ".vscode": true, ".vs": true, ".settings": true,
	"cache": true, ".cache": true, "logs": true,
}

var docNames = map[string]bool{
	"README.md":       true,
	"CONTRIBUTING.md": true,
	"CHANGELOG.md":    true,
}

var docSuffixes = []string{".md", ".rst"}

var configNames = map[string]bool{
	"requirements.txt": true,
	"package.json":     true,
	"Dockerfile":       true,
}

var configSuffixes = []string{".env", ".yaml", ".yml", ".toml", ".ini", ".cfg"}

// Set buckets every file under a repository root. Paths are relative to the
// root and use forward slashes.
type Set struct {
	Documentation []string
	Configuration []string
	Source        map[string][]string // language -> paths
	Other         []string
}

// Classify walks the tree under root and buckets every file. Precedence,
// first match wins: documentation name/suffix, configuration name/suffix,
// language table, then Other (size-capped). Excluded directories are pruned
// transitively.
func Classify(root string) (*Set, error) {
	set := &Set{Source: make(map[string][]string)}

	err := walk(root, func(relPath string, size int64) {
		set.add(relPath, size)
	})
	if err != nil {
		return nil, err
	}

	set.sortAll()
	return set, nil
}

// walk is a worklist traversal: excluded subtrees are never pushed onto the
// pending stack, so their contents can never surface in any bucket.
func walk(root string, visit func(relPath string, size int64)) error {
	pending := []string{root}

	for len(pending) > 0 {
		dir := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("failed to read directory %s: %w", dir, err)
		}

		for _, entry := range entries {
			name := entry.Name()
			full := filepath.Join(dir, name)

			if entry.IsDir() {
				if excludedDirs[name] {
					continue
				}
				pending = append(pending, full)
				continue
			}

			info, err := entry.Info()
			if err != nil {
				continue
			}
			rel, err := filepath.Rel(root, full)
			if err != nil {
				continue
			}
			visit(filepath.ToSlash(rel), info.Size())
		}
	}

	return nil
}

func (s *Set) add(relPath string, size int64) {
	base := filepath.Base(relPath)

	if docNames[base] || hasAnySuffix(base, docSuffixes) {
		s.Documentation = append(s.Documentation, relPath)
		return
	}
	if configNames[base] || hasAnySuffix(base, configSuffixes) {
		s.Configuration = append(s.Configuration, relPath)
		return
	}
	if lang, ok := LanguageFor(relPath); ok {
		s.Source[lang] = append(s.Source[lang], relPath)
		return
	}
	if size < maxOtherSize {
		s.Other = append(s.Other, relPath)
	}
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func (s *Set) sortAll() {
	sort.Strings(s.Documentation)
	sort.Strings(s.Configuration)
	sort.Strings(s.Other)
	for _, paths := range s.Source {
		sort.Strings(paths)
	}
}

// Languages returns the source language tags in sorted order.
func (s *Set) Languages() []string {
	langs := make([]string, 0, len(s.Source))
	for lang := range s.Source {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Render produces the categorized plain-text listing fed into the key-file
// selection prompt.
func (s *Set) Render() string {
	var b strings.Builder
	b.WriteString("Here is a categorized list of files in the project:\n\n")

	if len(s.Documentation) > 0 {
		b.WriteString("### Documentation Files\n- " + strings.Join(s.Documentation, "\n- ") + "\n")
	}
	if len(s.Configuration) > 0 {
		b.WriteString("\n### Configuration & Dependency Files\n- " + strings.Join(s.Configuration, "\n- ") + "\n")
	}
	if len(s.Source) > 0 {
		b.WriteString("\n### Source Code Files\n")
		for _, lang := range s.Languages() {
			b.WriteString("- **" + titleCase(lang) + "**:\n  - " + strings.Join(s.Source[lang], "\n  - ") + "\n")
		}
	}
	if len(s.Other) > 0 {
		b.WriteString("\n### Other Files\n- " + strings.Join(s.Other, "\n- ") + "\n")
	}

	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Contains reports whether path appears in any bucket of the set.
func (s *Set) Contains(path string) bool {
	for _, p := range s.Documentation {
		if p == path {
			return true
		}
	}
	for _, p := range s.Configuration {
		if p == path {
			return true
		}
	}
	for _, paths := range s.Source {
		for _, p := range paths {
			if p == path {
				return true
			}
		}
	}
	for _, p := range s.Other {
		if p == path {
			return true
		}
	}
	return false
}

// SourceFiles enumerates every file under root whose name is recognized by
// the language table, regardless of doc/config precedence and with no size
// cap. This is the API-doc enumeration: deliberately unbounded beyond the
// directory denylist.
func SourceFiles(root string) ([]string, error) {
	var files []string
	err := walk(root, func(relPath string, size int64) {
		if _, ok := LanguageFor(relPath); ok {
			files = append(files, relPath)
		}
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
