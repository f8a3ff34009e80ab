package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var treeExcludedDirs = map[string]bool{
	".git": true, ".vscode": true, "node_modules": true, "__pycache__": true,
	"target": true, "build": true, "dist": true, ".venv": true, "venv": true,
}

// FileTree renders a depth-limited directory listing for the repository, the
// tool the chat surface uses when a user asks about project layout.
func FileTree(repoPath string, maxDepth int) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "File tree for '%s' (up to depth %d):\n\n", filepath.Base(repoPath), maxDepth)

	if err := renderTree(&b, repoPath, 0, maxDepth); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderTree(b *strings.Builder, dir string, depth, maxDepth int) error {
	if depth >= maxDepth {
		return nil
	}

	indent := strings.Repeat("    ", depth)
	fmt.Fprintf(b, "%s├── %s/\n", indent, filepath.Base(dir))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	subIndent := strings.Repeat("    ", depth+1)
	var subdirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			if !treeExcludedDirs[entry.Name()] {
				subdirs = append(subdirs, filepath.Join(dir, entry.Name()))
			}
			continue
		}
		fmt.Fprintf(b, "%s├── %s\n", subIndent, entry.Name())
	}

	for _, sub := range subdirs {
		if err := renderTree(b, sub, depth+1, maxDepth); err != nil {
			return err
		}
	}
	return nil
}
