package classify

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, root, rel string, content []byte) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, content, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestClassifyPrecedence(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", []byte("# readme"))
	writeFile(t, root, "docs/guide.rst", []byte("guide"))
	writeFile(t, root, "package.json", []byte("{}"))
	writeFile(t, root, "Dockerfile", []byte("FROM scratch"))
	writeFile(t, root, "config.yaml", []byte("a: 1"))
	writeFile(t, root, "app.py", []byte("print('hi')"))
	writeFile(t, root, "main.go", []byte("package main"))
	writeFile(t, root, "notes.txt", []byte("notes"))

	set, err := Classify(root)
	if err != nil {
		t.Fatal(err)
	}

	// Documentation wins over the language table even though .md/.rst map
	// to a language.
	wantDocs := []string{"README.md", "docs/guide.rst"}
	if !equalStrings(set.Documentation, wantDocs) {
		t.Errorf("Documentation = %v, want %v", set.Documentation, wantDocs)
	}
	for _, paths := range set.Source {
		for _, p := range paths {
			if p == "README.md" || p == "docs/guide.rst" {
				t.Errorf("doc file %s leaked into Source", p)
			}
		}
	}

	// Configuration wins over the language table for yaml and Dockerfile.
	wantConfig := []string{"Dockerfile", "config.yaml", "package.json"}
	if !equalStrings(set.Configuration, wantConfig) {
		t.Errorf("Configuration = %v, want %v", set.Configuration, wantConfig)
	}

	if !equalStrings(set.Source["python"], []string{"app.py"}) {
		t.Errorf("Source[python] = %v, want [app.py]", set.Source["python"])
	}
	if !equalStrings(set.Source["go"], []string{"main.go"}) {
		t.Errorf("Source[go] = %v, want [main.go]", set.Source["go"])
	}

	if !equalStrings(set.Other, []string{"notes.txt"}) {
		t.Errorf("Other = %v, want [notes.txt]", set.Other)
	}
}

func TestClassifyOtherSizeCap(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "small.unknownext", bytes.Repeat([]byte("a"), 999_999))
	writeFile(t, root, "large.unknownext", bytes.Repeat([]byte("a"), 1_000_000))

	set, err := Classify(root)
	if err != nil {
		t.Fatal(err)
	}

	if !equalStrings(set.Other, []string{"small.unknownext"}) {
		t.Errorf("Other = %v, want only the sub-1MB file", set.Other)
	}
}

func TestClassifyExcludesDirectoriesTransitively(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "keep.go", []byte("package keep"))
	writeFile(t, root, ".git/objects/deep/blob.py", []byte("x = 1"))
	writeFile(t, root, "node_modules/pkg/lib/index.js", []byte("module.exports = {}"))
	writeFile(t, root, "sub/vendor/dep/dep.go", []byte("package dep"))

	set, err := Classify(root)
	if err != nil {
		t.Fatal(err)
	}

	all := append([]string{}, set.Documentation...)
	all = append(all, set.Configuration...)
	all = append(all, set.Other...)
	for _, paths := range set.Source {
		all = append(all, paths...)
	}

	for _, p := range all {
		if strings.Contains(p, ".git/") || strings.Contains(p, "node_modules/") || strings.Contains(p, "vendor/") {
			t.Errorf("excluded file %s appeared in classification", p)
		}
	}
	if !equalStrings(set.Source["go"], []string{"keep.go"}) {
		t.Errorf("Source[go] = %v, want [keep.go]", set.Source["go"])
	}
}

func TestRenderGroupsByCategory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", []byte("# r"))
	writeFile(t, root, "main.py", []byte("pass"))

	set, err := Classify(root)
	if err != nil {
		t.Fatal(err)
	}

	rendered := set.Render()
	for _, want := range []string{
		"### Documentation Files",
		"- README.md",
		"### Source Code Files",
		"- **Python**:",
		"  - main.py",
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("Render() missing %q:\n%s", want, rendered)
		}
	}
}

func TestSourceFilesUsesLanguageTableOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", []byte("package main"))
	writeFile(t, root, "README.md", []byte("# r"))
	writeFile(t, root, "notes.txt", []byte("n"))
	writeFile(t, root, "node_modules/x.js", []byte("x"))

	files, err := SourceFiles(root)
	if err != nil {
		t.Fatal(err)
	}

	// .md is in the language table so README.md is enumerated here, unlike
	// in Classify where documentation precedence wins.
	want := []string{"README.md", "main.go"}
	if !equalStrings(files, want) {
		t.Errorf("SourceFiles = %v, want %v", files, want)
	}
}

func TestContains(t *testing.T) {
	set := &Set{
		Documentation: []string{"README.md"},
		Source:        map[string][]string{"go": {"main.go"}},
	}

	if !set.Contains("README.md") || !set.Contains("main.go") {
		t.Error("Contains should find bucketed paths")
	}
	if set.Contains("missing.go") {
		t.Error("Contains found a path that was never bucketed")
	}
}

func equalStrings(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
