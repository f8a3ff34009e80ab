package treesitter

import (
	"context"
	"testing"
)

func TestNewParserRejectsUnknownLanguage(t *testing.T) {
	if _, err := NewParser("haskell"); err == nil {
		t.Fatal("expected error for language without a grammar")
	}
}

func TestParseProducesTree(t *testing.T) {
	parser, err := NewParser("go")
	if err != nil {
		t.Fatal(err)
	}
	defer parser.Close()

	tree, err := parser.Parse(context.Background(), []byte("package sample\n\nfunc F() {}\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.NamedChildCount() == 0 {
		t.Error("expected a root node with named children")
	}
}

func TestGetLanguageRegistry(t *testing.T) {
	for _, lang := range []string{"go", "python", "typescript", "yaml"} {
		if GetLanguage(lang) == nil {
			t.Errorf("missing grammar for %s", lang)
		}
	}
	if GetLanguage("cobol") != nil {
		t.Error("unexpected grammar for cobol")
	}
}
