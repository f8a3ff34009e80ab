package index

import (
	"strings"
	"testing"
)

func TestNewSplitterSelection(t *testing.T) {
	if _, err := newSplitter("markdown"); err != nil {
		t.Errorf("markdown should use the text splitter: %v", err)
	}
	if _, err := newSplitter("default"); err != nil {
		t.Errorf("default should use the text splitter: %v", err)
	}
	if _, err := newSplitter("go"); err != nil {
		t.Errorf("go should use the code splitter: %v", err)
	}
	if _, err := newSplitter("haskell"); err == nil {
		t.Error("haskell has no grammar and is not a text language; want error")
	}
}

func TestTextSplitterBoundsChunkSize(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString(strings.Repeat("lorem ipsum dolor sit amet ", 10))
		b.WriteString("\n\n")
	}

	chunks := textSplitter{}.split([]byte(b.String()))
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > maxChunkBytes+maxChunkBytes/4 {
			t.Errorf("chunk %d is %d bytes, exceeds bound", i, len(c))
		}
	}
}

func TestTextSplitterKeepsShortContent(t *testing.T) {
	chunks := textSplitter{}.split([]byte("just one short paragraph"))
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0] != "just one short paragraph" {
		t.Errorf("chunk = %q", chunks[0])
	}
}

func TestCodeSplitterSplitsOnTopLevelDeclarations(t *testing.T) {
	src := `package sample

func First() int {
	return 1
}

func Second() int {
	return 2
}
`
	sp, err := newSplitter("go")
	if err != nil {
		t.Fatal(err)
	}

	chunks := sp.split([]byte(src))
	if len(chunks) == 0 {
		t.Fatal("expected at least one chunk")
	}

	joined := strings.Join(chunks, "\n")
	if !strings.Contains(joined, "func First()") || !strings.Contains(joined, "func Second()") {
		t.Errorf("declarations missing from chunks: %v", chunks)
	}
}

func TestCodeSplitterFallsBackOnOddContent(t *testing.T) {
	sp, err := newSplitter("python")
	if err != nil {
		t.Fatal(err)
	}

	// Plain prose is still chunked even though it is not valid code.
	chunks := sp.split([]byte("not really python at all, just some words"))
	if len(chunks) == 0 {
		t.Error("expected fallback chunking to produce output")
	}
}
