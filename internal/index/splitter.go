package index

import (
	"context"
	"fmt"
	"strings"

	"github.com/tigerkid/repoinsight/pkg/treesitter"
)

const (
	maxChunkBytes = 2048
	minChunkBytes = 64
)

type splitter interface {
	split(content []byte) []string
}

// textLanguages are split with the generic text splitter rather than a
// grammar-aware one.
var textLanguages = map[string]bool{
	"default":  true,
	"text":     true,
	"markdown": true,
	"latex":    true,
}

// newSplitter selects a splitter for a language tag. Languages without a
// grammar and outside the text set fail here; the builder logs and skips
// their files.
func newSplitter(language string) (splitter, error) {
	if textLanguages[language] {
		return textSplitter{}, nil
	}
	if treesitter.GetLanguage(language) == nil {
		return nil, fmt.Errorf("no splitter available for language %q", language)
	}
	return codeSplitter{language: language}, nil
}

// textSplitter accumulates paragraphs up to maxChunkBytes, force-splitting
// oversized paragraphs on line boundaries.
type textSplitter struct{}

func (textSplitter) split(content []byte) []string {
	paragraphs := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n\n")

	var chunks []string
	var current strings.Builder
	flush := func() {
		if text := strings.TrimSpace(current.String()); len(text) >= minChunkBytes {
			chunks = append(chunks, text)
		} else if text != "" && len(chunks) > 0 {
			chunks[len(chunks)-1] += "\n\n" + text
		} else if text != "" {
			chunks = append(chunks, text)
		}
		current.Reset()
	}

	for _, p := range paragraphs {
		if len(p) > maxChunkBytes {
			flush()
			for _, piece := range splitByLines(p) {
				chunks = append(chunks, piece)
			}
			continue
		}
		if current.Len()+len(p) > maxChunkBytes {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(p)
	}
	flush()

	return chunks
}

func splitByLines(s string) []string {
	var pieces []string
	var current strings.Builder
	for _, line := range strings.Split(s, "\n") {
		if current.Len()+len(line)+1 > maxChunkBytes && current.Len() > 0 {
			pieces = append(pieces, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	if text := strings.TrimSpace(current.String()); text != "" {
		pieces = append(pieces, text)
	}
	return pieces
}

// codeSplitter chunks along top-level syntax boundaries (functions, classes,
// declarations) using tree-sitter, packing small adjacent nodes together.
type codeSplitter struct {
	language string
}

func (c codeSplitter) split(content []byte) []string {
	parser, err := treesitter.NewParser(c.language)
	if err != nil {
		return textSplitter{}.split(content)
	}
	defer parser.Close()

	tree, err := parser.Parse(context.Background(), content)
	if err != nil {
		// Unparseable content still gets indexed, just without syntax
		// awareness.
		return textSplitter{}.split(content)
	}
	defer tree.Close()

	root := tree.RootNode()
	var chunks []string
	var current strings.Builder

	flush := func() {
		if text := strings.TrimSpace(current.String()); text != "" {
			chunks = append(chunks, text)
		}
		current.Reset()
	}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)
		if node == nil {
			continue
		}
		text := string(content[node.StartByte():node.EndByte()])

		if len(text) > maxChunkBytes {
			flush()
			chunks = append(chunks, splitByLines(text)...)
			continue
		}
		if current.Len()+len(text) > maxChunkBytes {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(text)
	}
	flush()

	if len(chunks) == 0 {
		return textSplitter{}.split(content)
	}
	return chunks
}
