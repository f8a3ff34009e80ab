package treesitter

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Parser parses source text with one fixed grammar. Instances are not safe
// for concurrent use; callers create one per goroutine and Close it when done.
type Parser struct {
	language string
	parser   *sitter.Parser
}

// NewParser binds a parser to the named grammar. Languages outside the
// registry fail here so callers can fall back before touching any content.
func NewParser(language string) (*Parser, error) {
	lang := GetLanguage(language)
	if lang == nil {
		return nil, fmt.Errorf("unsupported language: %s", language)
	}

	p := sitter.NewParser()
	p.SetLanguage(lang)
	return &Parser{language: language, parser: p}, nil
}

func (p *Parser) Parse(ctx context.Context, content []byte) (*sitter.Tree, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s source: %w", p.language, err)
	}
	return tree, nil
}

func (p *Parser) Close() {
	p.parser.Close()
}
