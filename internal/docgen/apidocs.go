package docgen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tigerkid/repoinsight/internal/classify"
	"github.com/tigerkid/repoinsight/internal/models"
)

const extractionSystem = "You are an expert at parsing code and generating API documentation. " +
	"You respond with JSON matching the requested schema."

const extractionPrompt = `Analyze the following source code file and extract all public classes and functions.
For each class, extract its public methods. For each function or method, extract its parameters, return value, and a clear description based on its docstring or implementation.
If a type is not specified, use 'any'. If a return value is not specified, use 'None'.

Respond with a JSON object:
{"file_path": "...", "classes": [{"name": "...", "description": "...", "methods": [{"name": "...", "parameters": [{"name": "...", "param_type": "...", "description": "..."}], "returns": "...", "description": "..."}]}], "functions": [...]}

SOURCE CODE FILE PATH: %s
---------------------
` + "```" + `
%s
` + "```" + `
---------------------
`

// GenerateAPIDocs documents every file the language table recognizes under
// repoPath. Each file is extracted independently with no cross-file linkage
// or dedup. Unlike the guide pipeline there is no per-file isolation: the
// first extraction failure aborts the run.
func GenerateAPIDocs(ctx context.Context, repoPath string, llm Completer) (string, error) {
	sourceFiles, err := classify.SourceFiles(repoPath)
	if err != nil {
		return "", fmt.Errorf("failed to enumerate source files: %w", err)
	}
	if len(sourceFiles) == 0 {
		return "No source code files found to generate API documentation.", nil
	}

	sections := make([]string, 0, len(sourceFiles))
	for _, relPath := range sourceFiles {
		record, err := extractFile(ctx, repoPath, relPath, llm)
		if err != nil {
			return "", fmt.Errorf("failed to extract API structure of %s: %w", relPath, err)
		}
		sections = append(sections, RenderAPIFile(record))
	}

	return strings.Join(sections, "\n---\n"), nil
}

func extractFile(ctx context.Context, repoPath, relPath string, llm Completer) (*models.APIFile, error) {
	content, err := os.ReadFile(filepath.Join(repoPath, filepath.FromSlash(relPath)))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var record models.APIFile
	if err := llm.CompleteJSON(ctx, extractionSystem, fmt.Sprintf(extractionPrompt, relPath, content), &record); err != nil {
		return nil, err
	}

	if record.FilePath == "" {
		record.FilePath = relPath
	}
	record.Normalize()

	return &record, nil
}

// RenderAPIFile deterministically renders one extraction record to Markdown.
func RenderAPIFile(f *models.APIFile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## File: `%s`\n\n", f.FilePath)

	for _, cls := range f.Classes {
		fmt.Fprintf(&b, "### class `%s`\n", cls.Name)
		fmt.Fprintf(&b, "> %s\n\n", cls.Description)
		for _, method := range cls.Methods {
			writeMethod(&b, method)
		}
		b.WriteString("\n")
	}

	if len(f.Functions) > 0 {
		b.WriteString("### Standalone Functions\n")
		for _, fn := range f.Functions {
			writeMethod(&b, fn)
		}
	}

	return b.String()
}

func writeMethod(b *strings.Builder, m models.APIMethod) {
	params := make([]string, 0, len(m.Parameters))
	for _, p := range m.Parameters {
		params = append(params, fmt.Sprintf("%s: *%s*", p.Name, p.Type))
	}
	fmt.Fprintf(b, "- **`%s`**(%s) -> *%s*\n", m.Name, strings.Join(params, ", "), m.Returns)
	fmt.Fprintf(b, "  - %s\n", m.Description)
}
