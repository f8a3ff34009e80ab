// Package docgen synthesizes the two generated artifacts: the quick start
// guide and the API documentation. Both are Markdown produced through staged
// LLM calls; neither is persisted beyond the session.
package docgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/tigerkid/repoinsight/internal/classify"
	"github.com/tigerkid/repoinsight/internal/models"
)

// QueryEngine is the per-file summarizer, satisfied by router.Router.
type QueryEngine interface {
	Route(ctx context.Context, question string) (string, error)
}

// Completer issues the free-text and structured LLM calls.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
	CompleteJSON(ctx context.Context, system, user string, out any) error
}

const selectionSystem = "You analyze software project layouts and respond with JSON matching the requested schema."

const selectionPrompt = `Given a categorized list of file paths from a software project,
please select the top 5-7 most important files for a new developer
to understand the project quickly.

Your selection should be based on this priority:
1. README files: Almost always the most important file.
2. Installation/dependency files: Crucial for setup (e.g., package.json, requirements.txt).
3. Core application entry points: The starting point of the code (e.g., main.py, app.js).
4. Key configuration files: Defines how the project runs (e.g., Dockerfile).
5. A central source file: A file that contains the core business logic.

For each file you select, provide a brief reason why it's important.

Respond with a JSON object: {"files": [{"file_path": "...", "reason": "..."}]}

CATEGORIZED FILE LIST:
---------------------
%s
---------------------
`

const synthesisSystem = "You are an expert technical writer creating a \"Quick Start Guide\" for a new developer."

const synthesisPrompt = `Based on the following summaries of key project files, write a comprehensive, clear,
and easy-to-follow guide.

The guide MUST include the following sections:
- ## Overview: A brief, high-level introduction to the project's purpose.
- ## Installation: How to set up the project and install dependencies.
- ## How to Run: The exact commands to run the project.
- ## Core Components: Briefly explain the role of each key file.

Use the provided summaries to fill in these sections accurately.
Format the entire output in Markdown.

FILE SUMMARIES:
---------------------
%s
---------------------
`

// GenerateQuickStart builds the quick start guide for the repository at
// repoPath. The pipeline is strictly sequential: classify, select key files,
// summarize each through the query engine, synthesize. Selection and
// synthesis failures abort; a single file's summarization failure only
// degrades that file's section.
func GenerateQuickStart(ctx context.Context, repoPath string, engine QueryEngine, llm Completer) (string, error) {
	set, err := classify.Classify(repoPath)
	if err != nil {
		return "", fmt.Errorf("failed to classify repository files: %w", err)
	}

	keyFiles, err := selectKeyFiles(ctx, set, llm)
	if err != nil {
		return "", fmt.Errorf("could not identify key files using the LLM: %w", err)
	}

	summaries := summarizeKeyFiles(ctx, keyFiles, engine)

	guide, err := llm.Complete(ctx, synthesisSystem, fmt.Sprintf(synthesisPrompt, renderSummaries(summaries)))
	if err != nil {
		return "", fmt.Errorf("could not synthesize the final guide: %w", err)
	}

	return StripFence(guide), nil
}

func selectKeyFiles(ctx context.Context, set *classify.Set, llm Completer) ([]models.KeyFile, error) {
	var response models.KeyFileList
	if err := llm.CompleteJSON(ctx, selectionSystem, fmt.Sprintf(selectionPrompt, set.Render()), &response); err != nil {
		return nil, err
	}
	if len(response.Files) == 0 {
		return nil, fmt.Errorf("selection returned no files")
	}
	return response.Files, nil
}

// summarizeKeyFiles queries the engine once per key file. Failures are
// captured per file so the guide still covers the rest.
func summarizeKeyFiles(ctx context.Context, keyFiles []models.KeyFile, engine QueryEngine) []models.FileSummary {
	summaries := make([]models.FileSummary, 0, len(keyFiles))

	for _, kf := range keyFiles {
		summary := models.FileSummary{FilePath: kf.FilePath, Reason: kf.Reason}

		answer, err := engine.Route(ctx, fmt.Sprintf("Summarize the purpose and content of the file: `%s`", kf.FilePath))
		if err != nil {
			summary.Error = err.Error()
		} else {
			summary.Summary = answer
		}

		summaries = append(summaries, summary)
	}

	return summaries
}

func renderSummaries(summaries []models.FileSummary) string {
	sections := make([]string, 0, len(summaries))

	for _, s := range summaries {
		var b strings.Builder
		fmt.Fprintf(&b, "### File: `%s`\n", s.FilePath)
		fmt.Fprintf(&b, "**Importance:** %s\n", s.Reason)
		if s.Error != "" {
			fmt.Fprintf(&b, "**Error:** Could not summarize this file. Details: %s\n", s.Error)
		} else {
			fmt.Fprintf(&b, "**Summary:**\n%s\n", s.Summary)
		}
		sections = append(sections, b.String())
	}

	return strings.Join(sections, "\n---\n")
}
