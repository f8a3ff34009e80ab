// Package router answers natural-language questions about an indexed
// repository. Each query is routed to one of two engines: semantic retrieval
// over chunks for detail questions, or a whole-corpus tree summarization for
// high-level ones. The choice is made by an LLM single selector over the two
// engine descriptions.
package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/tigerkid/repoinsight/internal/index"
)

const (
	defaultTopK = 5

	// Chunk text packed into one summarization batch before reduction.
	summaryBatchBytes = 12_000

	vectorEngine  = "vector_search_engine"
	summaryEngine = "summary_engine"
)

const vectorEngineDescription = "Useful for answering specific, detailed questions about the " +
	"implementation, code, functions, classes, or the content of specific files."

const summaryEngineDescription = "Useful for answering high-level, general, or summary questions " +
	"about the entire repository, such as its overall purpose, structure, main components, " +
	"or providing a list of files."

type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
	CompleteJSON(ctx context.Context, system, user string, out any) error
}

type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type Router struct {
	idx      *index.Index
	llm      Completer
	embedder Embedder
	topK     int
}

func New(idx *index.Index, llm Completer, embedder Embedder) *Router {
	return &Router{idx: idx, llm: llm, embedder: embedder, topK: defaultTopK}
}

// Route answers the question through whichever engine the selector picks.
func (r *Router) Route(ctx context.Context, question string) (string, error) {
	choice, err := r.selectEngine(ctx, question)
	if err != nil {
		return "", err
	}

	if choice == summaryEngine {
		return r.summarize(ctx, question)
	}
	return r.retrieve(ctx, question)
}

type engineChoice struct {
	Engine string `json:"engine"`
}

func (r *Router) selectEngine(ctx context.Context, question string) (string, error) {
	system := "You route questions about a code repository to the right engine. " +
		"Respond with a JSON object of the form {\"engine\": \"<name>\"}."

	user := fmt.Sprintf(
		"Choose exactly one engine for the question below.\n\n"+
			"1. %s: %s\n"+
			"2. %s: %s\n\n"+
			"QUESTION: %s\n",
		vectorEngine, vectorEngineDescription,
		summaryEngine, summaryEngineDescription,
		question,
	)

	var choice engineChoice
	if err := r.llm.CompleteJSON(ctx, system, user, &choice); err != nil {
		return "", fmt.Errorf("failed to select query engine: %w", err)
	}

	switch choice.Engine {
	case vectorEngine, summaryEngine:
		return choice.Engine, nil
	default:
		return "", fmt.Errorf("selector picked unknown engine %q", choice.Engine)
	}
}

// retrieve is the detail path: embed the question, pull the nearest chunks,
// and answer grounded on them.
func (r *Router) retrieve(ctx context.Context, question string) (string, error) {
	vectors, err := r.embedder.Embed(ctx, []string{question})
	if err != nil {
		return "", fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 {
		return "", fmt.Errorf("no embedding generated for query")
	}

	chunks := r.idx.TopK(vectors[0], r.topK)
	if len(chunks) == 0 {
		return "", fmt.Errorf("index contains no chunks")
	}

	var contextText strings.Builder
	for _, c := range chunks {
		contextText.WriteString(fmt.Sprintf("--- %s ---\n%s\n\n", c.FilePath, c.Text))
	}

	system := "You answer questions about a code repository using only the provided context. " +
		"If the context does not contain the answer, say so."
	user := fmt.Sprintf("CONTEXT:\n%s\nQUESTION: %s", contextText.String(), question)

	return r.llm.Complete(ctx, system, user)
}

// summarize is the whole-repo path: batch all chunks, summarize each batch
// with respect to the question, then reduce the batch summaries until one
// answer remains.
func (r *Router) summarize(ctx context.Context, question string) (string, error) {
	if len(r.idx.Chunks) == 0 {
		return "", fmt.Errorf("index contains no chunks")
	}

	texts := make([]string, 0, len(r.idx.Chunks))
	for _, c := range r.idx.Chunks {
		texts = append(texts, fmt.Sprintf("[%s]\n%s", c.FilePath, c.Text))
	}

	for len(texts) > 1 {
		batches := packBatches(texts, summaryBatchBytes)
		reduced := make([]string, 0, len(batches))
		for _, batch := range batches {
			summary, err := r.summarizeBatch(ctx, question, batch)
			if err != nil {
				return "", err
			}
			reduced = append(reduced, summary)
		}
		if len(batches) == 1 {
			return reduced[0], nil
		}
		texts = reduced
	}

	return r.summarizeBatch(ctx, question, texts[0])
}

func (r *Router) summarizeBatch(ctx context.Context, question, batch string) (string, error) {
	system := "You summarize repository content to answer a question. " +
		"Be concise and keep only information relevant to the question."
	user := fmt.Sprintf("REPOSITORY CONTENT:\n%s\n\nQUESTION: %s", batch, question)

	answer, err := r.llm.Complete(ctx, system, user)
	if err != nil {
		return "", fmt.Errorf("summarization failed: %w", err)
	}
	return answer, nil
}

// packBatches joins texts into batches no larger than limit bytes, keeping
// at least one text per batch.
func packBatches(texts []string, limit int) []string {
	var batches []string
	var current strings.Builder

	for _, t := range texts {
		if current.Len() > 0 && current.Len()+len(t) > limit {
			batches = append(batches, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(t)
	}
	if current.Len() > 0 {
		batches = append(batches, current.String())
	}

	return batches
}
