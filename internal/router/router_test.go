package router

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/tigerkid/repoinsight/internal/index"
)

// fakeLLM scripts the selector choice and records completion prompts.
type fakeLLM struct {
	engine   string
	answers  []string
	prompts  []string
	jsonErr  error
	answerAt int
}

func (f *fakeLLM) Complete(_ context.Context, system, user string) (string, error) {
	f.prompts = append(f.prompts, user)
	if f.answerAt < len(f.answers) {
		a := f.answers[f.answerAt]
		f.answerAt++
		return a, nil
	}
	return "final answer", nil
}

func (f *fakeLLM) CompleteJSON(_ context.Context, system, user string, out any) error {
	if f.jsonErr != nil {
		return f.jsonErr
	}
	return json.Unmarshal([]byte(fmt.Sprintf(`{"engine":%q}`, f.engine)), out)
}

type fakeEmbedder struct{}

func (fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

func testIndex() *index.Index {
	return &index.Index{
		RepoName: "test",
		Chunks: []Chunk{
			{ID: "1", FilePath: "main.go", Text: "func main() { run() }", Embedding: []float32{1, 0}},
			{ID: "2", FilePath: "README.md", Text: "# A tool that runs things", Embedding: []float32{0, 1}},
		},
	}
}

type Chunk = index.Chunk

func TestRouteDetailPathUsesRetrievedChunks(t *testing.T) {
	llm := &fakeLLM{engine: "vector_search_engine"}
	r := New(testIndex(), llm, fakeEmbedder{})

	answer, err := r.Route(context.Background(), "what does main do?")
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if answer == "" {
		t.Fatal("empty answer")
	}

	if len(llm.prompts) != 1 {
		t.Fatalf("expected one completion, got %d", len(llm.prompts))
	}
	if !strings.Contains(llm.prompts[0], "func main()") {
		t.Errorf("retrieved chunk text missing from prompt:\n%s", llm.prompts[0])
	}
	if !strings.Contains(llm.prompts[0], "main.go") {
		t.Errorf("chunk file path missing from prompt:\n%s", llm.prompts[0])
	}
}

func TestRouteSummaryPathCoversAllChunks(t *testing.T) {
	llm := &fakeLLM{engine: "summary_engine"}
	r := New(testIndex(), llm, fakeEmbedder{})

	if _, err := r.Route(context.Background(), "what is this repo about?"); err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	all := strings.Join(llm.prompts, "\n")
	if !strings.Contains(all, "main.go") || !strings.Contains(all, "README.md") {
		t.Errorf("summary prompts should cover every chunk:\n%s", all)
	}
}

func TestRouteSelectorFailureAborts(t *testing.T) {
	llm := &fakeLLM{jsonErr: fmt.Errorf("boom")}
	r := New(testIndex(), llm, fakeEmbedder{})

	if _, err := r.Route(context.Background(), "anything"); err == nil {
		t.Fatal("expected error when selector fails")
	}
}

func TestRouteRejectsUnknownEngine(t *testing.T) {
	llm := &fakeLLM{engine: "made_up_engine"}
	r := New(testIndex(), llm, fakeEmbedder{})

	if _, err := r.Route(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for unknown engine choice")
	}
}

func TestPackBatches(t *testing.T) {
	texts := []string{strings.Repeat("a", 40), strings.Repeat("b", 40), strings.Repeat("c", 40)}

	batches := packBatches(texts, 90)
	if len(batches) != 2 {
		t.Fatalf("got %d batches, want 2", len(batches))
	}
	joined := strings.Join(batches, "")
	for _, want := range []string{"aaa", "bbb", "ccc"} {
		if !strings.Contains(joined, want) {
			t.Errorf("batch content lost: %q", want)
		}
	}
}
