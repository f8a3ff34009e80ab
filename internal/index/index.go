// Package index builds and queries the semantic index for one repository:
// language-aware chunking, embedding, on-disk persistence keyed by repository
// name, and nearest-neighbor retrieval over the chunk set.
package index

import (
	"math"
	"sort"
	"time"
)

// Chunk is one retrievable unit of repository text. Seq is the chunk's
// position within its file, so consumers reading Chunks sequentially see
// every file's content in document order.
type Chunk struct {
	ID        string    `json:"id"`
	FilePath  string    `json:"filePath"`
	Language  string    `json:"language"`
	Seq       int       `json:"seq"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding"`
}

type Index struct {
	RepoName  string    `json:"repoName"`
	CreatedAt time.Time `json:"createdAt"`
	Chunks    []Chunk   `json:"chunks"`
}

// TopK returns the k chunks nearest to the query vector by cosine similarity,
// most similar first.
func (idx *Index) TopK(vector []float32, k int) []Chunk {
	type scored struct {
		chunk Chunk
		score float64
	}

	ranked := make([]scored, 0, len(idx.Chunks))
	for _, c := range idx.Chunks {
		ranked = append(ranked, scored{chunk: c, score: cosine(vector, c.Embedding)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	out := make([]Chunk, 0, k)
	for _, r := range ranked[:k] {
		out = append(out, r.chunk)
	}
	return out
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
