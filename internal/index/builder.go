package index

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tigerkid/repoinsight/internal/classify"
)

const (
	fileConcurrency = 4
	embedBatchSize  = 32
)

type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type Builder struct {
	store    *Store
	embedder Embedder
	logger   *slog.Logger
}

func NewBuilder(store *Store, embedder Embedder, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{store: store, embedder: embedder, logger: logger}
}

// BuildOrLoad returns the index for the repository at repoPath. If a storage
// entry for the repository name exists it is loaded as-is; otherwise the
// repository is read, chunked per language, embedded, and persisted.
func (b *Builder) BuildOrLoad(ctx context.Context, repoPath string) (*Index, error) {
	repoName := filepath.Base(repoPath)

	if b.store.Exists(repoName) {
		return b.store.Load(repoName)
	}

	idx, err := b.build(ctx, repoPath, repoName)
	if err != nil {
		return nil, err
	}

	if err := b.store.Save(idx); err != nil {
		return nil, err
	}
	return idx, nil
}

func (b *Builder) build(ctx context.Context, repoPath, repoName string) (*Index, error) {
	set, err := classify.Classify(repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to scan repository: %w", err)
	}

	byLanguage := groupByLanguage(set)

	var mu sync.Mutex
	var chunks []Chunk

	langs := make([]string, 0, len(byLanguage))
	for lang := range byLanguage {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	for _, lang := range langs {
		sp, err := newSplitter(lang)
		if err != nil {
			// The rest of the index is still built; this language's
			// files are silently absent from retrieval.
			b.logger.Warn("skipping language without splitter",
				slog.String("language", lang),
				slog.String("error", err.Error()))
			continue
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(fileConcurrency)

		for _, relPath := range byLanguage[lang] {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}

				content, err := os.ReadFile(filepath.Join(repoPath, filepath.FromSlash(relPath)))
				if err != nil {
					b.logger.Warn("skipping unreadable file",
						slog.String("path", relPath),
						slog.String("error", err.Error()))
					return nil
				}

				pieces := sp.split(content)

				mu.Lock()
				for i, text := range pieces {
					chunks = append(chunks, Chunk{
						ID:       uuid.NewString(),
						FilePath: relPath,
						Language: lang,
						Seq:      i,
						Text:     text,
					})
				}
				mu.Unlock()
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	if len(chunks) == 0 {
		return nil, fmt.Errorf("no documents were successfully parsed, cannot create an index")
	}

	sort.Slice(chunks, func(i, j int) bool {
		if chunks[i].FilePath != chunks[j].FilePath {
			return chunks[i].FilePath < chunks[j].FilePath
		}
		return chunks[i].Seq < chunks[j].Seq
	})

	if err := b.embedChunks(ctx, chunks); err != nil {
		return nil, err
	}

	return &Index{
		RepoName:  repoName,
		CreatedAt: time.Now().UTC(),
		Chunks:    chunks,
	}, nil
}

func (b *Builder) embedChunks(ctx context.Context, chunks []Chunk) error {
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		texts := make([]string, 0, end-start)
		for _, c := range chunks[start:end] {
			texts = append(texts, c.Text)
		}

		vectors, err := b.embedder.Embed(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to embed chunks: %w", err)
		}
		if len(vectors) != len(texts) {
			return fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(texts))
		}

		for i := range vectors {
			chunks[start+i].Embedding = vectors[i]
		}
	}
	return nil
}

// groupByLanguage flattens the classified set into language buckets for the
// splitter. Files outside the language table fall into the "default" bucket.
func groupByLanguage(set *classify.Set) map[string][]string {
	byLanguage := make(map[string][]string)

	addAll := func(paths []string) {
		for _, p := range paths {
			lang, ok := classify.LanguageFor(p)
			if !ok {
				lang = "default"
			}
			byLanguage[lang] = append(byLanguage[lang], p)
		}
	}

	addAll(set.Documentation)
	addAll(set.Configuration)
	addAll(set.Other)
	for lang, paths := range set.Source {
		byLanguage[lang] = append(byLanguage[lang], paths...)
	}

	return byLanguage
}
