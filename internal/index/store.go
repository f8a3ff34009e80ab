package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const indexFileName = "index.json"

// Store persists indexes on disk, one subdirectory per repository name.
// Existence of the subdirectory alone decides whether an index is reused;
// nothing invalidates an entry when repository content changes.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) entryDir(repoName string) string {
	return filepath.Join(s.baseDir, repoName)
}

// Exists reports whether a storage entry is present for the repository name.
// The check is path existence only, never a content hash.
func (s *Store) Exists(repoName string) bool {
	_, err := os.Stat(s.entryDir(repoName))
	return err == nil
}

func (s *Store) Save(idx *Index) error {
	dir := s.entryDir(idx.RepoName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create storage entry: %w", err)
	}

	data, err := json.Marshal(idx)
	if err != nil {
		return fmt.Errorf("failed to serialize index: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, indexFileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}

// Load deserializes a persisted index. It reads only the storage entry,
// never the repository itself.
func (s *Store) Load(repoName string) (*Index, error) {
	data, err := os.ReadFile(filepath.Join(s.entryDir(repoName), indexFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to read index for %s: %w", repoName, err)
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("failed to deserialize index for %s: %w", repoName, err)
	}
	return &idx, nil
}
