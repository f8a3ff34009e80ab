package models

import "time"

type Repository struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	Name         string    `json:"name"`
	LocalPath    string    `json:"localPath,omitempty"`
	HeadCommit   string    `json:"headCommit,omitempty"`
	Status       string    `json:"status"` // pending, indexing, ready, error
	Error        string    `json:"error,omitempty"`
	LastAnalyzed time.Time `json:"lastAnalyzed"`
	ChunkCount   int       `json:"chunkCount"`
}

const (
	StatusPending  = "pending"
	StatusIndexing = "indexing"
	StatusReady    = "ready"
	StatusError    = "error"
)

// Artifact is a generated document (quick start guide or API docs) together
// with its generation state. Regeneration overwrites the previous content.
type Artifact struct {
	Status      string    `json:"status"` // pending, generating, ready, error
	Content     string    `json:"content,omitempty"`
	Error       string    `json:"error,omitempty"`
	GeneratedAt time.Time `json:"generatedAt,omitempty"`
}

const (
	ArtifactPending    = "pending"
	ArtifactGenerating = "generating"
	ArtifactReady      = "ready"
	ArtifactError      = "error"
)
