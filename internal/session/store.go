// Package session keeps per-user conversational state in memory. Sessions
// are never shared and vanish on restart.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tigerkid/repoinsight/internal/models"
)

type Session struct {
	ID        string               `json:"id"`
	RepoName  string               `json:"repoName"`
	Messages  []models.ChatMessage `json:"messages"`
	CreatedAt time.Time            `json:"createdAt"`
}

type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create starts a new session bound to a repository name.
func (s *Store) Create(repoName string) *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		RepoName:  repoName,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess
}

// Get returns a copy of the session, or nil if it does not exist. The copy
// keeps callers from mutating shared state outside Append.
func (s *Store) Get(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}

	copied := *sess
	copied.Messages = append([]models.ChatMessage(nil), sess.Messages...)
	return &copied
}

// Append records one conversational exchange on the session.
func (s *Store) Append(id string, userMessage, assistantMessage string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false
	}

	sess.Messages = append(sess.Messages,
		models.ChatMessage{Role: "user", Content: userMessage},
		models.ChatMessage{Role: "assistant", Content: assistantMessage},
	)
	return true
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
