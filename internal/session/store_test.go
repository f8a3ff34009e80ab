package session

import (
	"sync"
	"testing"
)

func TestCreateAndGet(t *testing.T) {
	store := NewStore()

	sess := store.Create("myrepo")
	if sess.ID == "" {
		t.Fatal("expected a session id")
	}
	if sess.RepoName != "myrepo" {
		t.Errorf("RepoName = %s", sess.RepoName)
	}

	got := store.Get(sess.ID)
	if got == nil {
		t.Fatal("session not found")
	}
	if got.ID != sess.ID {
		t.Errorf("ID = %s, want %s", got.ID, sess.ID)
	}

	if store.Get("missing") != nil {
		t.Error("expected nil for unknown session")
	}
}

func TestAppendRecordsExchange(t *testing.T) {
	store := NewStore()
	sess := store.Create("repo")

	if !store.Append(sess.ID, "question", "answer") {
		t.Fatal("Append failed for existing session")
	}
	if store.Append("missing", "q", "a") {
		t.Error("Append succeeded for unknown session")
	}

	got := store.Get(sess.ID)
	if len(got.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(got.Messages))
	}
	if got.Messages[0].Role != "user" || got.Messages[0].Content != "question" {
		t.Errorf("first message = %+v", got.Messages[0])
	}
	if got.Messages[1].Role != "assistant" || got.Messages[1].Content != "answer" {
		t.Errorf("second message = %+v", got.Messages[1])
	}
}

func TestGetReturnsCopy(t *testing.T) {
	store := NewStore()
	sess := store.Create("repo")
	store.Append(sess.ID, "q", "a")

	got := store.Get(sess.ID)
	got.Messages[0].Content = "mutated"

	again := store.Get(sess.ID)
	if again.Messages[0].Content != "q" {
		t.Error("Get must return an isolated copy")
	}
}

func TestConcurrentAccess(t *testing.T) {
	store := NewStore()
	sess := store.Create("repo")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Append(sess.ID, "q", "a")
			store.Get(sess.ID)
		}()
	}
	wg.Wait()

	if got := store.Get(sess.ID); len(got.Messages) != 40 {
		t.Errorf("got %d messages, want 40", len(got.Messages))
	}
}
