// Package agent wraps the query router in a history-aware conversational
// interface for one repository.
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/tigerkid/repoinsight/internal/models"
)

type Engine interface {
	Route(ctx context.Context, question string) (string, error)
}

type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type Service struct {
	llm Completer
}

func NewService(llm Completer) *Service {
	return &Service{llm: llm}
}

const condenseSystem = "You rewrite the latest user message as a fully self-contained question " +
	"about a code repository, resolving references to the prior conversation. " +
	"Respond with the rewritten question only."

// Chat answers one conversational turn. With prior history the message is
// first condensed into a standalone question so the router's selector sees
// full context; the first turn is routed as-is.
func (s *Service) Chat(ctx context.Context, engine Engine, history []models.ChatMessage, message string) (string, error) {
	question := message

	if len(history) > 0 {
		condensed, err := s.llm.Complete(ctx, condenseSystem, renderHistory(history, message))
		if err != nil {
			return "", fmt.Errorf("failed to condense conversation: %w", err)
		}
		if condensed = strings.TrimSpace(condensed); condensed != "" {
			question = condensed
		}
	}

	answer, err := engine.Route(ctx, question)
	if err != nil {
		return "", fmt.Errorf("failed to answer question: %w", err)
	}
	return answer, nil
}

func renderHistory(history []models.ChatMessage, message string) string {
	var b strings.Builder
	b.WriteString("CONVERSATION:\n")
	for _, m := range history {
		fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
	}
	fmt.Fprintf(&b, "\nLATEST MESSAGE: %s\n", message)
	return b.String()
}
