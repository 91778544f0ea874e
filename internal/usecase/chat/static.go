package chat

import (
	"context"

	"github.com/kailas-cloud/socratic/internal/domain/conversation"
)

// StaticCompleter answers without calling a model. It backs test mode.
type StaticCompleter struct{}

// Complete echoes the last user message.
func (StaticCompleter) Complete(_ context.Context, _ string, history []conversation.Turn) (string, error) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == conversation.RoleUser {
			return "테스트 응답: " + history[i].Content, nil
		}
	}
	return "테스트 응답: ", nil
}
