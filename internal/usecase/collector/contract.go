package collector

import (
	"context"

	"github.com/kailas-cloud/socratic/internal/domain/conversation"
)

// Workspace is the storage contract the collector reads from.
type Workspace interface {
	ListProjects(ctx context.Context, user string) ([]string, error)
	ReadTurns(ctx context.Context, user, project string) (conversation.Transcript, error)
	ReadNotes(ctx context.Context, user, project string) ([]conversation.Note, error)
}
