package chat

import (
	"context"

	"github.com/kailas-cloud/socratic/internal/domain/conversation"
	"github.com/kailas-cloud/socratic/internal/domain/search/request"
	"github.com/kailas-cloud/socratic/internal/usecase/search"
)

// Workspace persists a project's conversation and memory notes.
type Workspace interface {
	ReadTurns(ctx context.Context, user, project string) (conversation.Transcript, error)
	AppendTurns(ctx context.Context, user, project string, turns ...conversation.Turn) error
	// AppendAndRead appends turns and returns the conversation that now ends with them.
	AppendAndRead(ctx context.Context, user, project string, turns ...conversation.Turn) (conversation.Transcript, error)
	ResetTurns(ctx context.Context, user, project string) error
	ReadNotes(ctx context.Context, user, project string) ([]conversation.Note, error)
	WriteNote(ctx context.Context, user, project string, note conversation.Note) error
}

// Completer produces the assistant's next message.
type Completer interface {
	Complete(ctx context.Context, system string, history []conversation.Turn) (string, error)
}

// Searcher retrieves related past conversations.
type Searcher interface {
	Search(ctx context.Context, user string, req *request.Request) (search.Response, error)
}
