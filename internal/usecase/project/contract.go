package project

import (
	"context"

	"github.com/kailas-cloud/socratic/internal/domain/conversation"
)

// Workspace manages project directories.
type Workspace interface {
	CreateProject(ctx context.Context, user, project string) error
	ListProjects(ctx context.Context, user string) ([]string, error)
	ProjectInfo(ctx context.Context, user, project string) (conversation.Project, error)
	DeleteProject(ctx context.Context, user, project string) error
	ReadNotes(ctx context.Context, user, project string) ([]conversation.Note, error)
}
