package collector

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/socratic/internal/domain/document"
	"github.com/kailas-cloud/socratic/internal/metrics"
)

// Service flattens a user's projects into retrievable documents.
type Service struct {
	ws     Workspace
	logger *zap.Logger
}

// New creates a collector.
func New(ws Workspace, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{ws: ws, logger: logger}
}

// Collect returns one conversation document per turn and one memory document per note
// across every project of user. Projects are visited in the workspace's order; within
// a project, conversation documents precede memory documents.
// Only a failure to enumerate projects is an error. Unreadable projects and malformed
// records are skipped.
func (s *Service) Collect(ctx context.Context, user string) ([]document.Document, error) {
	projects, err := s.ws.ListProjects(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	var docs []document.Document
	for _, project := range projects {
		docs = append(docs, s.conversationDocs(ctx, user, project)...)
		docs = append(docs, s.memoryDocs(ctx, user, project)...)
	}
	return docs, nil
}

func (s *Service) conversationDocs(ctx context.Context, user, project string) []document.Document {
	transcript, err := s.ws.ReadTurns(ctx, user, project)
	if err != nil {
		s.logger.Warn("Skipping unreadable conversation",
			zap.String("user", user), zap.String("project", project), zap.Error(err))
		return nil
	}

	if transcript.Skipped > 0 {
		metrics.SkippedRecordsTotal.Add(float64(transcript.Skipped))
		s.logger.Warn("Skipped malformed conversation records",
			zap.String("user", user),
			zap.String("project", project),
			zap.Bool("legacy", transcript.Legacy),
			zap.Int("skipped", transcript.Skipped),
		)
	}

	docs := make([]document.Document, 0, len(transcript.Turns))
	for i, t := range transcript.Turns {
		docs = append(docs, document.NewConversation(project, i, string(t.Role), t.Timestamp, t.Content))
	}
	return docs
}

func (s *Service) memoryDocs(ctx context.Context, user, project string) []document.Document {
	notes, err := s.ws.ReadNotes(ctx, user, project)
	if err != nil {
		s.logger.Warn("Skipping unreadable memory notes",
			zap.String("user", user), zap.String("project", project), zap.Error(err))
		return nil
	}

	docs := make([]document.Document, 0, len(notes))
	for _, n := range notes {
		docs = append(docs, document.NewMemory(project, n.File, n.Content))
	}
	return docs
}
