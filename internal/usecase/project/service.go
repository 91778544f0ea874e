package project

import (
	"context"
	"fmt"
	"sort"

	"github.com/kailas-cloud/socratic/internal/domain/conversation"
)

// Service handles project lifecycle operations.
type Service struct {
	ws Workspace
}

// New creates a project service.
func New(ws Workspace) *Service {
	return &Service{ws: ws}
}

// Create creates an empty project and returns its summary.
func (s *Service) Create(ctx context.Context, user, name string) (conversation.Project, error) {
	if err := s.ws.CreateProject(ctx, user, name); err != nil {
		return conversation.Project{}, fmt.Errorf("create project: %w", err)
	}
	return s.Get(ctx, user, name)
}

// Get returns one project's summary.
func (s *Service) Get(ctx context.Context, user, name string) (conversation.Project, error) {
	info, err := s.ws.ProjectInfo(ctx, user, name)
	if err != nil {
		return conversation.Project{}, fmt.Errorf("project info: %w", err)
	}
	return info, nil
}

// List returns the user's projects, most recently updated first.
func (s *Service) List(ctx context.Context, user string) ([]conversation.Project, error) {
	names, err := s.ws.ListProjects(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	projects := make([]conversation.Project, 0, len(names))
	for _, name := range names {
		info, err := s.ws.ProjectInfo(ctx, user, name)
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", name, err)
		}
		projects = append(projects, info)
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].UpdatedAt.After(projects[j].UpdatedAt)
	})
	return projects, nil
}

// Delete removes a project with its conversation and notes.
func (s *Service) Delete(ctx context.Context, user, name string) error {
	if err := s.ws.DeleteProject(ctx, user, name); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// Notes returns the project's memory notes.
func (s *Service) Notes(ctx context.Context, user, name string) ([]conversation.Note, error) {
	notes, err := s.ws.ReadNotes(ctx, user, name)
	if err != nil {
		return nil, fmt.Errorf("read notes: %w", err)
	}
	return notes, nil
}
