package socratic

import (
	"context"
	"fmt"
	"time"
)

// ProjectService manages the projects of one user.
type ProjectService struct {
	user string
	svc  projectUseCase
	obs  *observer
}

// Create makes an empty project. Returns ErrAlreadyExists for a duplicate name.
func (s *ProjectService) Create(ctx context.Context, name string) (_ Project, err error) {
	start := time.Now()
	defer func() { s.obs.observe("project_create", start, err) }()

	p, err := s.svc.Create(ctx, s.user, name)
	if err != nil {
		return Project{}, fmt.Errorf("create project: %w", err)
	}
	return fromInternalProject(p), nil
}

// Get returns a project summary.
func (s *ProjectService) Get(ctx context.Context, name string) (_ Project, err error) {
	start := time.Now()
	defer func() { s.obs.observe("project_get", start, err) }()

	p, err := s.svc.Get(ctx, s.user, name)
	if err != nil {
		return Project{}, fmt.Errorf("get project: %w", err)
	}
	return fromInternalProject(p), nil
}

// List returns every project of the user, most recently updated first.
func (s *ProjectService) List(ctx context.Context) (_ []Project, err error) {
	start := time.Now()
	defer func() { s.obs.observe("project_list", start, err) }()

	ps, err := s.svc.List(ctx, s.user)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	out := make([]Project, len(ps))
	for i, p := range ps {
		out[i] = fromInternalProject(p)
	}
	return out, nil
}

// Delete removes a project with its conversation and notes.
func (s *ProjectService) Delete(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("project_delete", start, err) }()

	if err = s.svc.Delete(ctx, s.user, name); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// Notes returns the project's memory notes.
func (s *ProjectService) Notes(ctx context.Context, name string) (_ []Note, err error) {
	start := time.Now()
	defer func() { s.obs.observe("project_notes", start, err) }()

	notes, err := s.svc.Notes(ctx, s.user, name)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return fromInternalNotes(notes), nil
}
