// Package workspace stores users' projects on the filesystem.
//
// Layout: <root>/<user>/<project>/ holding turns.jsonl (append-only turn log),
// conversation.json (legacy single-file record, read-only) and memory/*.md notes.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kailas-cloud/socratic/internal/domain"
	"github.com/kailas-cloud/socratic/internal/domain/conversation"
)

const (
	turnsFile  = "turns.jsonl"
	legacyFile = "conversation.json"
	kanbanFile = "kanban.json"
	lockFile   = ".turns.lock"
	memoryDir  = "memory"
	noteExt    = ".md"
)

// MaxNameLength is the longest user or project name in runes.
const MaxNameLength = 64

// Store is the filesystem repository for projects, turn logs and memory notes.
type Store struct {
	root   string
	logger *zap.Logger
}

// New creates a store rooted at root.
func New(root string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{root: root, logger: logger}
}

// Root returns the data directory.
func (s *Store) Root() string { return s.root }

// Ping verifies that the data directory exists and is a directory, creating it if missing.
func (s *Store) Ping(_ context.Context) error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("storage root: %w", err)
	}
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("storage root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage root %s is not a directory", s.root)
	}
	return nil
}

// ValidateName checks that name can be used for a new user or project directory.
func ValidateName(name string) error {
	if name == "" || strings.TrimSpace(name) != name {
		return fmt.Errorf("%q: %w", name, domain.ErrInvalidName)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("name longer than %d characters: %w", MaxNameLength, domain.ErrInvalidName)
	}
	if name[0] == '_' || name[0] == '.' {
		return fmt.Errorf("%q: reserved prefix: %w", name, domain.ErrInvalidName)
	}
	for _, r := range name {
		if !nameRune(r) {
			return fmt.Errorf("%q: character %q not allowed: %w", name, r, domain.ErrInvalidName)
		}
	}
	return nil
}

func nameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' || r == '.'
}

// checkPath accepts any name that addresses a visible directory directly below its parent.
// Directories not created through CreateProject (migrated topics, "_anonymous") stay reachable.
func checkPath(name string) error {
	if name == "" || name[0] == '.' || strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("%q: %w", name, domain.ErrInvalidName)
	}
	return nil
}

func (s *Store) userDir(user string) (string, error) {
	if err := checkPath(user); err != nil {
		return "", fmt.Errorf("user: %w", err)
	}
	return filepath.Join(s.root, user), nil
}

func (s *Store) projectDir(user, project string) (string, error) {
	dir, err := s.userDir(user)
	if err != nil {
		return "", err
	}
	if err := checkPath(project); err != nil {
		return "", fmt.Errorf("project: %w", err)
	}
	return filepath.Join(dir, project), nil
}

// existingProjectDir resolves the project directory and fails with ErrNotFound when absent.
func (s *Store) existingProjectDir(user, project string) (string, error) {
	dir, err := s.projectDir(user, project)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.IsDir()) {
		return "", fmt.Errorf("project %q of %q: %w", project, user, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("stat project: %w", err)
	}
	return dir, nil
}

// CreateProject creates an empty project directory.
func (s *Store) CreateProject(_ context.Context, user, project string) error {
	if err := ValidateName(project); err != nil {
		return fmt.Errorf("project: %w", err)
	}
	dir, err := s.projectDir(user, project)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return fmt.Errorf("create user dir: %w", err)
	}
	if err := os.Mkdir(dir, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("project %q: %w", project, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("create project dir: %w", err)
	}
	return nil
}

// ListProjects returns the user's project names in lexical order.
// Every visible directory is a project. An unknown user has no projects.
func (s *Store) ListProjects(_ context.Context, user string) ([]string, error) {
	dir, err := s.userDir(user)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	var projects []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		projects = append(projects, e.Name())
	}
	return projects, nil
}

// ProjectInfo summarizes a project.
func (s *Store) ProjectInfo(ctx context.Context, user, project string) (conversation.Project, error) {
	dir, err := s.existingProjectDir(user, project)
	if err != nil {
		return conversation.Project{}, err
	}

	transcript, err := s.ReadTurns(ctx, user, project)
	if err != nil {
		return conversation.Project{}, err
	}
	notes, err := s.ReadNotes(ctx, user, project)
	if err != nil {
		return conversation.Project{}, err
	}

	return conversation.Project{
		Name:      project,
		Turns:     len(transcript.Turns),
		Notes:     len(notes),
		Legacy:    transcript.Legacy,
		UpdatedAt: lastModified(dir),
	}, nil
}

// DeleteProject removes a project with all its files.
func (s *Store) DeleteProject(_ context.Context, user, project string) error {
	dir, err := s.existingProjectDir(user, project)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// lastModified is the newest modification time among the project's data files.
func lastModified(dir string) time.Time {
	var latest time.Time
	consider := func(path string) {
		if info, err := os.Stat(path); err == nil && info.ModTime().After(latest) {
			latest = info.ModTime()
		}
	}

	consider(dir)
	consider(filepath.Join(dir, turnsFile))
	consider(filepath.Join(dir, legacyFile))
	if entries, err := os.ReadDir(filepath.Join(dir, memoryDir)); err == nil {
		for _, e := range entries {
			consider(filepath.Join(dir, memoryDir, e.Name()))
		}
	}
	return latest.UTC()
}
