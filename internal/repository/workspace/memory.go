package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/socratic/internal/domain"
	"github.com/kailas-cloud/socratic/internal/domain/conversation"
)

// ReadNotes returns the project's memory notes ordered by file name.
// Unreadable notes are skipped.
func (s *Store) ReadNotes(_ context.Context, user, project string) ([]conversation.Note, error) {
	dir, err := s.existingProjectDir(user, project)
	if err != nil {
		return nil, err
	}

	notesDir := filepath.Join(dir, memoryDir)
	entries, err := os.ReadDir(notesDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list memory notes: %w", err)
	}

	var notes []conversation.Note
	for _, e := range entries {
		if !e.Type().IsRegular() || filepath.Ext(e.Name()) != noteExt {
			continue
		}
		data, err := os.ReadFile(filepath.Join(notesDir, e.Name()))
		if err != nil {
			s.logger.Warn("Skipping unreadable memory note",
				zap.String("project", project), zap.String("file", e.Name()), zap.Error(err))
			continue
		}
		notes = append(notes, conversation.Note{File: e.Name(), Content: string(data)})
	}
	return notes, nil
}

// WriteNote stores a memory note, replacing any note with the same file name.
func (s *Store) WriteNote(_ context.Context, user, project string, note conversation.Note) error {
	dir, err := s.existingProjectDir(user, project)
	if err != nil {
		return err
	}
	if err := validateNoteFile(note.File); err != nil {
		return err
	}

	notesDir := filepath.Join(dir, memoryDir)
	if err := os.MkdirAll(notesDir, 0o755); err != nil {
		return fmt.Errorf("create memory dir: %w", err)
	}

	tmp, err := os.CreateTemp(notesDir, ".note-*")
	if err != nil {
		return fmt.Errorf("create temp note: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(note.Content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write note: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close note: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(notesDir, note.File)); err != nil {
		return fmt.Errorf("rename note: %w", err)
	}
	return nil
}

func validateNoteFile(name string) error {
	if filepath.Ext(name) != noteExt || filepath.Base(name) != name ||
		strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("note file %q: %w", name, domain.ErrInvalidName)
	}
	return nil
}
