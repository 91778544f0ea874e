package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kailas-cloud/socratic/internal/domain"
	"github.com/kailas-cloud/socratic/internal/domain/conversation"
)

func TestNotes_WriteAndRead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_ = s.CreateProject(ctx, "alice", "plan")

	notes, err := s.ReadNotes(ctx, "alice", "plan")
	if err != nil || len(notes) != 0 {
		t.Fatalf("ReadNotes(empty) = %v, %v", notes, err)
	}

	for _, n := range []conversation.Note{
		{File: "b.md", Content: "두 번째"},
		{File: "a.md", Content: "첫 번째"},
	} {
		if err := s.WriteNote(ctx, "alice", "plan", n); err != nil {
			t.Fatalf("WriteNote: %v", err)
		}
	}
	writeFile(t, filepath.Join(s.Root(), "alice", "plan", memoryDir, "ignored.txt"), "x")

	notes, err = s.ReadNotes(ctx, "alice", "plan")
	if err != nil {
		t.Fatalf("ReadNotes: %v", err)
	}
	if len(notes) != 2 || notes[0].File != "a.md" || notes[1].Content != "두 번째" {
		t.Fatalf("notes = %+v", notes)
	}

	// No temp files left behind.
	entries, _ := os.ReadDir(filepath.Join(s.Root(), "alice", "plan", memoryDir))
	if len(entries) != 3 {
		t.Errorf("unexpected files in memory dir: %d", len(entries))
	}
}

func TestWriteNote_Overwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_ = s.CreateProject(ctx, "alice", "plan")

	_ = s.WriteNote(ctx, "alice", "plan", conversation.Note{File: "n.md", Content: "old"})
	_ = s.WriteNote(ctx, "alice", "plan", conversation.Note{File: "n.md", Content: "new"})

	notes, _ := s.ReadNotes(ctx, "alice", "plan")
	if len(notes) != 1 || notes[0].Content != "new" {
		t.Fatalf("notes = %+v", notes)
	}
}

func TestWriteNote_InvalidFile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_ = s.CreateProject(ctx, "alice", "plan")

	for _, file := range []string{"../escape.md", "note.txt", ".hidden.md", "a/b.md"} {
		err := s.WriteNote(ctx, "alice", "plan", conversation.Note{File: file, Content: "x"})
		if !errors.Is(err, domain.ErrInvalidName) {
			t.Errorf("WriteNote(%q) = %v, want ErrInvalidName", file, err)
		}
	}
}

func TestReadNotes_MissingProject(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.ReadNotes(context.Background(), "alice", "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
