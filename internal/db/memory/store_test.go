package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/socratic/internal/db"
)

func TestStore_GetSet(t *testing.T) {
	s, err := NewStore(10)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	ctx := context.Background()

	if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("Get = %q, %v", got, err)
	}
	if err := s.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound after Del, got %v", err)
	}
}

func TestStore_EvictsLeastRecentlyUsed(t *testing.T) {
	s, _ := NewStore(2)
	ctx := context.Background()

	_ = s.Set(ctx, "a", []byte("1"))
	_ = s.Set(ctx, "b", []byte("2"))
	_, _ = s.Get(ctx, "a")
	_ = s.Set(ctx, "c", []byte("3"))

	if _, err := s.Get(ctx, "b"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected b evicted, got %v", err)
	}
	if _, err := s.Get(ctx, "a"); err != nil {
		t.Errorf("expected a retained, got %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
}

func TestStore_TTL(t *testing.T) {
	s, _ := NewStore(10)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	_ = s.SetWithTTL(ctx, "short", []byte("x"), time.Minute)
	_ = s.SetWithTTL(ctx, "forever", []byte("y"), 0)

	if _, err := s.Get(ctx, "short"); err != nil {
		t.Fatalf("expected live entry, got %v", err)
	}

	now = now.Add(time.Minute)
	if _, err := s.Get(ctx, "short"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected expired entry, got %v", err)
	}
	if _, err := s.Get(ctx, "forever"); err != nil {
		t.Errorf("expected entry without ttl to survive, got %v", err)
	}
}

func TestStore_DefaultSize(t *testing.T) {
	s, err := NewStore(0)
	if err != nil {
		t.Fatalf("NewStore(0): %v", err)
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestStore_GetMulti(t *testing.T) {
	s, _ := NewStore(10)
	ctx := context.Background()
	_ = s.Set(ctx, "a", []byte("1"))
	_ = s.Set(ctx, "c", []byte("3"))

	values, err := s.GetMulti(ctx, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("GetMulti: %v", err)
	}
	if len(values) != 3 || string(values[0]) != "1" || values[1] != nil || string(values[2]) != "3" {
		t.Fatalf("values = %q", values)
	}

	empty, err := s.GetMulti(ctx, nil)
	if err != nil || empty != nil {
		t.Fatalf("empty = %v, %v", empty, err)
	}
}
