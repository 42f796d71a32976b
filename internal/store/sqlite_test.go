package store

import (
	"context"
	"errors"
	"testing"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteReadAbsent(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Read(context.Background(), "votes/dungeon/count")
	if !errors.Is(err, ErrAbsent) {
		t.Errorf("Read of missing path = %v, want ErrAbsent", err)
	}
}

func TestSQLiteWriteOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Write(ctx, "votes/dungeon/count", "1"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Write(ctx, "votes/dungeon/count", "2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := s.Read(ctx, "votes/dungeon/count")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != "2" {
		t.Errorf("Read = %q, want %q", got, "2")
	}
}

func TestSQLiteDeleteRemovesChildren(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Write(ctx, "votes/dungeon/count", "1")
	s.Write(ctx, "votes/dungeon/voters/a", "true")
	s.Write(ctx, "votes/gallery/count", "5")

	if err := s.Delete(ctx, "votes/dungeon"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := s.Read(ctx, "votes/dungeon/count"); !errors.Is(err, ErrAbsent) {
		t.Error("child path survived Delete")
	}
	if _, err := s.Read(ctx, "votes/dungeon/voters/a"); !errors.Is(err, ErrAbsent) {
		t.Error("nested child path survived Delete")
	}
	// Sibling tree untouched
	if got, _ := s.Read(ctx, "votes/gallery/count"); got != "5" {
		t.Errorf("sibling path affected by Delete, got %q", got)
	}
}

func TestSQLiteDeleteIgnoresSimilarPrefix(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Write(ctx, "votes/dungeon/count", "1")
	s.Write(ctx, "votes/dungeon2/count", "2")

	if err := s.Delete(ctx, "votes/dungeon"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := s.Read(ctx, "votes/dungeon2/count"); got != "2" {
		t.Errorf("votes/dungeon2 affected by deleting votes/dungeon, got %q", got)
	}
}

func TestSQLiteList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Write(ctx, "votes/dungeon/voters/a", "true")
	s.Write(ctx, "votes/dungeon/voters/b", "false")
	s.Write(ctx, "votes/dungeon/count", "1")

	paths, err := s.List(ctx, "votes/dungeon/voters")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"votes/dungeon/voters/a", "votes/dungeon/voters/b"}
	if len(paths) != len(want) {
		t.Fatalf("List returned %d paths, want %d: %v", len(paths), len(want), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestSQLiteListEmpty(t *testing.T) {
	s := newTestStore(t)

	paths, err := s.List(context.Background(), "votes/dungeon/voters")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("List of empty prefix = %v, want empty", paths)
	}
}
