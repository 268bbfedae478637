package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStorePutGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	data := []byte(`[{"6": {"value": "x"}}]`)
	g, err := s.Put(ctx, "demo", data, 1)
	if err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if g.ID == "" {
		t.Error("Put should assign an ID")
	}
	if g.Name != "demo" || g.NodeCount != 1 {
		t.Errorf("metadata = %+v", g)
	}
	if len(g.Hash) != 64 {
		t.Errorf("Hash = %q, want 64-char content hash", g.Hash)
	}

	got, err := s.Get(ctx, g.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if string(got.Data) != string(data) {
		t.Errorf("Get returned different bytes: %q", got.Data)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first, _ := s.Put(ctx, "first", []byte("[]"), 0)
	time.Sleep(2 * time.Millisecond)
	second, _ := s.Put(ctx, "second", []byte("[]"), 0)

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List length = %d, want 2", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Error("List should order newest first")
	}
	for _, g := range list {
		if g.Data != nil {
			t.Error("List records should omit document bytes")
		}
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	g, _ := s.Put(ctx, "gone", []byte("[]"), 0)
	if err := s.Delete(ctx, g.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get(ctx, g.ID); !errors.Is(err, ErrNotFound) {
		t.Error("deleted graph should not be retrievable")
	}
	if err := s.Delete(ctx, g.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStorePutCopiesData(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	data := []byte("[]")
	g, _ := s.Put(ctx, "copy", data, 0)
	data[0] = 'X'

	got, _ := s.Get(ctx, g.ID)
	if string(got.Data) != "[]" {
		t.Error("Put should copy the document bytes")
	}
}
