package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/typewire/typewire/pkg/cache"
)

// MemoryStore is an in-memory Store for tests and single-shot tooling.
// Contents are lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	graphs map[string]Graph
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{graphs: make(map[string]Graph)}
}

// Put stores data under a fresh ID.
func (s *MemoryStore) Put(ctx context.Context, name string, data []byte, nodeCount int) (Graph, error) {
	g := Graph{
		ID:        uuid.NewString(),
		Name:      name,
		Hash:      cache.Hash(data),
		NodeCount: nodeCount,
		CreatedAt: time.Now().UTC(),
		Data:      append([]byte(nil), data...),
	}

	s.mu.Lock()
	s.graphs[g.ID] = g
	s.mu.Unlock()
	return g, nil
}

// Get returns the graph with the given ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (Graph, error) {
	s.mu.RLock()
	g, ok := s.graphs[id]
	s.mu.RUnlock()
	if !ok {
		return Graph{}, ErrNotFound
	}
	return g, nil
}

// List returns metadata for all stored graphs, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]Graph, error) {
	s.mu.RLock()
	out := make([]Graph, 0, len(s.graphs))
	for _, g := range s.graphs {
		g.Data = nil
		out = append(out, g)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Delete removes the graph with the given ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.graphs[id]; !ok {
		return ErrNotFound
	}
	delete(s.graphs, id)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
