// Package store persists encoded type-graph documents.
//
// A stored graph is the exact byte content of a wire document plus
// metadata: a generated ID, a caller-supplied name, the node count and a
// SHA-256 content hash. The store never interprets the document beyond
// what the caller already validated; retrieval returns the same bytes
// that were stored.
//
// Two implementations exist: [MongoStore] for durable multi-process
// storage and [MemoryStore] for tests and single-shot tooling.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no graph with the requested ID exists.
var ErrNotFound = errors.New("graph not found")

// Graph is one stored document with its metadata.
type Graph struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Hash      string    `bson:"hash" json:"hash"`
	NodeCount int       `bson:"node_count" json:"nodeCount"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	Data      []byte    `bson:"data" json:"-"`
}

// Store is the persistence surface for wire documents.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put stores data under a fresh ID and returns the full record.
	Put(ctx context.Context, name string, data []byte, nodeCount int) (Graph, error)

	// Get returns the graph with the given ID, including its document
	// bytes. Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (Graph, error)

	// List returns metadata for all stored graphs, newest first. The
	// returned records omit Data.
	List(ctx context.Context) ([]Graph, error)

	// Delete removes the graph with the given ID.
	// Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
